// Package request builds, sends and interprets calls to the amoCRM HTTP API.
//
// # Components
//
//   - ParamsBag: credentials plus the GET and POST arguments of the next call
//   - Endpoint: https://{domain}.amocrm.ru{path}?{query} with the credentials
//     encoded according to an AuthScheme
//   - Request: headers, JSON body and the HTTP exchange itself
//   - ParseResponse: maps the {"response": ...} envelope to a Response or a
//     typed error
//
// # Usage
//
//	params := request.NewParamsBag().
//		SetAuth(request.AuthDomain, "example").
//		SetAuth(request.AuthLogin, "user@example.com").
//		SetAuth(request.AuthAPIKey, "hash")
//
//	req := request.New(params, logger)
//	resp, err := req.GetRequest(ctx, "/private/api/v2/json/leads/list",
//		map[string]string{"limit_rows": "10"}, "2017-01-02 12:30:00")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if resp == nil {
//		// no data
//	}
//
// GET and POST arguments are cleared once a call has been sent unless the
// Request was built with WithParamRetention.
//
// # Error Handling
//
//   - *NetworkError: the HTTP exchange failed
//   - *FormatError: the modified-since value is not a date, nothing was sent
//   - *APIError: the server answered with a status of 300 or above
//
// An empty or unparseable body is not an error; it is reported as a nil
// Response.
package request
