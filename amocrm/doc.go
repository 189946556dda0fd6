// Package amocrm provides typed access to the amoCRM API resources.
//
// A Client is created once per account and hands out Model values by name:
//
//	client, err := amocrm.NewClient("example", "user@example.com", "hash", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	leads, err := client.Model("lead")
//	if err != nil {
//		log.Fatal(err)
//	}
//	resp, err := leads.List(ctx, map[string]string{"limit_rows": "50"}, "")
//
// Every Model carries its own copy of the credentials, so arguments set on
// one model never reach another. Unknown names fail with *UnknownModelError.
package amocrm
