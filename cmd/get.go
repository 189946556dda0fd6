package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/amocrm/request"
)

var (
	paramFlags    []string
	modifiedSince string
	queryExpr     string
	rawMethod     string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <resource>",
	Short: "List records of a resource",
	Long: `Fetch records of a resource, e.g. "amocrm get lead -p limit_rows=10".
Use --modified-since to only receive records changed after a date.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runGet,
}

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post <resource>",
	Short: "Create or update records of a resource",
	Long: `Send body fields to the set endpoint of a resource. Values that are valid
JSON are sent as JSON, e.g. -p 'leads={"add":[{"name":"Deal"}]}'.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPost,
}

// rawCmd represents the raw command
var rawCmd = &cobra.Command{
	Use:   "raw <path>",
	Short: "Call an arbitrary API path",
	Long: `Call a path that has no model, using the auth scheme from the config.
Parameters go to the query string for GET and to the body for POST.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runRaw,
}

func init() {
	for _, c := range []*cobra.Command{getCmd, postCmd, rawCmd} {
		c.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "parameter as key=value, repeatable")
		c.Flags().StringVarP(&queryExpr, "query", "q", "", "expression evaluated against the response")
	}
	getCmd.Flags().StringVar(&modifiedSince, "modified-since", "", "only return records modified after this date")
	rawCmd.Flags().StringVar(&modifiedSince, "modified-since", "", "IF-MODIFIED-SINCE value for GET calls")
	rawCmd.Flags().StringVarP(&rawMethod, "method", "X", "GET", "HTTP method: GET or POST")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(rawCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	model, err := amocrmClient.Model(args[0])
	if err != nil {
		return err
	}

	logger.Info().Str("model", model.Name()).Msg("Listing records")

	resp, err := model.List(cmd.Context(), params, modifiedSince)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", model.Name(), err)
	}

	return printResponse(resp)
}

func runPost(cmd *cobra.Command, args []string) error {
	fields, err := parseBodyParams(paramFlags)
	if err != nil {
		return err
	}

	model, err := amocrmClient.Model(args[0])
	if err != nil {
		return err
	}

	logger.Info().Str("model", model.Name()).Int("fields", len(fields)).Msg("Sending records")

	resp, err := model.Set(cmd.Context(), fields)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", model.Name(), err)
	}

	return printResponse(resp)
}

func runRaw(cmd *cobra.Command, args []string) error {
	req := amocrmClient.NewRequest()
	ctx := cmd.Context()

	var (
		resp request.Response
		err  error
	)
	switch strings.ToUpper(rawMethod) {
	case "GET":
		params, perr := parseParams(paramFlags)
		if perr != nil {
			return perr
		}
		resp, err = req.GetRequest(ctx, args[0], params, modifiedSince)
	case "POST":
		fields, perr := parseBodyParams(paramFlags)
		if perr != nil {
			return perr
		}
		if len(fields) == 0 {
			return fmt.Errorf("POST requires at least one --param")
		}
		resp, err = req.PostRequest(ctx, args[0], fields)
	default:
		return fmt.Errorf("invalid method: %s (must be GET or POST)", rawMethod)
	}
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", args[0], err)
	}

	return printResponse(resp)
}

// printResponse applies --query and writes the result to stdout
func printResponse(resp request.Response) error {
	if resp == nil {
		logger.Info().Msg("No data returned")
		return nil
	}

	var result any = resp
	if queryExpr != "" {
		var err error
		result, err = evaluateQuery(queryExpr, resp)
		if err != nil {
			return err
		}
	}

	return writeResult(os.Stdout, result, cfg.Output.Format)
}

// parseParams turns key=value flags into query parameters
func parseParams(flags []string) (map[string]string, error) {
	params := make(map[string]string, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", f)
		}
		params[key] = value
	}
	return params, nil
}

// parseBodyParams is parseParams for body fields, decoding JSON values
func parseBodyParams(flags []string) (map[string]any, error) {
	params, err := parseParams(flags)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(params))
	for key, value := range params {
		var decoded any
		if json.Valid([]byte(value)) && json.Unmarshal([]byte(value), &decoded) == nil {
			fields[key] = decoded
			continue
		}
		fields[key] = value
	}
	return fields, nil
}
