package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/amocrm/amocrm"
	"github.com/s0up4200/amocrm/request"
)

// MaxConcurrency limits the number of calls in flight during a batch
const MaxConcurrency = 4

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <resource>...",
	Short: "List several resources at once",
	Long: `List several resources concurrently, e.g. "amocrm batch lead contact task".
Each resource is fetched through its own model so parameters never mix.
The output maps resource names to their responses.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runBatch,
}

func init() {
	batchCmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "parameter sent to every resource as key=value")
	batchCmd.Flags().StringVar(&modifiedSince, "modified-since", "", "only return records modified after this date")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	results, err := listModels(cmd.Context(), amocrmClient, args, params, modifiedSince)
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, results, cfg.Output.Format)
}

// listModels calls List on every named model concurrently. A nil entry in
// the result means the server sent no data for that model.
func listModels(ctx context.Context, client *amocrm.Client, names []string, params map[string]string, modified string) (map[string]request.Response, error) {
	// Resolve every name first so a typo fails before any call is made
	models := make([]*amocrm.Model, 0, len(names))
	for _, name := range names {
		model, err := client.Model(name)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	var mu sync.Mutex
	results := make(map[string]request.Response, len(models))

	for _, model := range models {
		g.Go(func() error {
			resp, err := model.List(ctx, params, modified)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", model.Name(), err)
			}

			logger.Debug().
				Str("model", model.Name()).
				Bool("empty", resp == nil).
				Msg("Batch item completed")

			mu.Lock()
			results[model.Name()] = resp
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
