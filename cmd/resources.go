package cmd

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/s0up4200/amocrm/amocrm"
)

// resourcesCmd represents the resources command
var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resources known to the client",
	Long:  `List every resource name accepted by get, post and batch with its auth scheme and supported operations.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResources(os.Stdout, amocrm.Describe())
	},
}

func renderResources(w io.Writer, infos []amocrm.ModelInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Scheme", "List", "Set")

	for _, info := range infos {
		_ = table.Append([]string{
			info.Name,
			info.Scheme.String(),
			boolToStatus(info.CanList),
			boolToStatus(info.CanSet),
		})
	}

	return table.Render()
}

func boolToStatus(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
