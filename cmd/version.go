package cmd

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected through ldflags
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "amocrm %s (built %s)\n", displayVersion(version), buildTime)
		if !isRelease(version) {
			fmt.Fprintln(cmd.OutOrStdout(), "development build")
		}
	},
}

// displayVersion normalizes release versions to vX.Y.Z and keeps anything
// else, such as "dev", as is
func displayVersion(v string) string {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return v
	}
	return "v" + parsed.String()
}

// isRelease reports whether v is a semver release without pre-release tags
func isRelease(v string) bool {
	parsed, err := semver.ParseTolerant(strings.TrimSpace(v))
	return err == nil && len(parsed.Pre) == 0
}
