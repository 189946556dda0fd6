package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/amocrm/amocrm"
	"github.com/s0up4200/amocrm/config"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	amocrmClient *amocrm.Client

	// Command flags
	outputFormat string
	debug        bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "amocrm",
	Short: "A command line client for the amoCRM API",
	Long: `amocrm calls the amoCRM API with the credentials from the config file,
the environment or a .env file and prints the "response" envelope of each call.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and responses")

	// Add subcommands
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override output format and log level from command line if specified
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	amocrmClient, err = amocrm.NewClient(cfg.AmoCRM.Domain, cfg.AmoCRM.Login, cfg.AmoCRM.APIKey,
		logger, cfg.AmoCRM.RequestOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create amoCRM client: %w", err)
	}

	if !cfg.AmoCRM.VerifyTLS {
		logger.Debug().Msg("TLS certificate verification is disabled")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
