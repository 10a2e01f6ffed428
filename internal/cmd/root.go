package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quodlibetor/jsonlogprint/internal/config"
	"github.com/quodlibetor/jsonlogprint/internal/transform"
)

var (
	cfgFile     string
	noKeyFields []string
	colorMode   string
	tsFormat    string
	tsField     string
	levelField  string
	noFlush     bool
)

// rootCmd is the stdin-to-stdout filter itself; subcommands are extras.
var rootCmd = &cobra.Command{
	Use:   "jsonlogprint",
	Short: "Convert JSON log lines to human-readable logfmt",
	Long: `jsonlogprint reads JSON log lines on stdin and writes a compact,
optionally colorized key=value rendering to stdout. Lines that are not JSON
objects pass through unchanged, so it is safe to put in front of any mixed
log stream:

  my-server | jsonlogprint
  kubectl logs -f pod | jsonlogprint --color=always | less -R`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.jsonlogprint.yaml)")
	rootCmd.Flags().StringSliceVarP(&noKeyFields, "no-key-fields", "n", config.DefaultPriorityFields,
		"fields printed first without a key prefix, in order")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "color output: always, auto, never")
	rootCmd.Flags().StringVar(&tsFormat, "timestamp-format", "auto", "timestamp format: auto, seconds, millis, raw")
	rootCmd.Flags().StringVar(&tsField, "timestamp-field", "timestamp", "field to format as the timestamp")
	rootCmd.Flags().StringVar(&levelField, "level-field", "level", "field to colorize as the log level")
	rootCmd.Flags().BoolVar(&noFlush, "no-flush", false, "do not flush output after every line")

	for _, name := range []string{"no-key-fields", "color", "timestamp-format", "timestamp-field", "level-field", "no-flush"} {
		_ = viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".jsonlogprint")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("JLP")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	logger.Debug("starting up", "config", fmt.Sprintf("%+v", cfg))

	return transform.New(cfg, os.Stdout, logger).Run(os.Stdin)
}

// buildConfig resolves the effective configuration through viper: explicit
// flags win over JLP_* environment variables, which win over the config file.
func buildConfig() (config.Config, error) {
	color, err := config.ParseColorMode(viper.GetString("color"))
	if err != nil {
		return config.Config{}, err
	}
	format, err := config.ParseTimestampFormat(viper.GetString("timestamp-format"))
	if err != nil {
		return config.Config{}, err
	}

	return config.Config{
		PriorityFields:  viper.GetStringSlice("no-key-fields"),
		Color:           color,
		TimestampFormat: format,
		TimestampField:  viper.GetString("timestamp-field"),
		LevelField:      viper.GetString("level-field"),
		FlushEveryLine:  !viper.GetBool("no-flush"),
	}, nil
}

// newLogger builds the stderr diagnostics logger. JLP_LOG_FILTER selects
// verbosity (debug, info, warn, error); the default only surfaces warnings
// so the filtered stream stays clean.
func newLogger() *log.Logger {
	level := log.WarnLevel
	if v := os.Getenv("JLP_LOG_FILTER"); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}
