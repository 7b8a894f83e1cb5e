package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/limitlens/limitlens/internal/config"
	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Test-support tooling for AWS service limit checks",
	Long: `limitlens inspects captured limit-checker logs for unexpected entries,
prints the sample limit datasets used in tests, and serves recorded EC2
responses for exercising retry handling.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if _, ok := apperrors.LookupCorrelationID(cmd.Context()); !ok {
			cmd.SetContext(NewRunContext(cmd.Context()))
		}
	},
}

// NewRunContext tags ctx with a fresh correlation ID for one CLI run.
func NewRunContext(ctx context.Context) context.Context {
	return apperrors.WithCorrelationID(ctx, uuid.New().String())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/limitlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	observability.InitCLILogger(config.AppName, verbose)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if path := config.DefaultConfigPath(); path != "" {
			viper.AddConfigPath(filepath.Dir(path))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				ExitWithCode(observability.CLILogger, foundry.ExitFileNotFound, "Could not find home directory", err)
			}
			viper.AddConfigPath(filepath.Join(home, "."+config.AppName))
		}
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.ConfigureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
	} else {
		// It's OK if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			observability.CLILogger.Debug("No config file found, using defaults and environment variables")
		} else if cfgFile != "" {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to read config file", err)
		} else {
			observability.CLILogger.Warn("Error reading config file", zap.Error(err))
		}
	}

	config.SetDefaults(viper.GetViper())

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Invalid configuration", err)
	}

	if strings.EqualFold(cfg.Logging.Profile, "STRUCTURED") {
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		observability.InitStructuredLogger(config.AppName, level)
	}
}

// loadedConfig returns the configuration loaded by initConfig, loading it on
// demand when a command runs without cobra initialization (tests).
func loadedConfig() (*config.Config, error) {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg, nil
	}
	v := viper.New()
	config.SetDefaults(v)
	return config.Load(v)
}

// logInfo logs through the CLI logger when one has been initialized.
func logInfo(msg string, fields ...zap.Field) {
	if observability.CLILogger != nil {
		observability.CLILogger.Info(msg, fields...)
	}
}

func logWarn(msg string, fields ...zap.Field) {
	if observability.CLILogger != nil {
		observability.CLILogger.Warn(msg, fields...)
	}
}
