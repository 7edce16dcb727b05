package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/ui"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "matn",
	Short: "Tipiṭaka book catalog exporter",
	Long: "Matn builds the VRI Chaṭṭha Saṅgāyana book catalog and exports it as the JSON\n" +
		"artifacts a reader needs: the index form, the filename form, the romanized\n" +
		"book list and the mūla/aṭṭhakathā/ṭīkā jump map.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("verbose") {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .matn.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.StringP("output-dir", "o", "", "directory for generated artifacts (default output)")
	pf.String("catalog", "", "catalog TOML table (default: the embedded table)")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("output_dir", pf.Lookup("output-dir"))
	_ = viper.BindPFlag("catalog_file", pf.Lookup("catalog"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".matn")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("MATN")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// log returns the command logger, or a no-op logger outside a cobra run.
func log() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func loadConfig() (config.Config, error) {
	return config.Load()
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
