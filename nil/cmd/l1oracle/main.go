package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NilFoundation/l1oracle/nil/common/check"
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/cobrax"
	"github.com/NilFoundation/l1oracle/nil/internal/cobrax/cmdflags"
	"github.com/NilFoundation/l1oracle/nil/internal/profiling"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

func initConfig() {
	if cfgFile == "" {
		return
	}

	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config file '%s': %v\nonly CLI arguments are going to be applied\n", cfgFile, err)
	}
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	cobra.OnInitialize(initConfig)

	rootCmd := &cobra.Command{
		Use:          os.Args[0],
		Short:        "Capture and replay the L1 state behind L1_HANDLER transactions",
		SilenceUsage: true,
	}

	var (
		logLevel  string
		pprofPort int
	)
	telemetryCfg := telemetry.NewDefaultConfig()

	cobrax.AddConfigFlag(rootCmd.PersistentFlags(), &cfgFile)
	cobrax.AddLogLevelFlag(rootCmd.PersistentFlags(), &logLevel)
	cobrax.AddPprofPortFlag(rootCmd.PersistentFlags(), &pprofPort)
	cmdflags.AddTelemetry(rootCmd.PersistentFlags(), telemetryCfg)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		applyViperValues(cmd)
		if err := applyConfigSections(viper.GetViper(), cmd,
			configSection{key: "telemetry", dst: telemetryCfg},
		); err != nil {
			return err
		}
		logging.SetupGlobalLogger(logLevel)
		logging.ApplyComponentsFilterEnv()
		if err := profiling.Start(pprofPort, logging.GlobalLogger); err != nil {
			return err
		}
		return telemetry.Init(cmd.Context(), telemetryCfg)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		telemetry.Shutdown(cmd.Context())
	}

	findCmd, err := newFindCommand()
	if err != nil {
		return err
	}
	replayCmd, err := newReplayCommand()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(
		findCmd,
		replayCmd,
		newConfigCommand(rootCmd, findCmd, replayCmd),
		cobrax.VersionCmd("l1oracle"),
	)

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// applyViperValues fills flags the user did not set from the config file.
func applyViperValues(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		check.PanicIfErr(f.Value.Set(viper.GetString(f.Name)))
	})
}
