package main

import (
	"strings"
	"testing"
	"time"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const sectionsYaml = `
session:
  window: 10m
  retryLimit: 3
  advanceOnCycle: true
telemetry:
  serviceName: oracle-under-test
  prometheusPort: 9100
`

func readYaml(t *testing.T, text string) *viper.Viper {
	t.Helper()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(text)))
	return v
}

func TestApplyConfigSections(t *testing.T) {
	t.Parallel()

	session := l1oracle.DefaultConfig()
	telemetryCfg := telemetry.NewDefaultConfig()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Uint32Var(&session.RetryLimit, "retry-limit", session.RetryLimit, "")
	cmd.Flags().DurationVar(&session.MaxWindow, "max-window", session.MaxWindow, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--retry-limit", "7"}))

	err := applyConfigSections(readYaml(t, sectionsYaml), cmd,
		configSection{key: "session", dst: session},
		configSection{key: "telemetry", dst: telemetryCfg},
		configSection{key: "l1", dst: l1oracle.DefaultRpcClientConfig()},
	)
	require.NoError(t, err)

	require.Equal(t, 10*time.Minute, session.Window)
	require.Equal(t, time.Hour, session.MaxWindow)
	require.True(t, session.AdvanceOnCycle)
	// the command line wins over the file
	require.Equal(t, uint32(7), session.RetryLimit)

	require.Equal(t, "oracle-under-test", telemetryCfg.ServiceName)
	require.Equal(t, 9100, telemetryCfg.PrometheusPort)
}

func TestApplyConfigSectionsRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	session := l1oracle.DefaultConfig()
	err := applyConfigSections(readYaml(t, "session:\n  windw: 10m\n"), &cobra.Command{Use: "test"},
		configSection{key: "session", dst: session},
	)
	require.ErrorContains(t, err, "session")
}

func TestApplyConfigSectionsKeepsBoolFlag(t *testing.T) {
	t.Parallel()

	session := l1oracle.DefaultConfig()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolVar(&session.AdvanceOnCycle, "advance-on-cycle", false, "")
	cmd.Flags().DurationVar(&session.Window, "window", session.Window, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--advance-on-cycle=false", "--window", "2m"}))

	err := applyConfigSections(readYaml(t, sectionsYaml), cmd, configSection{key: "session", dst: session})
	require.NoError(t, err)

	require.False(t, session.AdvanceOnCycle)
	require.Equal(t, 2*time.Minute, session.Window)
	require.Equal(t, uint32(3), session.RetryLimit)
}
