package cobrax

import (
	"github.com/spf13/pflag"
)

func AddConfigFlag(fset *pflag.FlagSet, dst *string) {
	fset.StringVarP(dst, "config", "c", *dst, "config file")
}

func AddLogLevelFlag(fset *pflag.FlagSet, dst *string) {
	AddCustomLogLevelFlag(fset, "log-level", "l", dst)
}

func AddCustomLogLevelFlag(fset *pflag.FlagSet, name, short string, dst *string) {
	if *dst == "" {
		*dst = "info"
	}
	fset.StringVarP(dst, name, short, *dst, "log level: trace|debug|info|warn|error|fatal|panic")
}

// AddPprofPortFlag registers --pprof-port; the profiling server stays off while the port is 0.
func AddPprofPortFlag(fset *pflag.FlagSet, dst *int) {
	fset.IntVar(dst, "pprof-port", *dst, "port to serve pprof profiling information; 0 to disable")
}
