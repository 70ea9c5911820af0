package cobrax

import (
	"github.com/NilFoundation/l1oracle/nil/common/version"
	"github.com/spf13/cobra"
)

func VersionCmd(title string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// skip the root pre-run: no logger or telemetry is needed to print a version
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.BuildVersionString(title))
		},
	}
}
