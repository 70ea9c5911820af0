package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var configTemplateSkip = map[string]bool{
	"config": true,
	"help":   true,
}

// newConfigCommand prints a --config template holding every flag of the given commands with its default value.
func newConfigCommand(root *cobra.Command, commands ...*cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print a config file template with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			template := make(map[string]string)
			collect := func(f *pflag.Flag) {
				if !configTemplateSkip[f.Name] {
					template[f.Name] = f.DefValue
				}
			}

			root.PersistentFlags().VisitAll(collect)
			for _, c := range commands {
				c.Flags().VisitAll(collect)
			}

			encoder := yaml.NewEncoder(os.Stdout)
			defer encoder.Close()
			encoder.SetIndent(2)
			return encoder.Encode(template)
		},
	}
}
