package main

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type configSection struct {
	key string
	dst any
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		mapstructure.TextUnmarshallerHookFunc(),
	)
	config.ErrorUnused = true
}

// applyConfigSections decodes nested sections of the config file (e.g. "session:")
// into their structs. Flags given on the command line win over the file.
func applyConfigSections(v *viper.Viper, cmd *cobra.Command, sections ...configSection) error {
	// flag values share their fields with the sections, so save them before decoding
	type changedFlag struct {
		flag  *pflag.Flag
		value string
	}
	var changed []changedFlag
	cmd.Flags().Visit(func(f *pflag.Flag) {
		changed = append(changed, changedFlag{flag: f, value: f.Value.String()})
	})

	decoded := false
	for _, s := range sections {
		if !v.IsSet(s.key) {
			continue
		}
		if err := v.UnmarshalKey(s.key, s.dst, updateDecoderConfig); err != nil {
			return fmt.Errorf("unable to decode %q config section: %w", s.key, err)
		}
		decoded = true
	}
	if !decoded {
		return nil
	}

	for _, c := range changed {
		if err := c.flag.Value.Set(c.value); err != nil {
			return fmt.Errorf("unable to restore flag %q: %w", c.flag.Name, err)
		}
	}
	return nil
}
