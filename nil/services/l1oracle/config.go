package l1oracle

import (
	"errors"
	"time"

	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/finder"
)

type Config struct {
	// Window is the L1 search window of the first attempt, later attempts double it.
	Window    time.Duration `mapstructure:"window" yaml:"window"`
	MaxWindow time.Duration `mapstructure:"maxWindow" yaml:"maxWindow"`

	RetryLimit     uint32        `mapstructure:"retryLimit" yaml:"retryLimit"`
	RetryBaseDelay time.Duration `mapstructure:"retryBaseDelay" yaml:"retryBaseDelay"`
	RetryMaxDelay  time.Duration `mapstructure:"retryMaxDelay" yaml:"retryMaxDelay"`

	AdvanceOnCycle bool `mapstructure:"advanceOnCycle" yaml:"advanceOnCycle"`
}

func DefaultConfig() *Config {
	return &Config{
		Window:         finder.DefaultWindow,
		MaxWindow:      time.Hour,
		RetryLimit:     10,
		RetryBaseDelay: time.Second,
		RetryMaxDelay:  30 * time.Second,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Window <= 0 {
		return errors.New("search window must be positive")
	}
	if cfg.MaxWindow < cfg.Window {
		return errors.New("max search window must not be less than the initial window")
	}
	if cfg.RetryLimit == 0 {
		return errors.New("retry limit must be positive")
	}
	if cfg.RetryBaseDelay <= 0 {
		return errors.New("retry base delay must be positive")
	}
	if cfg.RetryMaxDelay < cfg.RetryBaseDelay {
		return errors.New("retry max delay must not be less than the base delay")
	}
	return nil
}
