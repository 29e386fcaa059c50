package config

import (
	"time"

	"github.com/xopy-io/saferequests/retry"
)

// Config is the loadable client configuration: retry policy knobs plus
// logging settings.
type Config struct {
	Retry RetryConfig `koanf:"retry"`
	Log   LogConfig   `koanf:"log"`
}

// RetryConfig mirrors retry.Policy in a form friendly to YAML and
// environment sources.
type RetryConfig struct {
	Delay         time.Duration `koanf:"delay" validate:"gt=0"`
	Limit         int           `koanf:"limit" validate:"min=0"`
	Codes         []int         `koanf:"codes" validate:"dive,min=100,max=599"`
	ExpBackoff    bool          `koanf:"exp_backoff"`
	MaxExpBackoff time.Duration `koanf:"max_exp_backoff" validate:"gtefield=Delay"`
	RetryOnError  bool          `koanf:"retry_on_error"`
	RetryKinds    []string      `koanf:"retry_kinds" validate:"dive,oneof=connection timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Policy converts the retry section into a retry.Policy.
func (c *Config) Policy() retry.Policy {
	p := retry.Policy{
		Delay:         c.Retry.Delay,
		Limit:         c.Retry.Limit,
		ExpBackoff:    c.Retry.ExpBackoff,
		MaxExpBackoff: c.Retry.MaxExpBackoff,
		RetryOnError:  c.Retry.RetryOnError,
	}

	if len(c.Retry.Codes) == 0 {
		p.Codes = retry.DefaultCodes()
	} else {
		p.Codes = make(map[int]struct{}, len(c.Retry.Codes))
		for _, code := range c.Retry.Codes {
			p.Codes[code] = struct{}{}
		}
	}

	if len(c.Retry.RetryKinds) == 0 {
		p.Kinds = retry.DefaultKinds()
	} else {
		p.Kinds = make(map[retry.ErrorKind]struct{}, len(c.Retry.RetryKinds))
		for _, kind := range c.Retry.RetryKinds {
			p.Kinds[retry.ErrorKind(kind)] = struct{}{}
		}
	}

	return p
}
