package saferequests

import (
	"github.com/xopy-io/saferequests/config"
	"github.com/xopy-io/saferequests/logger"
)

// NewClientFromConfig builds a one-shot Client from loaded
// configuration, wiring both the retry policy and the logger.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	return NewClientBuilder(log).WithPolicy(cfg.Policy()).Build()
}

// NewSessionFromConfig builds a Session from loaded configuration.
func NewSessionFromConfig(cfg *config.Config) (*Session, error) {
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	return NewSessionBuilder(log).WithPolicy(cfg.Policy()).Build()
}
