package config

import (
	"sync/atomic"
)

// Provider holds the active configuration and allows atomic swaps on reload.
// Handlers read a consistent snapshot via Get; they never see a half-updated
// config.
type Provider struct {
	config atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	p := &Provider{}
	p.config.Store(cfg)
	return p
}

func (p *Provider) Get() *Config {
	return p.config.Load()
}

func (p *Provider) Update(cfg *Config) {
	p.config.Store(cfg)
}
