package config

import (
	"time"
)

const (
	OAuth2ProviderGoogle = "google"
	OAuth2ProviderGitHub = "github"
)

// Duration wraps time.Duration so TOML files can use strings like "45m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Jwt struct {
	AuthSecret        string   `toml:"auth_secret"`
	AuthTokenDuration Duration `toml:"auth_token_duration"`
}

type Auth struct {
	BcryptCost int `toml:"bcrypt_cost"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ClientIpProxyHeader     string   `toml:"client_ip_proxy_header"`
}

type Game struct {
	HistoryDefaultLimit int `toml:"history_default_limit"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	Scopes       []string `toml:"scopes"`
	PKCE         bool     `toml:"pkce"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
}

type LogRequestLimits struct {
	URILength       int `toml:"uri_length"`
	UserAgentLength int `toml:"user_agent_length"`
	RefererLength   int `toml:"referer_length"`
	RemoteIPLength  int `toml:"remote_ip_length"`
}

type LogRequest struct {
	Activated bool             `toml:"activated"`
	Limits    LogRequestLimits `toml:"limits"`
}

type Log struct {
	Request LogRequest `toml:"request"`
}

type BlockIp struct {
	Enabled   bool   `toml:"enabled"`
	Activated bool   `toml:"activated"`
	Level     string `toml:"level"`
}

type Config struct {
	DBFile string `toml:"db_file"`

	Jwt             Jwt                       `toml:"jwt"`
	Auth            Auth                      `toml:"auth"`
	Server          Server                    `toml:"server"`
	Game            Game                      `toml:"game"`
	OAuth2Providers map[string]OAuth2Provider `toml:"oauth2_providers"`
	Log             Log                       `toml:"log"`
	BlockIp         BlockIp                   `toml:"block_ip"`
}
