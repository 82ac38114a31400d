package config

import (
	"fmt"
	"net"

	"github.com/caasmo/balancescale/crypto"
	"golang.org/x/crypto/bcrypt"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateJwt(&cfg.Jwt); err != nil {
		return fmt.Errorf("jwt config validation failed: %w", err)
	}
	if err := validateAuth(&cfg.Auth); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}
	if err := validateBlockIp(&cfg.BlockIp); err != nil {
		return fmt.Errorf("block_ip config validation failed: %w", err)
	}
	if cfg.Game.HistoryDefaultLimit < 1 {
		return fmt.Errorf("game history_default_limit must be at least 1, got %d", cfg.Game.HistoryDefaultLimit)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or :port format.
// If only a port is provided (e.g., ":8080"), it defaults the host to "localhost".
//
// Allowed formats:
//   - "host:port" (e.g., "example.com:8080", "127.0.0.1:8080", "[::1]:8080")
//   - ":port"     (e.g., ":8080" becomes "localhost:8080")
//
// The port part is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
	}
	// SplitHostPort accepts ":8080" with an empty host.
	if host == "" {
		host = "localhost"
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	// Reconstruct the address with the defaulted host if necessary
	server.Addr = net.JoinHostPort(host, port)

	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	return nil
}

func validateJwt(jwt *Jwt) error {
	if len(jwt.AuthSecret) < crypto.MinKeyLength {
		return fmt.Errorf("auth_secret must be at least %d bytes, got %d", crypto.MinKeyLength, len(jwt.AuthSecret))
	}
	if jwt.AuthTokenDuration.Duration <= 0 {
		return fmt.Errorf("auth_token_duration must be positive, got %s", jwt.AuthTokenDuration.Duration)
	}
	return nil
}

func validateAuth(auth *Auth) error {
	if auth.BcryptCost < bcrypt.MinCost || auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, auth.BcryptCost)
	}
	return nil
}

func validateBlockIp(blockIp *BlockIp) error {
	switch blockIp.Level {
	case "low", "medium", "high":
		return nil
	}
	return fmt.Errorf("level must be one of low, medium, high; got '%s'", blockIp.Level)
}
