package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "15m"-style strings or integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	Storage                      string         `json:"storage" yaml:"storage"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	Issuer                       string         `json:"issuer" yaml:"issuer"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	RotateRefreshOnUse           bool           `json:"rotate_refresh_on_use" yaml:"rotate_refresh_on_use"`
	PasswordHash                 string         `json:"password_hash" yaml:"password_hash"`
	BcryptCost                   int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	MaxFailedAttempts            int            `json:"max_failed_attempts" yaml:"max_failed_attempts"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
	LogBackend                   string         `json:"log_backend" yaml:"log_backend"`
}

// parseFile overlays values from the file named by -c/-config. Keys missing
// from the file keep their current values. The format follows the extension:
// .yaml/.yml is YAML, anything else JSON. Unreadable or malformed files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := toFile(config)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fromFile(config, fc)
}

func toFile(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrGRPC:             c.EndpointAddrGRPC,
		Storage:                      c.Storage,
		DatabaseDSN:                  c.DatabaseDSN,
		SecretKey:                    c.SecretKey,
		Issuer:                       c.Issuer,
		AccessTokenValidityDuration:  timex.Duration{Duration: c.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: c.RefreshTokenValidityDuration},
		RotateRefreshOnUse:           c.RotateRefreshOnUse,
		PasswordHash:                 c.PasswordHash,
		BcryptCost:                   c.BcryptCost,
		MaxFailedAttempts:            c.MaxFailedAttempts,
		LogLevel:                     c.LogLevel,
		LogBackend:                   c.LogBackend,
	}
}

func fromFile(c *Config, fc *FileConfig) {
	c.EndpointAddrGRPC = fc.EndpointAddrGRPC
	c.Storage = fc.Storage
	c.DatabaseDSN = fc.DatabaseDSN
	c.SecretKey = fc.SecretKey
	c.Issuer = fc.Issuer
	c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	c.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	c.RotateRefreshOnUse = fc.RotateRefreshOnUse
	c.PasswordHash = fc.PasswordHash
	c.BcryptCost = fc.BcryptCost
	c.MaxFailedAttempts = fc.MaxFailedAttempts
	c.LogLevel = fc.LogLevel
	c.LogBackend = fc.LogBackend
}
