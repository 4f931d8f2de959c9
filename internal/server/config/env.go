package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

const envPrefix = "GOPHAUTH"

// parseEnv overlays GOPHAUTH_<KEY> environment variables, where KEY is the
// upper-cased config file key (GOPHAUTH_SECRET_KEY, GOPHAUTH_STORAGE, ...).
// Malformed numeric, boolean or duration values panic like malformed flags.
func parseEnv(c *Config) {
	getString("endpoint_addr_grpc", &c.EndpointAddrGRPC)
	getString("storage", &c.Storage)
	getString("database_dsn", &c.DatabaseDSN)
	getString("secret_key", &c.SecretKey)
	getString("issuer", &c.Issuer)
	getDuration("access_token_validity_duration", &c.AccessTokenValidityDuration)
	getDuration("refresh_token_validity_duration", &c.RefreshTokenValidityDuration)
	getBool("rotate_refresh_on_use", &c.RotateRefreshOnUse)
	getString("password_hash", &c.PasswordHash)
	getInt("bcrypt_cost", &c.BcryptCost)
	getInt("max_failed_attempts", &c.MaxFailedAttempts)
	getString("log_level", &c.LogLevel)
	getString("log_backend", &c.LogBackend)
}

func lookup(key string) (string, string, bool) {
	name := flagx.EnvName(envPrefix, key)
	v, ok := os.LookupEnv(name)
	return name, v, ok
}

func getString(key string, dst *string) {
	if _, v, ok := lookup(key); ok {
		*dst = v
	}
}

func getInt(key string, dst *int) {
	name, v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = n
}

func getDuration(key string, dst *time.Duration) {
	name, v, ok := lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = d
}

func getBool(key string, dst *bool) {
	name, v, ok := lookup(key)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		*dst = true
	case "0", "false", "f", "no", "n", "off":
		*dst = false
	default:
		panic(fmt.Errorf("%s: invalid boolean %q", name, v))
	}
}
