package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   storage backend: postgres | memory
//	-d string   PostgreSQL DSN
//	-s string   access token HMAC secret key
//	-i string   access token issuer
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-o          rotate the refresh token on every refresh
//	-p string   password hash: bcrypt | argon2id
//	-k int      bcrypt cost
//	-n int      failed logins before an account is locked
//	-l string   log level
//	-g string   log backend: slog | zerolog
//
// os.Args is filtered with flagx.FilterArgs first so that flags owned by
// other components do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-m", "-d", "-s", "-i", "-t", "-r", "-o", "-p", "-k", "-n", "-l", "-g",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Issuer, "i", config.Issuer, "access token issuer")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.BoolVar(&config.RotateRefreshOnUse, "o", config.RotateRefreshOnUse, "rotate refresh token on use")
	fs.StringVar(&config.PasswordHash, "p", config.PasswordHash, "password hash algorithm (bcrypt|argon2id)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.MaxFailedAttempts, "n", config.MaxFailedAttempts, "failed logins before lock")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogBackend, "g", config.LogBackend, "log backend (slog|zerolog)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
