package grpc

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

func newTestServer(t *testing.T) (*GRPCServer, *auth.Signer) {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := repomanager.NewMemoryRepositoryManager()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	signer, err := auth.NewSigner(auth.SignerConfig{Secret: []byte("secret"), Issuer: "gophauth"})
	require.NoError(t, err)

	tokens := services.NewRefreshTokenStore(m, time.Hour, nil)
	as := services.NewAuthService(m, tokens, services.NewStoreCredentialVerifier(m, hasher, 5, log),
		signer, hasher, services.AuthOptions{}, log)
	us := services.NewUserService(m, tokens, hasher, log)

	return NewGRPCServer("127.0.0.1:0", log, as, us, int64(signer.TTL().Seconds())), signer
}
