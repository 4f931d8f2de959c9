// Package repomanager hands out repositories bound to a database handle and
// runs units of work inside transactions, hiding whether the backing store
// is PostgreSQL or memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// RepositoryManager is the storage entry point used by the services.
type RepositoryManager interface {
	// RunMigrations brings the schema up to date.
	RunMigrations(ctx context.Context) error
	// WithTx runs fn in a transaction. Repositories built from the handle
	// passed to fn take part in it; fn's error rolls everything back.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Close() error
}
