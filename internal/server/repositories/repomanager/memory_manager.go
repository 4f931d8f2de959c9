package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process. Transactions are
// serialized and rolled back by restoring a snapshot taken at their start.
// The dbx.DBTX handles are ignored: all repositories share one store.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memory.NewUsersRepository(m.store)
}

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return memory.NewRefreshTokensRepository(m.store)
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.store.Snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.Restore(snap)
			panic(p)
		}
		if err != nil {
			m.store.Restore(snap)
		}
	}()

	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
