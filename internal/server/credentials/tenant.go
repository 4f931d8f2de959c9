package credentials

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/failure"
)

// HostPlatform is how the host tenant is rendered inside a composite key.
const HostPlatform = "HOST_PLATFORM"

// Tenant is either the host platform or a scoped tenant identified by a UUID.
// The zero value is the host.
type Tenant struct {
	id     uuid.UUID
	scoped bool
}

// Host returns the host platform tenant.
func Host() Tenant { return Tenant{} }

// Scoped returns the tenant with the given id.
func Scoped(id uuid.UUID) Tenant { return Tenant{id: id, scoped: true} }

// ParseTenant reads a tenant id as sent by clients. Blank means host.
func ParseTenant(raw string) (Tenant, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Host(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Tenant{}, failure.InvalidFormat("tenantId")
	}
	return Scoped(id), nil
}

// TenantFromNullUUID converts a nullable storage column into a Tenant.
func TenantFromNullUUID(n uuid.NullUUID) Tenant {
	if !n.Valid {
		return Host()
	}
	return Scoped(n.UUID)
}

func (t Tenant) IsHost() bool { return !t.scoped }

// ID returns the tenant id and false for the host.
func (t Tenant) ID() (uuid.UUID, bool) { return t.id, t.scoped }

// NullUUID is the storage representation: NULL for the host.
func (t Tenant) NullUUID() uuid.NullUUID {
	return uuid.NullUUID{UUID: t.id, Valid: t.scoped}
}

// String returns the tenant uuid, or an empty string for the host.
func (t Tenant) String() string {
	if !t.scoped {
		return ""
	}
	return t.id.String()
}

func (t Tenant) keyPart() string {
	if !t.scoped {
		return HostPlatform
	}
	return t.id.String()
}
