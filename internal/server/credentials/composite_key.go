package credentials

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/failure"
)

const compositeKeySeparator = "::"

// CompositeKey identifies an account across tenants: "<email>::<tenant>".
func CompositeKey(email Email, tenant Tenant) string {
	return email.String() + compositeKeySeparator + tenant.keyPart()
}

// ParseCompositeKey splits a key built by CompositeKey. The separator is
// searched from the right so that the email part is taken verbatim.
func ParseCompositeKey(key string) (Email, Tenant, error) {
	i := strings.LastIndex(key, compositeKeySeparator)
	if i < 0 {
		return Email{}, Tenant{}, failure.InvalidFormat("compositeKey")
	}

	email, err := NewEmail(key[:i])
	if err != nil {
		return Email{}, Tenant{}, err
	}

	part := key[i+len(compositeKeySeparator):]
	if part == HostPlatform {
		return email, Host(), nil
	}
	if part == "" {
		return Email{}, Tenant{}, failure.InvalidFormat("compositeKey")
	}
	tenant, err := ParseTenant(part)
	if err != nil {
		return Email{}, Tenant{}, err
	}
	return email, tenant, nil
}
