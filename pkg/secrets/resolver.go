package secrets

import (
	"fmt"
	"os"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
)

const VaultPrefix = "vault:"

// Reference is a parsed "vault:<path>#<field>" value.
type Reference struct {
	Path  string
	Field string
}

func IsReference(value string) bool {
	return strings.HasPrefix(value, VaultPrefix)
}

func ParseReference(value string) (Reference, error) {
	if !IsReference(value) {
		return Reference{}, fmt.Errorf("%w: missing %q prefix", ErrInvalidReference, VaultPrefix)
	}
	rest := strings.TrimPrefix(value, VaultPrefix)
	idx := strings.LastIndex(rest, "#")
	if idx <= 0 || idx == len(rest)-1 {
		return Reference{}, fmt.Errorf("%w: expected vault:<path>#<field>, got %q", ErrInvalidReference, value)
	}
	return Reference{
		Path:  strings.Trim(rest[:idx], "/"),
		Field: rest[idx+1:],
	}, nil
}

// FieldReader reads one field of a secret.
type FieldReader interface {
	ReadField(path, field string) (string, error)
}

// Resolver expands vault references. The vault client is only created the
// first time a reference is actually resolved.
type Resolver struct {
	Address string
	Reader  FieldReader
}

func NewResolver(address string) *Resolver {
	return &Resolver{Address: address}
}

func (r *Resolver) Resolve(value string) (string, error) {
	if !IsReference(value) {
		return value, nil
	}
	ref, err := ParseReference(value)
	if err != nil {
		return "", err
	}
	if r.Reader == nil {
		if r.Address == "" && os.Getenv(vaultapi.EnvVaultAddress) == "" {
			return "", ErrNoVaultAddress
		}
		client, err := NewVaultClient(r.Address)
		if err != nil {
			return "", err
		}
		r.Reader = client
	}
	return r.Reader.ReadField(ref.Path, ref.Field)
}
