package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// CredentialHash is an opaque bcrypt hash. The only supported operation is
// Verify; it never renders its contents.
type CredentialHash struct {
	b []byte
}

// NewCredentialHash hashes secret with a fresh random salt at the given cost.
func NewCredentialHash(secret string, cost int) (CredentialHash, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return CredentialHash{}, fmt.Errorf("hash credential: %w", err)
	}
	return CredentialHash{b: b}, nil
}

// Verify compares secret against the hash in constant time.
func (h CredentialHash) Verify(secret string) bool {
	if len(h.b) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.b, []byte(secret)) == nil
}

// IsZero reports whether no hash has been set.
func (h CredentialHash) IsZero() bool {
	return len(h.b) == 0
}

// Cost returns the work factor the hash was produced with.
func (h CredentialHash) Cost() (int, error) {
	return bcrypt.Cost(h.b)
}

func (h CredentialHash) String() string   { return "[redacted]" }
func (h CredentialHash) GoString() string { return "entity.CredentialHash{[redacted]}" }

func (h CredentialHash) MarshalText() ([]byte, error) {
	return []byte("[redacted]"), nil
}

// Value implements driver.Valuer.
func (h CredentialHash) Value() (driver.Value, error) {
	if len(h.b) == 0 {
		return nil, errors.New("empty credential hash")
	}
	return h.b, nil
}

// Scan implements sql.Scanner.
func (h *CredentialHash) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		h.b = append([]byte(nil), v...)
	case string:
		h.b = []byte(v)
	default:
		return fmt.Errorf("scan credential hash: unsupported type %T", src)
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummyHash CredentialHash
)

// DummyVerify burns the same bcrypt work as a real comparison so callers can
// keep unknown-user and wrong-password paths indistinguishable by timing.
func DummyVerify(secret string, cost int) {
	dummyOnce.Do(func() {
		dummyHash, _ = NewCredentialHash("storefront-dummy-credential", cost)
	})
	dummyHash.Verify(secret)
}
