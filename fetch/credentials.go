package fetch

import (
	"strings"
	"sync"
)

type Credential struct {
	Slot int
	Key  string
}

// CredentialPool is an ordered set of interchangeable API keys. The current
// slot only moves on rotation and wraps around.
type CredentialPool struct {
	mu      sync.Mutex
	keys    []string
	current int
}

func NewCredentialPool(keys ...string) *CredentialPool {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		cleaned = append(cleaned, k)
	}

	return &CredentialPool{keys: cleaned}
}

func (cp *CredentialPool) Len() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	return len(cp.keys)
}

func (cp *CredentialPool) Current() (Credential, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if len(cp.keys) == 0 {
		return Credential{}, ErrNoCredentials
	}

	return Credential{Slot: cp.current, Key: cp.keys[cp.current]}, nil
}

// Rotate moves to the next key unconditionally.
func (cp *CredentialPool) Rotate() (Credential, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if len(cp.keys) == 0 {
		return Credential{}, ErrNoCredentials
	}
	cp.current = (cp.current + 1) % len(cp.keys)

	return Credential{Slot: cp.current, Key: cp.keys[cp.current]}, nil
}

// Advance rotates away from slot from. If another caller already moved the
// pool on, the current credential is returned as is.
func (cp *CredentialPool) Advance(from int) (Credential, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if len(cp.keys) == 0 {
		return Credential{}, ErrNoCredentials
	}
	if cp.current == from {
		cp.current = (cp.current + 1) % len(cp.keys)
	}

	return Credential{Slot: cp.current, Key: cp.keys[cp.current]}, nil
}
