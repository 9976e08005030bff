// Package credentials reads and writes the bearer token pair that identifies
// the signed-in user to the backend.
package credentials

import (
	"sync"

	"github.com/elearn-app/elearn/internal/logging"
	"go.uber.org/zap"
)

// Storage keys. They match the keys the backend's other clients persist under.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Credentials is the access/refresh token pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// KV is the persistent key/value storage the accessor writes to.
// *store.DB implements it.
type KV interface {
	GetValue(key string) (string, bool, error)
	SetValues(pairs map[string]string) error
	DeleteValues(keys ...string) error
}

// Accessor is the credential store. None of its methods fail: storage errors
// are logged and reads degrade to "signed out".
type Accessor struct {
	kv     KV
	logger *zap.Logger
}

// NewAccessor creates an accessor over kv.
func NewAccessor(kv KV, logger *zap.Logger) *Accessor {
	return &Accessor{kv: kv, logger: logging.OrNop(logger)}
}

// Get returns the stored credentials. ok is false when no access token is stored.
func (a *Accessor) Get() (Credentials, bool) {
	access, ok, err := a.kv.GetValue(AccessTokenKey)
	if err != nil {
		a.logger.Warn("read access token", zap.Error(err))
		return Credentials{}, false
	}
	if !ok || access == "" {
		return Credentials{}, false
	}
	refresh, _, err := a.kv.GetValue(RefreshTokenKey)
	if err != nil {
		a.logger.Warn("read refresh token", zap.Error(err))
	}
	return Credentials{AccessToken: access, RefreshToken: refresh}, true
}

// Set persists both tokens. Reports whether the write reached storage.
func (a *Accessor) Set(c Credentials) bool {
	if err := a.kv.SetValues(map[string]string{
		AccessTokenKey:  c.AccessToken,
		RefreshTokenKey: c.RefreshToken,
	}); err != nil {
		a.logger.Error("write credentials", zap.Error(err))
		return false
	}
	return true
}

// Clear removes both tokens (sign-out).
func (a *Accessor) Clear() {
	if err := a.kv.DeleteValues(AccessTokenKey, RefreshTokenKey); err != nil {
		a.logger.Error("clear credentials", zap.Error(err))
	}
}

// MemoryKV is an in-memory KV.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) GetValue(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) SetValues(pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range pairs {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryKV) DeleteValues(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
