// Package store persists small keyed records across process restarts. The
// session identity is the only record written through it.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Storage is a durable key/value map. Delete of a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindRedis    = "redis"
	KindPostgres = "postgres"
)

type Options struct {
	Kind        string
	Path        string
	RedisURL    string
	DatabaseURL string
}

func Open(ctx context.Context, o Options) (Storage, error) {
	switch o.Kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile, "":
		return NewFile(o.Path)
	case KindRedis:
		return NewRedis(ctx, o.RedisURL)
	case KindPostgres:
		return NewPostgres(ctx, o.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown storage %q", o.Kind)
}

type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
