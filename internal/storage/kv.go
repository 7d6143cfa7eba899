// Package storage persists learner settings, progress and session history on
// top of a small key-value interface, and keeps the JSONL turn log.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// KV is the backing store. Values are opaque JSON documents.
// Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

type Options struct {
	Driver        string
	Dir           string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open returns the backend selected by opts.Driver.
func Open(opts Options) (KV, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverFile, "":
		return NewFileKV(opts.Dir)
	case DriverSQLite:
		return NewSQLiteKV(opts.SQLitePath)
	case DriverRedis:
		return NewRedisKV(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverNone:
		return NopKV{}, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", opts.Driver)
	}
}

// MemoryKV keeps values for the lifetime of the process.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// NopKV stores nothing. Every read misses, so callers see defaults.
type NopKV struct{}

func (NopKV) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (NopKV) Put(context.Context, string, []byte) error   { return nil }
func (NopKV) Delete(context.Context, string) error        { return nil }
func (NopKV) Close() error                                { return nil }
