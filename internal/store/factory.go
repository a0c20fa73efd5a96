package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string // memory, file, redis, postgres
	DataDir       string
	PostgresDSN   string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
}

// Open builds the configured backend. The returned func releases any
// connections the backend holds; for local backends it is a no-op.
func Open(ctx context.Context, o Options) (Store, func(), error) {
	switch o.Backend {
	case "memory":
		return NewMemory(), func() {}, nil
	case "file":
		f, err := NewFile(o.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	case "redis":
		r, err := NewRedis(o.RedisAddr, o.RedisUsername, o.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case "postgres":
		p, err := NewPostgres(ctx, o.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", o.Backend)
	}
}
