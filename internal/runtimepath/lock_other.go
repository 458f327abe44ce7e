//go:build !unix

package runtimepath

import "context"

// Lock is a no-op where advisory file locks are unavailable.
type Lock struct{}

func Acquire(ctx context.Context, path string) (*Lock, error) {
	return &Lock{}, ctx.Err()
}

func (l *Lock) Release() error { return nil }
