package store

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by backends that cannot be read or written,
// such as a storage location that could not be opened.
var ErrUnavailable = errors.New("store: storage unavailable")

// KV is a durable string key-value store. Values are opaque to the store;
// callers own their encoding.
type KV interface {
	// Get returns the value stored under key. The boolean is false when the
	// key has never been set or was deleted.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes every given key. Missing keys are not an error. Backends
	// apply the deletion atomically where they can.
	Delete(ctx context.Context, keys ...string) error
}

// Unavailable is a KV whose every operation fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (Unavailable) Set(context.Context, string, string) error {
	return ErrUnavailable
}

func (Unavailable) Delete(context.Context, ...string) error {
	return ErrUnavailable
}
