// Package slot holds the durable key-value slot the cart is written through to.
// Every write replaces the whole value under a key; there are no partial updates.
package slot

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("slot: empty key")

type Slot interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
