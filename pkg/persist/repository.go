// Package persist stores one JSON document per namespace. Each client-side
// store (cart, wishlist, orders, auth) owns exactly one namespace and writes
// its full state on every mutation.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidNamespace is returned for an empty namespace.
var ErrInvalidNamespace = errors.New("namespace is required")

// Repository defines the contract for namespaced state snapshots.
type Repository interface {
	// Load decodes the snapshot stored under namespace into v. It reports
	// false, with v untouched, when nothing has been saved yet.
	Load(ctx context.Context, namespace string, v any) (bool, error)
	// Save replaces the snapshot stored under namespace.
	Save(ctx context.Context, namespace string, v any) error
	// Delete drops the snapshot. Deleting a missing namespace is not an error.
	Delete(ctx context.Context, namespace string) error
}

func encode(namespace string, v any) ([]byte, error) {
	if namespace == "" {
		return nil, ErrInvalidNamespace
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s state: %w", namespace, err)
	}
	return data, nil
}

func decode(namespace string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s state: %w", namespace, err)
	}
	return nil
}
