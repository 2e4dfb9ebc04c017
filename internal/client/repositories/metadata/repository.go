// Package metadata stores small key/value records in the client's local
// sqlite database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports a missing key with
// ok == false rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}
