// Package source defines where collection metadata comes from. Every
// Provider returns the complete set of collections or fails with a
// FetchError; there are no partial results.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielroe/directus-typegen/internal/model"
)

const systemCollectionPrefix = "directus_"

type Provider interface {
	FetchCollections(ctx context.Context) ([]model.Collection, error)
}

// FetchError is the error returned by providers when collection metadata
// cannot be retrieved. Err holds the underlying cause.
type FetchError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the source rejected the credentials.
func (e *FetchError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

func IsSystemCollection(name string) bool {
	return strings.HasPrefix(name, systemCollectionPrefix)
}
