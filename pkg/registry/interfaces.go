//go:generate mockgen -destination=mocks/registry.go . Client
package registry

import "context"

// Client defines the interface for package registry lookups.
type Client interface {
	// FetchMetadata returns the dist-tags and published versions of name.
	// A package the registry does not know yields ErrPackageNotInRegistry.
	FetchMetadata(ctx context.Context, name string) (*Metadata, error)
}
