// Package provider fetches raw health collections from the Lonvital API.
package provider

import (
	"context"
	"errors"

	"github.com/blaisecz/health-trends/internal/domain"
)

var (
	// ErrProviderStatus indicates the provider answered with a non-2xx status.
	ErrProviderStatus = errors.New("provider returned an error status")
	// ErrProviderDecode indicates the provider body could not be decoded.
	ErrProviderDecode = errors.New("failed to decode provider response")
)

// Lookup modes for patient identifiers.
const (
	LookupEmail = "email"
	LookupHC    = "hc"
)

// Query selects one page of a collection.
type Query struct {
	UserID string
	// From and To are inclusive ISO-8601 bounds; empty means unbounded.
	From string
	To   string
	// FindByHC looks the user up by clinical history number instead of email.
	FindByHC bool
}

// Provider is the health-data source.
type Provider interface {
	FetchCollection(ctx context.Context, source domain.SourceType, q Query) ([]domain.RawRecord, error)
	FetchAnalyticsDocument(ctx context.Context, userID, documentID string, findByHC bool) (domain.RawRecord, error)
}
