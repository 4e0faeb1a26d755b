package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrFeedUnavailable indicates the upstream catalog feed could not be
	// reached. This is the one failure surfaced to the presentation layer,
	// because an empty catalog is otherwise indistinguishable from "no
	// matching items".
	ErrFeedUnavailable = errors.New("catalog feed unavailable")

	// ErrMalformedFeed indicates the feed responded but its payload could
	// not be decoded at the envelope level.
	ErrMalformedFeed = errors.New("catalog feed malformed")
)
