package catalog

import "errors"

var (
	// ErrRateLimited indicates the catalog API rate limit was exceeded.
	ErrRateLimited = errors.New("catalog api rate limit exceeded")

	// ErrNoResults indicates no results were found.
	ErrNoResults = errors.New("no results found")

	// ErrInvalidResponse indicates the API returned an invalid response.
	ErrInvalidResponse = errors.New("invalid response from catalog api")

	// ErrFetchFailed is the generic transport-level failure for catalog reads.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrFeedUnavailable indicates an episode feed could not be retrieved.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedBlocked is the ErrFeedUnavailable sub-reason for feeds that
	// refuse access outright (401/403), the server-side analog of a
	// cross-origin restriction.
	ErrFeedBlocked = errors.New("feed blocked by publisher")
)

// IsFeedUnavailable reports whether err represents a feed that could not be
// fetched, as opposed to a feed that fetched but had no usable episodes.
func IsFeedUnavailable(err error) bool {
	return errors.Is(err, ErrFeedUnavailable)
}
