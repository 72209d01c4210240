package spotify

import (
	"fmt"

	"golang.org/x/oauth2"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

// UpstreamError is a non-success response from Spotify. It carries the
// upstream status and body for diagnosability and unwraps to one of the
// category sentinels in internal/errors.
type UpstreamError struct {
	Kind       error // category sentinel (ErrTokenExchange, ErrUpstreamAuth, ...)
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: spotify returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// wrapRetrieveError converts an oauth2 token-endpoint failure into an
// UpstreamError when the provider answered, and wraps transport errors
// otherwise.
func wrapRetrieveError(kind error, op string, err error) error {
	var re *oauth2.RetrieveError
	if apperrors.As(err, &re) && re.Response != nil {
		return &UpstreamError{
			Kind:       kind,
			Op:         op,
			StatusCode: re.Response.StatusCode,
			Body:       string(re.Body),
		}
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
