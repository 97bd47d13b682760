package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/slidegen/pkg/httputil"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = errors.New("network error")

// connectBackoff covers the initial ping of a remote backend, which often
// races a container that is still starting.
var connectBackoff = httputil.Backoff{Attempts: 3, Delay: 250 * time.Millisecond, MaxDelay: time.Second}

// ping retries fn under connectBackoff and tags a final failure ErrNetwork.
func ping(ctx context.Context, backend string, fn func(context.Context) error) error {
	err := connectBackoff.Retry(ctx, func() error {
		if err := fn(ctx); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		return fmt.Errorf("%w: %s ping: %v", ErrNetwork, backend, err)
	}
	return nil
}
