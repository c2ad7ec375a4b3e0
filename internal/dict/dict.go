// internal/dict/dict.go
//
// Dictionary validation for final-word checking.
//
// Two outcomes are deliberately kept distinct:
//   - Result{Valid: false}: the authority confirmed the word is not a word.
//   - a non-nil error: the authority could not be reached (network fault,
//     timeout, 5xx). The resolver surfaces this as VALIDATOR_UNAVAILABLE
//     rather than guessing either way.
//
// Implementations:
//   - Client: HTTP validator against a dictionaryapi.dev-shaped endpoint
//     (GET {base}/{word}, 200 = word, 404 = not a word). One local retry on
//     transport faults.
//   - Local: offline validator backed by a lookup function over the loaded
//     allowed list; used in dev mode and tests.

package dict

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is the authority's verdict on a single word.
type Result struct {
	Valid  bool
	Reason string
}

// Validator answers whether a word is a real word.
// A non-nil error means "validator unavailable", never "not a word".
type Validator interface {
	Check(ctx context.Context, word string) (Result, error)
}

// Client talks to an external dictionary HTTP API.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient builds an HTTP validator. timeout bounds each lookup attempt.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// Check looks up word against the external API. Transport faults are
// retried once before being reported as unavailable.
func (c *Client) Check(ctx context.Context, word string) (Result, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		res, err := c.lookup(ctx, word)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.Warn().Err(err).Str("word", word).Int("attempt", attempt+1).Msg("dictionary lookup failed")
	}
	return Result{}, fmt.Errorf("dictionary unavailable for %q: %w", word, lastErr)
}

func (c *Client) lookup(ctx context.Context, word string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+url.PathEscape(word), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return Result{Valid: true}, nil
	case resp.StatusCode == http.StatusNotFound:
		// The authority answered: confirmed not a word.
		return Result{Valid: false, Reason: "not found in dictionary"}, nil
	default:
		return Result{}, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}
}

// Local validates against an in-process lookup function (the loaded allowed
// list). It never fails with "unavailable".
type Local struct {
	lookup func(string) bool
}

// NewLocal builds an offline validator from a membership function.
func NewLocal(lookup func(string) bool) *Local {
	return &Local{lookup: lookup}
}

func (l *Local) Check(_ context.Context, word string) (Result, error) {
	if l.lookup(word) {
		return Result{Valid: true}, nil
	}
	return Result{Valid: false, Reason: "not in word list"}, nil
}
