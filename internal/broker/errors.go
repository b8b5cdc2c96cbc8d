package broker

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	rabbithole "github.com/michaelklishin/rabbit-hole/v2"

	"github.com/andrzejandrzej/rabbit-tools/internal/selection"
)

var (
	// ErrNotFound marks a 404 from the management API. It matches
	// selection.ErrQueueNotFound so the executor can retire the ordinal.
	ErrNotFound     = selection.ErrQueueNotFound
	ErrUnauthorized = errors.New("management api rejected credentials")
	ErrRequest      = errors.New("management api request failed")
)

// classify maps a rabbit-hole result onto the package sentinels. The
// response status is consulted even when err is nil because some endpoints
// report failures only through the status code.
func classify(operation, target string, res *http.Response, err error) error {
	status := statusOf(res, err)
	if err == nil && status < http.StatusBadRequest {
		return nil
	}

	var marker error
	switch status {
	case http.StatusNotFound:
		marker = ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		marker = ErrUnauthorized
	default:
		marker = ErrRequest
	}

	detail := operation
	if target = strings.TrimSpace(target); target != "" {
		detail = fmt.Sprintf("%s %q", operation, target)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s: status %d", marker, detail, status)
}

// unauthorizedText is the only trace rabbit-hole leaves of a 401; it drops
// the response and returns a plain error.
const unauthorizedText = "API responded with a 401 Unauthorized"

func statusOf(res *http.Response, err error) int {
	if err != nil && strings.Contains(err.Error(), unauthorizedText) {
		return http.StatusUnauthorized
	}
	var value rabbithole.ErrorResponse
	if errors.As(err, &value) {
		return value.StatusCode
	}
	var pointer *rabbithole.ErrorResponse
	if errors.As(err, &pointer) && pointer != nil {
		return pointer.StatusCode
	}
	if res != nil {
		return res.StatusCode
	}
	return 0
}
