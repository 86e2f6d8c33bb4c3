package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapProviderError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrAssertionRejected, resp.StatusCode(), body)
	}

	return fmt.Errorf("%w: http %d: %s", ErrProviderUnavailable, resp.StatusCode(), body)
}
