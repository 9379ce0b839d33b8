package httpx

import (
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// NewClient returns an HTTP client whose requests are traced and bounded by timeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// StatusOf extracts the upstream HTTP status from err, 0 when none is attached.
func StatusOf(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}
