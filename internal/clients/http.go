package clients

import (
	"io"
	"net/http"

	"evervoice_backend/pkg/apperrors"
)

// readBody drains a response body, capping what we keep for error details.
func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	return string(b)
}

// providerHTTPError builds the ProviderError for a non-2xx upstream reply.
func providerHTTPError(domain, op string, resp *http.Response) *apperrors.AppError {
	body := readBody(resp)
	msg := op + " failed"
	if resp.StatusCode >= 500 {
		msg = op + " failed upstream"
	}
	return apperrors.ErrProvider(nil, domain, msg, resp.StatusCode, body)
}
