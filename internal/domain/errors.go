package domain

import "errors"

// Sentinel errors for classifying check failures into plugin statuses.
// Callers wrap these so the CLI can map them without knowing where they
// were raised.
//
//	return fmt.Errorf("%w: no metrics returned for %s", domain.ErrNoData, path)
var (
	// ErrUsage indicates bad, missing or conflicting command-line input.
	// It is always raised before any network call.
	ErrUsage = errors.New("usage error")

	// ErrTransport indicates the request failed or returned a non-success
	// HTTP status.
	ErrTransport = errors.New("transport error")

	// ErrTimeout indicates the overall check deadline expired.
	ErrTimeout = errors.New("timed out")

	// ErrEmptyResponse indicates a successful status with an empty body.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedJSON indicates a body that cannot possibly be JSON,
	// usually from talking plaintext to a TLS-only port.
	ErrMalformedJSON = errors.New("malformed json")

	// ErrJSONDecode indicates the body failed to decode as JSON.
	ErrJSONDecode = errors.New("json decode error")

	// ErrMalformedResponse indicates decoded JSON missing required fields.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoData indicates the API returned no metric items.
	ErrNoData = errors.New("no data")

	// ErrInternal indicates the server broke a contract the client relies
	// on, such as duplicate metric names without a context.
	ErrInternal = errors.New("code error")
)
