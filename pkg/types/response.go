// Package types holds the wire envelopes shared by every API response.
package types

// SuccessEnvelope wraps all 2xx payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PageEnvelope is the data shape for cursor-paginated listings. An empty
// NextCursor means the listing is exhausted.
type PageEnvelope struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// APIError is the client-visible error body. Details is populated only
// for codes whose metadata allows it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps all non-2xx payloads.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
