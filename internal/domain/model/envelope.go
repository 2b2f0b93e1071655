package model

// Envelope is the success/data/error wrapper used by the non-OData endpoints.
// A nil Data on success is the "empty" case, not an error.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Normalize enforces that a failed envelope carries no data.
func (e *Envelope[T]) Normalize() {
	if !e.Success {
		e.Data = nil
	}
}

// HasData returns true when the envelope succeeded and carries a payload.
func (e Envelope[T]) HasData() bool {
	return e.Success && e.Data != nil
}

// Err converts a failed envelope into an *EnvelopeError, preferring the
// server's error text, then its message, then fallback. Returns nil on success.
func (e Envelope[T]) Err(fallback string) error {
	if e.Success {
		return nil
	}
	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = fallback
	}
	return &EnvelopeError{Message: msg}
}

// ODataEnvelope wraps OData collection responses. Count and NextLink are
// exposed when the server sends them but are never followed.
type ODataEnvelope[T any] struct {
	Context  string `json:"@odata.context,omitempty"`
	Count    *int   `json:"@odata.count,omitempty"`
	NextLink string `json:"@odata.nextLink,omitempty"`
	Value    []T    `json:"value"`
}

// Normalize guarantees Value is non-nil.
func (e *ODataEnvelope[T]) Normalize() {
	if e.Value == nil {
		e.Value = []T{}
	}
}
