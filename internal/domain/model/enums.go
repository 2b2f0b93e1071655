package model

// FailureKind classifies why a request to the CRM API did not yield a value.
type FailureKind string

const (
	FailureAuth      FailureKind = "auth"      // 401 or 403: credential missing or expired.
	FailureNotFound  FailureKind = "not_found" // 404: target record absent.
	FailureTransport FailureKind = "transport" // Other non-2xx status or network error.
	FailureDecode    FailureKind = "decode"    // Body matched neither the direct nor the string-wrapped shape.
)
