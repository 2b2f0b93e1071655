package crmapi

import "errors"

// ErrMissingOid is returned when a customer operation is given no key.
var ErrMissingOid = errors.New("customer oid is required")
