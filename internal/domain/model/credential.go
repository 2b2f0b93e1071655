package model

import (
	"bytes"
	"encoding/json"
)

// LoginRequest is the body posted to Authentication/Authenticate.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the authentication result. Token is the bearer credential.
type LoginResponse struct {
	Token    string `json:"Token"`
	Oid      string `json:"Oid"`
	UserName string `json:"UserName"`

	// oidNull records an explicit "Oid": null, which is distinct from an
	// absent Oid.
	oidNull bool
}

// UnmarshalJSON decodes the response and notes whether Oid was null.
func (r *LoginResponse) UnmarshalJSON(data []byte) error {
	type plain LoginResponse
	var aux struct {
		plain
		Oid json.RawMessage `json:"Oid"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = LoginResponse(aux.plain)
	r.Oid = ""
	r.oidNull = false
	switch {
	case len(aux.Oid) == 0:
	case bytes.Equal(bytes.TrimSpace(aux.Oid), []byte("null")):
		r.oidNull = true
	default:
		if err := json.Unmarshal(aux.Oid, &r.Oid); err != nil {
			return err
		}
	}
	return nil
}

// Accepted reports whether the server opened a session: the token must be
// non-empty and Oid must not be null. An absent or empty Oid is accepted.
func (r LoginResponse) Accepted() bool {
	return r.Token != "" && !r.oidNull
}
