package rest

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

// maxBodySnippet bounds the raw body kept on a RequestError.
const maxBodySnippet = 512

// decode turns a 2xx body into T.
//
// The backend inconsistently double-serialises some responses: the payload
// arrives as a JSON string whose content is the real JSON document. Decoding
// therefore tries the body as T first and, only if that fails, unwraps it as
// a string and decodes the inner text as T. Fallback hits are counted and
// logged so the upstream contract violation stays visible.
//
// An empty body decodes to the zero value of T.
func decode[T any](c *Client, method, path string, raw []byte) (T, error) {
	var zero T

	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}

	var direct T
	directErr := json.Unmarshal(raw, &direct)
	if directErr == nil {
		return direct, nil
	}

	if unwrapped, ok := decodeStringWrapped[T](raw); ok {
		c.stats.doubleEncoded.Add(1)
		c.logger.Warn("api response was double-encoded",
			"method", method,
			"path", path,
			"bytes", len(raw),
		)
		return unwrapped, nil
	}

	return zero, c.fail(&model.RequestError{
		Kind:   model.FailureDecode,
		Method: method,
		Path:   path,
		Body:   truncate(raw),
		Err:    directErr,
	})
}

// decodeStringWrapped decodes raw as a JSON string and then the string's
// content as T.
func decodeStringWrapped[T any](raw []byte) (T, bool) {
	var out T

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return out, false
	}
	if err := json.Unmarshal([]byte(inner), &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// truncate returns raw as text, cut to maxBodySnippet bytes on a rune boundary.
func truncate(raw []byte) string {
	if len(raw) <= maxBodySnippet {
		return strings.ToValidUTF8(string(raw), "�")
	}

	cut := maxBodySnippet
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return strings.ToValidUTF8(string(raw[:cut]), "�") + "...(truncated)"
}
