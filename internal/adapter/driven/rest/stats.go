package rest

import (
	"sync/atomic"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

// Stats is a snapshot of request counters.
type Stats struct {
	Requests          uint64
	AuthFailures      uint64
	NotFound          uint64
	TransportFailures uint64
	DecodeFailures    uint64
	// DoubleEncoded counts 2xx bodies that only decoded after unwrapping a
	// JSON string. Non-zero means the backend is still double-serialising.
	DoubleEncoded uint64
}

type counters struct {
	requests      atomic.Uint64
	auth          atomic.Uint64
	notFound      atomic.Uint64
	transport     atomic.Uint64
	decode        atomic.Uint64
	doubleEncoded atomic.Uint64
}

func (c *counters) record(kind model.FailureKind) {
	switch kind {
	case model.FailureAuth:
		c.auth.Add(1)
	case model.FailureNotFound:
		c.notFound.Add(1)
	case model.FailureTransport:
		c.transport.Add(1)
	case model.FailureDecode:
		c.decode.Add(1)
	}
}

// Stats returns a snapshot of the client's request counters.
func (c *Client) Stats() Stats {
	return Stats{
		Requests:          c.stats.requests.Load(),
		AuthFailures:      c.stats.auth.Load(),
		NotFound:          c.stats.notFound.Load(),
		TransportFailures: c.stats.transport.Load(),
		DecodeFailures:    c.stats.decode.Load(),
		DoubleEncoded:     c.stats.doubleEncoded.Load(),
	}
}
