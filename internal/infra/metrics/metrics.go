package metrics

import "sync/atomic"

type Counters struct {
	PayloadsCompiled   uint64
	FieldSyncs         uint64
	PayloadSyncs       uint64
	SyncRejections     uint64
	RequestsDispatched uint64
	RequestsSucceeded  uint64
	RequestsFailed     uint64
}

func (c *Counters) IncPayloadsCompiled() {
	atomic.AddUint64(&c.PayloadsCompiled, 1)
}

func (c *Counters) IncFieldSyncs() {
	atomic.AddUint64(&c.FieldSyncs, 1)
}

func (c *Counters) IncPayloadSyncs() {
	atomic.AddUint64(&c.PayloadSyncs, 1)
}

func (c *Counters) IncSyncRejections() {
	atomic.AddUint64(&c.SyncRejections, 1)
}

func (c *Counters) IncDispatched() {
	atomic.AddUint64(&c.RequestsDispatched, 1)
}

func (c *Counters) IncSucceeded() {
	atomic.AddUint64(&c.RequestsSucceeded, 1)
}

func (c *Counters) IncFailed() {
	atomic.AddUint64(&c.RequestsFailed, 1)
}
