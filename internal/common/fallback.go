package common

import "sync/atomic"

// FallbackCounter tallies source errors that were absorbed by falling back
// to synthetic data. Safe for concurrent use.
type FallbackCounter struct {
	rateLimited atomic.Int64
	timeout     atomic.Int64
	unavailable atomic.Int64
	other       atomic.Int64
}

// Record counts err under its kind. Nil errors are ignored.
func (c *FallbackCounter) Record(err error) {
	switch ErrorKind(err) {
	case "":
		return
	case "source_rate_limited":
		c.rateLimited.Add(1)
	case "source_timeout":
		c.timeout.Add(1)
	case "source_unavailable":
		c.unavailable.Add(1)
	default:
		c.other.Add(1)
	}
}

// Snapshot returns the current counts keyed by error kind.
func (c *FallbackCounter) Snapshot() map[string]int64 {
	return map[string]int64{
		"source_rate_limited": c.rateLimited.Load(),
		"source_timeout":      c.timeout.Load(),
		"source_unavailable":  c.unavailable.Load(),
		"other":               c.other.Load(),
	}
}
