package engine

import "time"

// PassReport describes one render pass.
type PassReport struct {
	// Seq numbers passes from 1.
	Seq uint64 `json:"seq"`

	Start time.Time     `json:"start"`
	Build time.Duration `json:"build"`
	Patch time.Duration `json:"patch"`
	Total time.Duration `json:"total"`

	// Ops counts the host operations applied, by kind.
	Ops OpCounts `json:"-"`

	// Components is the registry size after the pass.
	Components int `json:"components"`

	// Err is the error that aborted the pass, if any.
	Err error `json:"-"`
}

// Observer receives a report after every pass, on the run loop.
type Observer func(PassReport)
