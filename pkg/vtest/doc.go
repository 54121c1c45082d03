// Package vtest mounts components on an in-memory document for tests.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, Counter)
//	    h.Click("button")
//	    if got := h.Text("button"); got != "1" {
//	        t.Errorf("button = %q, want 1", got)
//	    }
//	}
//
// Every helper fails the test on error, so test bodies stay linear.
//
// # Asynchronous Work
//
// Fetches and timers finish off the run loop and post their results back.
// Eventually ticks until a condition holds:
//
//	h := vtest.Mount(t, People, engine.WithFetcher(stub))
//	h.Eventually(func() bool { return len(h.FindAll("tr")) > 1 }, time.Second)
//
// # Counting Host Writes
//
// Mutations reports how many host writes happened since ResetStats, which
// makes "this pass changed nothing" a one-line assertion.
package vtest
