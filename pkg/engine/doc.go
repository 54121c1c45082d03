// Package engine mounts a root component onto a host document and keeps
// the document in step with component state.
//
// An Engine owns the component registry and a single run loop. Host
// events, timers and fetch completions are queued as tasks with Post; Tick
// drains the queue and, if anything marked the engine dirty, runs exactly
// one render pass. Writes made by those tasks are therefore batched into
// one pass.
//
// A render pass rebuilds the whole element tree from the root component
// and reconciles it against the host by position:
//
//   - a node whose kind or tag differs from the host node replaces it;
//   - text nodes have their content replaced when it differs;
//   - containers get their listeners re-registered, their model binding
//     refreshed, their attributes reconciled and their children walked by
//     index, appending missing host children and removing surplus ones.
//
// Writes whose value already matches the live host node are skipped, so a
// pass with no state change performs no host mutations.
//
// Run drives the loop from a goroutine; tests usually call Tick directly.
package engine
