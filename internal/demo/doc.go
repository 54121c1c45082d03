// Package demo holds the sample application driven by "weave run": a Home
// page switching between a clickable Index, a paged table of generated
// rows and a table of Star Wars characters loaded over HTTP, plus a
// standalone Counter that mirrors its value into the query string.
package demo
