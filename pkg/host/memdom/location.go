package memdom

import (
	"net/url"

	"github.com/vango-dev/weave/pkg/host"
)

// Location is an in-memory host.Location. It records every URL it has
// pushed so tests can inspect history.
type Location struct {
	url     *url.URL
	history []string
}

var _ host.Location = (*Location)(nil)

// NewLocation parses rawURL as the starting location. An unparsable URL
// starts from "/".
func NewLocation(rawURL string) *Location {
	u, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		u = &url.URL{Path: "/"}
	}
	return &Location{url: u, history: []string{u.String()}}
}

// Query implements host.Location.
func (l *Location) Query() url.Values {
	return l.url.Query()
}

// SetQueryParam implements host.Location. It pushes a new history entry.
func (l *Location) SetQueryParam(key, value string) {
	q := l.url.Query()
	q.Set(key, value)
	l.url.RawQuery = q.Encode()
	l.history = append(l.history, l.url.String())
}

// String returns the current URL.
func (l *Location) String() string {
	return l.url.String()
}

// History returns every URL the location has held, oldest first.
func (l *Location) History() []string {
	out := make([]string, len(l.history))
	copy(out, l.history)
	return out
}
