package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/weave/internal/demo"
	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/devtools"
	"github.com/vango-dev/weave/pkg/engine"
	"github.com/vango-dev/weave/pkg/host/httpfetch"
	"github.com/vango-dev/weave/pkg/host/memdom"
	"github.com/vango-dev/weave/pkg/metrics"
)

// session is one engine mounted on an in-memory document, with its
// metrics registry and pass stream.
type session struct {
	name     string
	doc      *memdom.Document
	location *memdom.Location
	engine   *engine.Engine
	registry *prometheus.Registry
	stream   *devtools.PassStream
}

// rootName returns the component named on the command line, or the
// configured root.
func (a *app) rootName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.App.Root
}

func (a *app) newSession(name, rawURL string) (*session, error) {
	root, ok := demo.Lookup(name)
	if !ok {
		return nil, errors.New("W401").WithDetail(fmt.Sprintf("No component named %q.", name))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.New(
		metrics.WithRegistry(registry),
		metrics.WithNamespace(a.cfg.Metrics.Namespace),
		metrics.WithConstLabels(prometheus.Labels{"root": name}),
	)
	stream := devtools.NewPassStream()

	s := &session{
		name:     name,
		doc:      memdom.New(),
		location: memdom.NewLocation(rawURL),
		registry: registry,
		stream:   stream,
	}
	s.engine = engine.New(s.doc, root,
		engine.WithLogger(a.logger),
		engine.WithFetcher(httpfetch.New(&http.Client{})),
		engine.WithFetchTimeout(a.cfg.FetchTimeout()),
		engine.WithLocation(s.location),
		engine.WithMaxChainedPasses(a.cfg.Engine.MaxChainedPasses),
		engine.WithObserver(collector.Observe),
		engine.WithObserver(stream.Observe),
	)
	return s, nil
}

// inspector returns the devtools server for the session.
func (a *app) inspector(s *session) *devtools.Server {
	return devtools.New(s.engine,
		devtools.WithGatherer(s.registry),
		devtools.WithStream(s.stream),
		devtools.WithLogger(a.logger),
	)
}

func (s *session) close() {
	s.stream.Close()
}
