// Package snapshot saves the rendered host tree as a standalone HTML
// document, to a directory or to an S3 bucket.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/weave/pkg/engine"
	"github.com/vango-dev/weave/pkg/host"
)

// ErrEmptyName is returned when a snapshot name is empty or escapes the
// sink's root.
var ErrEmptyName = errors.New("snapshot: invalid name")

// Sink stores a snapshot and reports where it went.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
}

// Document wraps the mount node's markup in a minimal HTML page.
func Document(title string, mount host.Node) []byte {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n")
	sb.WriteString(host.OuterHTML(mount))
	sb.WriteString("\n</html>\n")
	return []byte(sb.String())
}

// Capture renders e's current host tree. Call it from the run loop.
func Capture(e *engine.Engine, title string) []byte {
	return Document(title, e.Mount())
}

// Take captures a running engine through Engine.Do and stores the result.
func Take(ctx context.Context, e *engine.Engine, sink Sink, name string) (string, error) {
	var data []byte
	err := e.Do(ctx, func() error {
		data = Capture(e, name)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: capture: %w", err)
	}
	return sink.Put(ctx, name, data)
}

// fileName turns a snapshot name into "<name>.html", rejecting names that
// would leave the sink's root.
func fileName(name string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if name == "" || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %q", ErrEmptyName, name)
	}
	if !strings.HasSuffix(clean, ".html") {
		clean += ".html"
	}
	return clean, nil
}

// DirSink writes snapshots under a local directory.
type DirSink struct {
	Dir string
}

// Put implements Sink.
func (d DirSink) Put(_ context.Context, name string, data []byte) (string, error) {
	file, err := fileName(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.Dir, filepath.FromSlash(file))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}
