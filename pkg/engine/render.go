package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// Render runs one pass: rebuild the tree from the root component, diff it
// against the host body and apply the differences. The dirty flag is
// cleared when the pass starts, so state written during the pass schedules
// another one. An error aborts the pass; host changes already applied are
// kept.
func (e *Engine) Render() (err error) {
	e.seq++
	e.dirty = false
	report := PassReport{Seq: e.seq, Start: time.Now(), Ops: OpCounts{}}

	ctx, span := e.tracer.Start(context.Background(), "weave.render",
		trace.WithAttributes(attribute.Int64("weave.pass", int64(report.Seq))))
	defer func() {
		report.Total = time.Since(report.Start)
		report.Components = e.reg.len()
		report.Err = err
		span.SetAttributes(
			attribute.Int("weave.ops", report.Ops.Total()),
			attribute.Int("weave.components", report.Components),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.logger.Error("render pass failed", "pass", report.Seq, "error", err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		e.last = report
		for _, fn := range e.observers {
			fn(report)
		}
	}()

	_, buildSpan := e.tracer.Start(ctx, "weave.build")
	tree, err := e.build()
	buildSpan.End()
	report.Build = time.Since(report.Start)
	if err != nil {
		return err
	}

	patchStart := time.Now()
	_, patchSpan := e.tracer.Start(ctx, "weave.patch")
	p := patcher{e: e, ops: report.Ops}
	if body := e.doc.Body(); body != nil {
		err = p.patch(tree, body)
	} else {
		err = ErrNoMount
	}
	patchSpan.End()
	report.Patch = time.Since(patchStart)
	if err != nil {
		return err
	}
	e.mounted = true

	e.logger.Debug("render pass",
		"pass", report.Seq,
		"build", report.Build,
		"patch", report.Patch,
		"ops", report.Ops.Total(),
	)
	return nil
}

// build renders the root component. The returned placeholder carries the
// mount node's tag so the body itself is never replaced.
func (e *Engine) build() (*vdom.VNode, error) {
	in, err := e.Resolve(component.RootPath(e.root.Name()), e.root, e.rootParams)
	if err != nil {
		return nil, err
	}
	children, err := in.Render()
	if err != nil {
		return nil, err
	}
	tree := vdom.Placeholder(in, children)
	if body := e.doc.Body(); body != nil {
		tree.Tag = body.NodeName()
	}
	return tree, nil
}

// Mount returns the host node the engine renders into.
func (e *Engine) Mount() host.Node {
	return e.doc.Body()
}
