package errors

import (
	stderrors "errors"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/engine"
)

type coder interface {
	ErrorCode() string
}

// Code returns the catalogue code of the outermost coded error in err's
// chain, or "".
func Code(err error) string {
	var c coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	if code := component.ErrorCode(err); code != "" {
		return code
	}
	return engine.ErrorCode(err)
}

// Describe returns err as a WeaveError. Coded errors take their message
// and hint from the catalogue and keep their own text as detail.
func Describe(err error) *WeaveError {
	if err == nil {
		return nil
	}
	var we *WeaveError
	if stderrors.As(err, &we) {
		return we
	}
	code := Code(err)
	if code == "" {
		return Newf(CategoryCLI, "%s", err.Error()).Wrap(err)
	}
	return New(code).WithDetail(err.Error()).Wrap(err)
}
