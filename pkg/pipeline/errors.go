package pipeline

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
)

var errUnsupportedFormat = stderrors.New("unsupported format")

// Classify wraps err with the [errors.Code] matching its cause. Errors that
// already carry a code are returned unchanged; unknown causes become
// INTERNAL_ERROR.
func Classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(codeOf(err), err, format, args...)
}

func codeOf(err error) errors.Code {
	switch {
	case stderrors.Is(err, graph.ErrSelfLoop),
		stderrors.Is(err, graph.ErrAsymmetric),
		stderrors.Is(err, graph.ErrVertexOutOfRange):
		return errors.ErrCodeInvalidGraph
	case stderrors.Is(err, pkgio.ErrSyntax), stderrors.Is(err, pkgio.ErrInvalidColoring):
		return errors.ErrCodeInvalidInput
	case stderrors.Is(err, colony.ErrInvalidParams):
		return errors.ErrCodeInvalidParams
	case stderrors.Is(err, errUnsupportedFormat):
		return errors.ErrCodeInvalidFormat
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.ErrCodeFileNotFound
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.ErrCodeCanceled
	}
	return errors.ErrCodeInternal
}
