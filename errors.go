package perceptron

import "github.com/pkg/errors"

// ErrConfig is the cause of every error returned for an invalid
// Configuration.  Configuration errors are detected before a Network
// exists, never while it is computing.
var ErrConfig = errors.New("configuration error")

// ErrShape is the cause of every error returned when an input or
// target vector does not match the configured layer width.
var ErrShape = errors.New("shape mismatch")

func configErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, format, args...)
}

func shapeErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrShape, format, args...)
}
