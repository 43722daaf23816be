package xlogdump

import "github.com/pkg/errors"

// Error taxonomy (spec §7). Callers classify with errors.Is against these
// sentinels; concrete errors wrap one of them with context via
// github.com/pkg/errors so a diagnostic keeps its call-site detail.
var (
	// ErrFormat covers bad page magic, impossible record lengths, bad CRC,
	// impossible hole sizes, missing continuation flags and inconsistent
	// remaining-length: policy is to print one diagnostic and stop the
	// current file, continuing with remaining files.
	ErrFormat = errors.New("format error")

	// ErrIO covers short reads and failed opens: policy is to stop the
	// current file after a one-line warning.
	ErrIO = errors.New("i/o error")

	// ErrAllocation covers scratch-buffer growth failure: treated as a
	// format error on the current record, stopping the current file.
	ErrAllocation = errors.New("allocation error")

	// ErrConfig covers incompatible flag combinations, unparseable
	// segment file names, and an unavailable name resolver when
	// --statements requires one: fatal for the whole run before any file
	// is touched, except where noted that the dependent behavior is
	// merely disabled with a warning.
	ErrConfig = errors.New("configuration error")
)

// Wrapf wraps err with a sentinel class and a formatted message, the
// uniform shape used across the reader and dispatcher.
func Wrapf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
