package console

import "errors"

var (
	ErrNotOpen     = errors.New("device not open")
	ErrTimeout     = errors.New("timed out while waiting for data")
	ErrInterrupted = errors.New("interrupted while waiting for data")
)

// Result classifies the outcome of a read.
type Result int

const (
	Success Result = iota
	Timeout
	Interrupted
	Error
)

func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case Timeout:
		return "TIMEOUT"
	case Interrupted:
		return "INTERRUPTED"
	default:
		return "ERROR"
	}
}

// ResultOf maps an error returned by ReadLine or ReadLineString to its Result.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrTimeout):
		return Timeout
	case errors.Is(err, ErrInterrupted):
		return Interrupted
	default:
		return Error
	}
}
