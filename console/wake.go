package console

import (
	"errors"

	"golang.org/x/sys/unix"
)

// wakePipe is a self-pipe that lets another goroutine break a Reader out of
// poll(2).
type wakePipe struct {
	r, w int
}

func newWakePipe() (*wakePipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &wakePipe{r: fds[0], w: fds[1]}, nil
}

// signal never blocks; a full pipe already means "wake up".
func (p *wakePipe) signal() {
	unix.Write(p.w, []byte{1})
}

// drain empties the pipe and reports whether it held anything.
func (p *wakePipe) drain() bool {
	var buf [16]byte
	drained := false
	for {
		n, err := unix.Read(p.r, buf[:])
		if n > 0 {
			drained = true
		}
		if err != nil || n < len(buf) {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return drained
		}
	}
}

func (p *wakePipe) close() {
	unix.Close(p.r)
	unix.Close(p.w)
}
