package console

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	serial "github.com/allbin/serialconsole"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ReadBackoff is how long ReadLine sleeps after a read attempt that found no
// byte waiting. Tunable: lower values cut latency at the cost of wakeups.
var ReadBackoff = 10 * time.Millisecond

// Device is the open serial connection a Reader consumes. Fd must be usable
// with poll(2) and Read must return (0, nil) when no byte is waiting.
// serial.Port satisfies it.
type Device interface {
	Fd() int
	Name() string
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
	Drain() error
	FlushInput() error
}

// Opener opens and configures a device.
type Opener func(device string, config serial.Config) (Device, error)

func openSerial(device string, config serial.Config) (Device, error) {
	return serial.OpenConfig(device, config)
}

var nopLogger = zerolog.Nop()

// poll is replaced in tests.
var poll = unix.Poll

// Reader reads one line at a time from a console-like serial device. The
// zero value is an unopened Reader.
type Reader struct {
	dev     Device
	lineEnd byte
	wake    atomic.Pointer[wakePipe]
	opener  Opener
	logger  *zerolog.Logger
}

// NewReader returns an unopened Reader that logs through logger.
func NewReader(logger zerolog.Logger) *Reader {
	r := &Reader{}
	r.SetLogger(logger)
	return r
}

// SetLogger replaces the Reader's logger.
func (r *Reader) SetLogger(logger zerolog.Logger) {
	r.logger = &logger
}

// SetOpener replaces the function Open uses to open devices. A nil opener
// restores serial.OpenConfig.
func (r *Reader) SetOpener(o Opener) {
	r.opener = o
}

func (r *Reader) log() *zerolog.Logger {
	if r.logger == nil {
		return &nopLogger
	}
	return r.logger
}

// Open opens and configures device. Any device the Reader already had open is
// closed once the new one is ready. On failure the Reader is left as it was.
func (r *Reader) Open(device string, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	open := r.opener
	if open == nil {
		open = openSerial
	}

	dev, err := open(device, config.Config)
	if err != nil {
		r.log().Debug().Err(err).Str("device", device).Msg("open failed")
		return err
	}

	wake, err := newWakePipe()
	if err != nil {
		dev.Close()
		return fmt.Errorf("failed to create wake pipe: %w", err)
	}

	if r.dev != nil {
		r.log().Debug().Str("device", r.dev.Name()).Msg("closing previous device")
		r.release()
	}

	r.dev = dev
	r.lineEnd = config.LineEnd
	r.wake.Store(wake)

	r.log().Debug().
		Str("device", device).
		Int("baud", config.BaudRate).
		Str("line_end", FormatLineEnd(config.LineEnd)).
		Msg("console opened")
	return nil
}

// Close releases the device. Closing an unopened Reader is a no-op.
func (r *Reader) Close() error {
	if r.dev == nil {
		return nil
	}
	return r.release()
}

func (r *Reader) release() error {
	err := r.dev.Close()
	if wake := r.wake.Swap(nil); wake != nil {
		wake.close()
	}
	r.dev = nil
	return err
}

// IsOpen reports whether a device is open.
func (r *Reader) IsOpen() bool {
	return r.dev != nil
}

// LineEnd returns the terminator taken from the config at Open.
func (r *Reader) LineEnd() byte {
	return r.lineEnd
}

// Device returns the path of the open device, or "" when not open.
func (r *Reader) Device() string {
	if r.dev == nil {
		return ""
	}
	return r.dev.Name()
}

// Interrupt makes a pending or the next ReadLine return ErrInterrupted. It is
// the only method safe to call from another goroutine.
func (r *Reader) Interrupt() {
	if wake := r.wake.Load(); wake != nil {
		wake.signal()
	}
}

// ReadLine reads one line and appends it to dst, including the terminator
// only when includeTerminator is set. The returned slice holds whatever was
// appended even when err is not nil. See ResultOf for classifying err.
//
// The poll waits at most timeout for the first byte. Once bytes are flowing,
// the line is abandoned with ErrInterrupted if more than timeout (compared in
// whole milliseconds) has passed since the call began.
func (r *Reader) ReadLine(dst []byte, timeout time.Duration, includeTerminator bool) ([]byte, error) {
	start := time.Now()

	if r.dev == nil {
		return dst, ErrNotOpen
	}

	timeoutMs := durationToMillis(timeout)
	device := r.dev.Name()
	wake := r.wake.Load()

	if err := r.waitReadable(wake, timeoutMs); err != nil {
		r.log().Trace().Err(err).Str("device", device).Msg("wait for data ended")
		return dst, err
	}

	var b [1]byte
	for {
		n, err := r.dev.Read(b[:])
		if err != nil {
			switch {
			case errors.Is(err, unix.EAGAIN):
				n = 0
			case errors.Is(err, unix.EINTR):
				return dst, fmt.Errorf("%w: %w", ErrInterrupted, err)
			default:
				r.log().Debug().Err(err).Str("device", device).Msg("read failed")
				return dst, fmt.Errorf("error reading serial port: %w", err)
			}
		}

		if n > 0 {
			if b[0] == r.lineEnd {
				if includeTerminator {
					dst = append(dst, b[0])
				}
				r.log().Trace().Str("device", device).Int("len", len(dst)).Msg("line read")
				return dst, nil
			}
			dst = append(dst, b[0])
		} else {
			if wake != nil && wake.drain() {
				return dst, fmt.Errorf("%w: reader interrupted", ErrInterrupted)
			}
			time.Sleep(ReadBackoff)
		}

		if time.Since(start).Milliseconds() > timeoutMs {
			r.log().Debug().
				Str("device", device).
				Int("partial", len(dst)).
				Msg("line not terminated in time")
			return dst, fmt.Errorf("%w: line incomplete after %dms", ErrInterrupted, timeoutMs)
		}
	}
}

// ReadLineString reads one line without its terminator. On failure the
// returned string holds the bytes accumulated before the failure.
func (r *Reader) ReadLineString(timeout time.Duration) (string, error) {
	line, err := r.ReadLine(nil, timeout, false)
	return string(line), err
}

// waitReadable polls the device and the wake pipe for up to timeoutMs.
func (r *Reader) waitReadable(wake *wakePipe, timeoutMs int64) error {
	fds := []unix.PollFd{{Fd: int32(r.dev.Fd()), Events: unix.POLLIN}}
	if wake != nil {
		fds = append(fds, unix.PollFd{Fd: int32(wake.r), Events: unix.POLLIN})
	}

	ready, err := poll(fds, int(timeoutMs))
	switch {
	case errors.Is(err, unix.EINTR):
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	case err != nil:
		return fmt.Errorf("error polling serial port: %w", err)
	case ready == 0:
		return ErrTimeout
	}

	if wake != nil && fds[1].Revents&unix.POLLIN != 0 {
		wake.drain()
		return fmt.Errorf("%w: reader interrupted", ErrInterrupted)
	}

	revents := fds[0].Revents
	switch {
	case revents&unix.POLLIN != 0:
		return nil
	case revents&unix.POLLNVAL != 0:
		return fmt.Errorf("error polling serial port: %w", unix.EBADF)
	case revents&unix.POLLHUP != 0:
		return errors.New("error polling serial port: device hung up")
	default:
		return fmt.Errorf("error polling serial port: %w", unix.EIO)
	}
}

// WriteLine writes text followed by the line end and waits for it to be
// transmitted. The device must have been opened writable.
func (r *Reader) WriteLine(text string) error {
	if r.dev == nil {
		return ErrNotOpen
	}

	data := make([]byte, 0, len(text)+1)
	data = append(data, text...)
	data = append(data, r.lineEnd)

	if _, err := r.dev.Write(data); err != nil {
		return fmt.Errorf("error writing serial port: %w", err)
	}
	return r.dev.Drain()
}

// Discard drops anything waiting in the device input queue.
func (r *Reader) Discard() error {
	if r.dev == nil {
		return ErrNotOpen
	}
	return r.dev.FlushInput()
}

// durationToMillis rounds d up to whole milliseconds within poll(2)'s range.
func durationToMillis(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	if d > math.MaxInt32*time.Millisecond {
		return math.MaxInt32
	}
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}
