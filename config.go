package serial

import (
	"fmt"
	"strings"
)

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

// ParseParity accepts none/odd/even and their single-letter forms (N/O/E).
func ParseParity(s string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "none":
		return ParityNone, nil
	case "o", "odd":
		return ParityOdd, nil
	case "e", "even":
		return ParityEven, nil
	default:
		return ParityNone, fmt.Errorf("%w: unsupported parity %q (expected none, odd or even)", ErrInvalidConfig, s)
	}
}

// Config holds the configuration for a serial port
type Config struct {
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      Parity
	FlowControl bool // RTS/CTS hardware flow control
	LowLatency  bool // ASYNC_LOW_LATENCY on the UART driver
	Writable    bool // open O_RDWR instead of O_RDONLY
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns 115200 8N1, no flow control, read-only.
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    1,
		Parity:      ParityNone,
		FlowControl: false,
		LowLatency:  false,
		Writable:    false,
	}
}

// Validate checks a fully built configuration.
func (c Config) Validate() error {
	if _, err := getBaudRate(c.BaudRate); err != nil {
		return err
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		return fmt.Errorf("%w: data bits %d", ErrInvalidConfig, c.DataBits)
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return fmt.Errorf("%w: stop bits %d", ErrInvalidConfig, c.StopBits)
	}
	if c.Parity < ParityNone || c.Parity > ParityEven {
		return fmt.Errorf("%w: parity %d", ErrInvalidConfig, int(c.Parity))
	}
	return nil
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParityEven {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithFlowControl enables or disables RTS/CTS hardware flow control
func WithFlowControl(enabled bool) Option {
	return func(c *Config) error {
		c.FlowControl = enabled
		return nil
	}
}

// WithLowLatency requests low-latency mode from the UART driver
func WithLowLatency(enabled bool) Option {
	return func(c *Config) error {
		c.LowLatency = enabled
		return nil
	}
}

// WithWritable opens the port for writing as well as reading
func WithWritable(enabled bool) Option {
	return func(c *Config) error {
		c.Writable = enabled
		return nil
	}
}
