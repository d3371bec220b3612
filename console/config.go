package console

import (
	"fmt"
	"strconv"
	"strings"

	serial "github.com/allbin/serialconsole"
)

// Config is a serial port configuration plus the byte that ends a line.
type Config struct {
	serial.Config
	LineEnd byte
}

// Option is a functional option for configuring a console
type Option func(*Config) error

// DefaultConfig returns 115200 8N1 with a carriage-return line end.
func DefaultConfig() Config {
	return Config{
		Config:  serial.DefaultConfig(),
		LineEnd: '\r',
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	return config, nil
}

// Validate checks the serial settings. Any byte is a valid line end.
func (c Config) Validate() error {
	return c.Config.Validate()
}

// WithLineEnd sets the line terminator
func WithLineEnd(b byte) Option {
	return func(c *Config) error {
		c.LineEnd = b
		return nil
	}
}

// WithSerial applies serial port options to the embedded serial.Config.
func WithSerial(opts ...serial.Option) Option {
	return func(c *Config) error {
		for _, opt := range opts {
			if err := opt(&c.Config); err != nil {
				return err
			}
		}
		return nil
	}
}

// ParseLineEnd parses a line terminator given on a command line or in a
// config file. It accepts escapes (\r, \n, \t, \0), names (cr, lf, nul),
// hex (0x0d) and a single literal character.
func ParseLineEnd(s string) (byte, error) {
	switch strings.ToLower(s) {
	case `\r`, "cr", "\r":
		return '\r', nil
	case `\n`, "lf", "nl", "\n":
		return '\n', nil
	case `\t`, "tab", "\t":
		return '\t', nil
	case `\0`, "nul", "null":
		return 0, nil
	}

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: line end %q", serial.ErrInvalidConfig, s)
		}
		return byte(v), nil
	}

	if len(s) == 1 {
		return s[0], nil
	}
	return 0, fmt.Errorf("%w: line end %q must be a single byte", serial.ErrInvalidConfig, s)
}

// FormatLineEnd renders b the way ParseLineEnd accepts it.
func FormatLineEnd(b byte) string {
	switch b {
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case 0:
		return `\0`
	}
	if b < 0x20 || b > 0x7e {
		return fmt.Sprintf("0x%02x", b)
	}
	return string(rune(b))
}
