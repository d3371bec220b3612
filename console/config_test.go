package console

import (
	"errors"
	"testing"

	serial "github.com/allbin/serialconsole"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.LineEnd != '\r' {
		t.Errorf("Expected LineEnd '\\r', got %q", config.LineEnd)
	}
	if config.Config != serial.DefaultConfig() {
		t.Errorf("Expected embedded serial defaults, got %+v", config.Config)
	}
}

func TestNewConfig(t *testing.T) {
	config, err := NewConfig(
		WithLineEnd('\n'),
		WithSerial(serial.WithBaudRate(9600), serial.WithWritable(true)),
	)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if config.LineEnd != '\n' {
		t.Errorf("LineEnd = %q, want '\\n'", config.LineEnd)
	}
	if config.BaudRate != 9600 || !config.Writable {
		t.Errorf("serial options not applied: %+v", config.Config)
	}

	_, err = NewConfig(WithSerial(serial.WithStopBits(3)))
	if !errors.Is(err, serial.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseLineEnd(t *testing.T) {
	tests := []struct {
		input   string
		want    byte
		wantErr bool
	}{
		{`\r`, '\r', false},
		{"CR", '\r', false},
		{"\r", '\r', false},
		{`\n`, '\n', false},
		{"lf", '\n', false},
		{"\n", '\n', false},
		{`\t`, '\t', false},
		{"nul", 0, false},
		{"0x0d", 0x0d, false},
		{"0X3E", '>', false},
		{"#", '#', false},
		{"0xzz", 0, true},
		{"0x100", 0, true},
		{"", 0, true},
		{"ab", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLineEnd(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLineEnd(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, serial.ErrInvalidConfig) {
			t.Errorf("ParseLineEnd(%q) error = %v, want ErrInvalidConfig", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLineEnd(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatLineEndRoundTrip(t *testing.T) {
	for _, b := range []byte{'\r', '\n', '\t', 0, '>', 0x03, 0xff} {
		s := FormatLineEnd(b)
		got, err := ParseLineEnd(s)
		if err != nil {
			t.Errorf("ParseLineEnd(FormatLineEnd(%#x) = %q) failed: %v", b, s, err)
			continue
		}
		if got != b {
			t.Errorf("round trip of %#x via %q gave %#x", b, s, got)
		}
	}
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		err  error
		want Result
	}{
		{nil, Success},
		{ErrTimeout, Timeout},
		{ErrInterrupted, Interrupted},
		{errors.Join(errors.New("x"), ErrInterrupted), Interrupted},
		{ErrNotOpen, Error},
		{errors.New("error polling serial port: EIO"), Error},
	}

	for _, tt := range tests {
		if got := ResultOf(tt.err); got != tt.want {
			t.Errorf("ResultOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
