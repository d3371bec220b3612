package cmd

import (
	"errors"
	"testing"
	"time"

	serial "github.com/allbin/serialconsole"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("baud", 115200)
	v.SetDefault("data-bits", 8)
	v.SetDefault("stop-bits", 1)
	v.SetDefault("parity", "none")
	v.SetDefault("line-end", `\r`)
	v.SetDefault("timeout", time.Second)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadConsoleConfig(t *testing.T) {
	config, err := loadConsoleConfig(newTestViper(map[string]any{
		"baud":         "9600",
		"parity":       "even",
		"stop-bits":    2,
		"line-end":     "lf",
		"flow-control": true,
	}))
	require.NoError(t, err)
	require.Equal(t, 9600, config.BaudRate)
	require.Equal(t, serial.ParityEven, config.Parity)
	require.Equal(t, 2, config.StopBits)
	require.Equal(t, byte('\n'), config.LineEnd)
	require.True(t, config.FlowControl)
	require.False(t, config.Writable)
}

func TestLoadConsoleConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{"bad baud", map[string]any{"baud": 1234}, serial.ErrInvalidBaudRate},
		{"bad parity", map[string]any{"parity": "mark"}, serial.ErrInvalidConfig},
		{"bad line end", map[string]any{"line-end": "crlf"}, serial.ErrInvalidConfig},
		{"bad data bits", map[string]any{"data-bits": 9}, serial.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConsoleConfig(newTestViper(tt.values))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLoadTimeout(t *testing.T) {
	timeout, err := loadTimeout(newTestViper(map[string]any{"timeout": "250ms"}))
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, timeout)

	_, err = loadTimeout(newTestViper(map[string]any{"timeout": "0s"}))
	require.Error(t, err)
}

func TestDescribeConfig(t *testing.T) {
	config, err := loadConsoleConfig(newTestViper(nil))
	require.NoError(t, err)
	require.Equal(t, `115200 8N1 eol=\r`, describeConfig(config))

	config.Parity = serial.ParityOdd
	config.DataBits = 7
	config.FlowControl = true
	require.Equal(t, `115200 7O1 eol=\r rtscts`, describeConfig(config))
}
