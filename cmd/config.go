/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"time"

	serial "github.com/allbin/serialconsole"
	"github.com/allbin/serialconsole/console"
	"github.com/spf13/viper"
)

// loadConsoleConfig builds a console configuration from the bound flags,
// environment and config file.
func loadConsoleConfig(v *viper.Viper) (console.Config, error) {
	parity, err := serial.ParseParity(v.GetString("parity"))
	if err != nil {
		return console.Config{}, err
	}

	lineEnd, err := console.ParseLineEnd(v.GetString("line-end"))
	if err != nil {
		return console.Config{}, err
	}

	config, err := console.NewConfig(
		console.WithLineEnd(lineEnd),
		console.WithSerial(
			serial.WithBaudRate(v.GetInt("baud")),
			serial.WithDataBits(v.GetInt("data-bits")),
			serial.WithStopBits(v.GetInt("stop-bits")),
			serial.WithParity(parity),
			serial.WithFlowControl(v.GetBool("flow-control")),
			serial.WithLowLatency(v.GetBool("low-latency")),
		),
	)
	if err != nil {
		return console.Config{}, fmt.Errorf("invalid serial settings: %w", err)
	}
	return config, nil
}

// loadTimeout returns the per-line timeout; it must be positive.
func loadTimeout(v *viper.Viper) (time.Duration, error) {
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %v", timeout)
	}
	return timeout, nil
}

// describeConfig renders config in the usual 115200 8N1 shorthand.
func describeConfig(config console.Config) string {
	parity := "N"
	switch config.Parity {
	case serial.ParityOdd:
		parity = "O"
	case serial.ParityEven:
		parity = "E"
	}
	desc := fmt.Sprintf("%d %d%s%d eol=%s", config.BaudRate, config.DataBits, parity, config.StopBits, console.FormatLineEnd(config.LineEnd))
	if config.FlowControl {
		desc += " rtscts"
	}
	return desc
}
