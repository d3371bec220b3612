/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logger  = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialconsole",
	Short: "Read lines from serial consoles",
	Long: `serialconsole talks to devices that expose a line-oriented console over a
serial port, such as a shell on a UART.

Serial settings come from flags, SERIALCONSOLE_* environment variables or a
YAML config file (default $HOME/.serialconsole.yaml), in that order of
precedence. Example config:

  baud: 115200
  parity: none
  line-end: '\n'
  timeout: 2s`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		logger = newLogger(os.Stderr, viper.GetBool("verbose"))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serialconsole.yaml)")
	flags.IntP("baud", "b", 115200, "Baud rate")
	flags.Int("data-bits", 8, "Data bits: 5, 6, 7 or 8")
	flags.Int("stop-bits", 1, "Stop bits: 1 or 2")
	flags.String("parity", "none", "Parity: none, odd, even")
	flags.Bool("flow-control", false, "Enable RTS/CTS hardware flow control")
	flags.Bool("low-latency", false, "Ask the UART driver for low-latency mode")
	flags.String("line-end", `\r`, `Line terminator: \r, \n, cr, lf, 0x3e or a single character`)
	flags.Duration("timeout", time.Second, "Per-line read timeout")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".serialconsole")
	}

	viper.SetEnvPrefix("SERIALCONSOLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// newLogger writes human-readable logs to w; verbose enables debug level.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
