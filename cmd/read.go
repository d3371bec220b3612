/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <port>",
	Short: "Read lines from a serial console",
	Long: `Read line-terminated text from a serial console and print each line.

Lines are printed as they complete. A quiet port is not an error: the command
keeps waiting until --count lines have been read or it is interrupted
(Ctrl+C). Use --output to append the lines to a file instead of stdout.

Example usage:
  serialconsole read /dev/ttyUSB0
  serialconsole read /dev/ttyUSB0 --line-end '\n' --count 10
  serialconsole read /dev/ttyUSB0 -o boot.log --timeout 500ms`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, _ := cmd.Flags().GetInt("count")
		outputPath, _ := cmd.Flags().GetString("output")
		includeTerminator, _ := cmd.Flags().GetBool("include-terminator")

		if err := runRead(args[0], outputPath, readOptions{
			count:             count,
			includeTerminator: includeTerminator,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().IntP("count", "n", 0, "Stop after this many lines (0 reads until interrupted)")
	readCmd.Flags().StringP("output", "o", "", "Append lines to this file instead of stdout")
	readCmd.Flags().Bool("include-terminator", false, "Keep the line terminator in the output")
}

type readOptions struct {
	count             int
	timeout           time.Duration
	includeTerminator bool
}

// lineReader is the part of console.Reader the read loop needs.
type lineReader interface {
	ReadLine(dst []byte, timeout time.Duration, includeTerminator bool) ([]byte, error)
}

func runRead(portPath, outputPath string, opts readOptions) error {
	config, err := loadConsoleConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if opts.timeout, err = loadTimeout(viper.GetViper()); err != nil {
		return err
	}

	reader := console.NewReader(logger)
	if err := reader.Open(portPath, config); err != nil {
		return fmt.Errorf("failed to open port: %w", err)
	}
	defer reader.Close()

	var out io.Writer = os.Stdout
	if outputPath != "" {
		file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	// Setup signal handling for clean shutdown
	var stopping atomic.Bool
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Deferred after reader.Close, so it runs first.
	stopSignals := interruptOnSignal(sigChan, reader, &stopping)
	defer stopSignals()

	fmt.Fprintf(os.Stderr, "Reading lines from %s (%s)\n", portPath, describeConfig(config))
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n\n")

	startTime := time.Now()
	lines, err := readLines(reader, out, opts, stopping.Load, logger)
	fmt.Fprintf(os.Stderr, "\nRead complete: %d lines in %v\n", lines, time.Since(startTime).Round(time.Millisecond))
	return err
}

type interrupter interface {
	Interrupt()
}

// interruptOnSignal interrupts r on the first signal from sigChan. The
// returned func stops watching and waits for the watcher to exit, after which
// r is not touched again.
func interruptOnSignal(sigChan <-chan os.Signal, r interrupter, stopping *atomic.Bool) func() {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, shutting down...\n")
			stopping.Store(true)
			r.Interrupt()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}

// readLines copies lines from r to out, one per output line, until opts.count
// lines were written, stopping reports true after an interruption, or reading
// fails. Timeouts only mean the console was quiet.
func readLines(r lineReader, out io.Writer, opts readOptions, stopping func() bool, log zerolog.Logger) (int, error) {
	lines := 0
	buf := make([]byte, 0, 256)

	for opts.count <= 0 || lines < opts.count {
		line, err := r.ReadLine(buf[:0], opts.timeout, opts.includeTerminator)

		switch console.ResultOf(err) {
		case console.Success:
			if !opts.includeTerminator {
				line = append(line, '\n')
			}
			if _, werr := out.Write(line); werr != nil {
				return lines, fmt.Errorf("write error: %w", werr)
			}
			lines++
		case console.Timeout:
			log.Trace().Dur("timeout", opts.timeout).Msg("no data")
		case console.Interrupted:
			if stopping() {
				return lines, nil
			}
			if len(line) > 0 {
				log.Warn().Err(err).Str("partial", string(line)).Msg("dropping incomplete line")
			}
		default:
			if errors.Is(err, console.ErrNotOpen) {
				return lines, err
			}
			return lines, fmt.Errorf("read error: %w", err)
		}
		buf = line[:0]
	}
	return lines, nil
}
