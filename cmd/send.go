/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <port> [command]",
	Short: "Send a command to a serial console and print the reply",
	Long: `Send one line to a serial console and print the lines it answers with.

The command is terminated with the configured line end. Pending input is
discarded first, so only the reply to this command is shown. Reply lines are
printed until the console stays quiet for --timeout or --lines lines arrived.

The command can be provided as:
- Command line argument: send /dev/ttyUSB0 "uname -a"
- From stdin (pipe): echo "uptime" | serialconsole send /dev/ttyUSB0
- Interactive mode: serialconsole send /dev/ttyUSB0 (prompts for input)

Example usage:
  serialconsole send /dev/ttyUSB0 "cat /proc/version"
  serialconsole send /dev/ttyUSB0 "AT+GMR" --line-end '\r' --lines 2
  serialconsole send /dev/ttyUSB0 --hex "1b5b41"`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		var command string
		if len(args) == 2 {
			command = args[1]
		} else {
			// Prompt on a terminal, otherwise read piped stdin
			if term.IsTerminal(int(os.Stdin.Fd())) {
				command = promptForData()
			} else {
				stdinData, err := io.ReadAll(os.Stdin)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
					os.Exit(1)
				}
				command = strings.TrimRight(string(stdinData), "\r\n")
			}
		}

		hexMode, _ := cmd.Flags().GetBool("hex")
		if hexMode {
			decoded, err := parseHexString(command)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			command = decoded
		}

		maxLines, _ := cmd.Flags().GetInt("lines")

		if err := sendCommand(portPath, command, maxLines); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().IntP("lines", "l", 0, "Stop after this many reply lines (0 waits for the console to go quiet)")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret the command as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
}

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func promptForData() string {
	fmt.Print(infoStyle.Render("Enter command to send: "))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

// parseHexString decodes whitespace-separated hex, each group optionally
// prefixed with 0x.
func parseHexString(hexStr string) (string, error) {
	var digits strings.Builder
	for _, group := range strings.Fields(hexStr) {
		if strings.HasPrefix(group, "0x") || strings.HasPrefix(group, "0X") {
			group = group[2:]
		}
		digits.WriteString(group)
	}

	decoded, err := hex.DecodeString(digits.String())
	if err != nil {
		return "", fmt.Errorf("invalid hex data %q: %w", hexStr, err)
	}
	return string(decoded), nil
}

func sendCommand(portPath, command string, maxLines int) error {
	config, err := loadConsoleConfig(viper.GetViper())
	if err != nil {
		return err
	}
	config.Writable = true

	timeout, err := loadTimeout(viper.GetViper())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s Opening %s (%s)...\n", infoStyle.Render("⚡"), portPath, describeConfig(config))

	reader := console.NewReader(logger)
	if err := reader.Open(portPath, config); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗"), err)
	}
	defer reader.Close()

	fmt.Fprintf(os.Stderr, "%s Sending %s\n", infoStyle.Render("📤"), previewText(command))

	lines, err := exchange(reader, os.Stdout, command, maxLines, timeout)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗"), err)
	}

	fmt.Fprintf(os.Stderr, "%s %d reply line(s)\n", successStyle.Render("✓"), lines)
	return nil
}

// consoleSession is the part of console.Reader a command exchange needs.
type consoleSession interface {
	lineReader
	Discard() error
	WriteLine(text string) error
}

// exchange writes command and copies reply lines to out until the console is
// quiet for timeout or maxLines lines were read (when maxLines > 0).
func exchange(s consoleSession, out io.Writer, command string, maxLines int, timeout time.Duration) (int, error) {
	if err := s.Discard(); err != nil {
		return 0, fmt.Errorf("failed to discard pending input: %w", err)
	}
	if err := s.WriteLine(command); err != nil {
		return 0, fmt.Errorf("failed to send command: %w", err)
	}

	lines := 0
	for maxLines <= 0 || lines < maxLines {
		line, err := s.ReadLine(nil, timeout, false)
		switch console.ResultOf(err) {
		case console.Success:
			fmt.Fprintln(out, string(line))
			lines++
		case console.Timeout:
			return lines, nil
		case console.Interrupted:
			if len(line) > 0 {
				fmt.Fprintln(out, string(line))
			}
			return lines, nil
		default:
			return lines, err
		}
	}
	return lines, nil
}

// previewText shortens s and replaces non-printable characters for display.
func previewText(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '·'
		}
		return r
	}, s)
}
