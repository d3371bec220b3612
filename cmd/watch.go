/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <port>",
	Short: "Watch console lines in a terminal UI",
	Long: `Watch lines from a serial console in a full-screen terminal UI.

Each completed line is shown as it arrives. Lines cut short by the read
timeout are marked as partial. The status bar shows the serial settings and
counts of complete lines, partial lines and idle timeouts.

Keys: p/space pauses reading, c clears, t toggles timestamps, h toggles a hex
dump of each line, ? shows help and q quits.

Example usage:
  serialconsole watch /dev/ttyUSB0
  serialconsole watch /dev/ttyACM0 --line-end '\n' --timeout 250ms`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noTimestamps, _ := cmd.Flags().GetBool("no-timestamps")

		if err := runWatch(args[0], !noTimestamps); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("no-timestamps", false, "Hide timestamps from output")
}

func runWatch(portPath string, showTimestamps bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch needs a terminal, use read to pipe lines")
	}

	config, err := loadConsoleConfig(viper.GetViper())
	if err != nil {
		return err
	}
	timeout, err := loadTimeout(viper.GetViper())
	if err != nil {
		return err
	}

	// Logs would corrupt the alt screen
	reader := console.NewReader(logger.Level(zerolog.Disabled))
	if err := reader.Open(portPath, config); err != nil {
		return fmt.Errorf("failed to open port: %w", err)
	}
	defer reader.Close()

	pump := models.NewPump(reader, timeout)
	model := models.NewWatchModel(pump, portPath, describeConfig(config), showTimestamps)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	pump.Stop()
	return err
}
