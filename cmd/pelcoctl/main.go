// Pelcoctl is a command-line controller for Pelco D PTZ cameras.
//
// It drives pan/tilt/zoom heads over a serial line (RS-422/RS-485),
// offers an interactive jog console, direct motion and preset commands,
// a raw frame escape hatch, and a WebSocket bridge for controlling a
// camera from another machine.
//
// Usage:
//
//	pelcoctl [command] [flags]
//
// Running without arguments launches the interactive jog console.
// See 'pelcoctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/pelcoctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pelcoctl",
	Short: "Pelco D PTZ Camera Controller",
	Long: `A command-line controller for Pelco D pan/tilt/zoom cameras.

Drives PTZ heads over a serial line, with an interactive jog console,
direct motion and preset commands, and a WebSocket bridge for remote
control.

If no command is specified, the interactive jog console will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the jog console when no subcommand given
		return runJog(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pelcoctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
