// Package cmd implements the canvasrender CLI commands.
//
// The command structure follows standard Go CLI patterns with a root
// command that dispatches to subcommands (currently only render).
package cmd

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

// Version information set at build time.
var Version = "0.1.0-dev"

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "canvasrender",
	Short: "Render a canvas document to a PNG",
	Usage: "canvasrender <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// styleError renders msg bold bright-red when the terminal supports color,
// and plain text otherwise (termenv degrades automatically per profile).
func styleError(msg string) string {
	return termenv.String(msg).Foreground(termenv.ANSIBrightRed).Bold().String()
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp()
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp()
		return nil
	case "-v", "--version", "version":
		fmt.Printf("canvasrender version %s\n", Version)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintln(os.Stderr, styleError(fmt.Sprintf("unknown command %q", args[0])))
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}

	if err := cmd.Run(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, styleError(err.Error()))
		return err
	}
	return nil
}

func printHelp() {
	fmt.Println(rootCmd.Short)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println(" ", rootCmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for name, cmd := range commands {
		fmt.Printf("  %-10s %s\n", name, cmd.Short)
	}
}
