package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdrecipe/internal/commands"
	"github.com/gerunddev/mdrecipe/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "check":
		commands.Check(os.Args[2:])
	case "show":
		commands.Show(os.Args[2:])
	case "scan":
		commands.Scan()
	case "browse", "catalog":
		commands.Browse()
	case "version", "-v", "--version":
		fmt.Printf("mdrecipe v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mdrecipe - Read recipes written in markdown

Usage:
  mdrecipe <command> [options]

Commands:
  check       Validate recipe files and report errors with their position
  show        Print a structured summary of a recipe (use --sanitize for base units)
  scan        Parse every changed recipe in the recipe directory into the catalog
  browse      Browse the recipe catalog
  version     Show version information
  help        Show this help message

Options for check and show:
  --dialect <instructions|steps>   Title of the step section
  --strict                         Reject sizes declared twice

Examples:
  mdrecipe check recipes/*.md
  mdrecipe check --dialect steps crepes.md
  mdrecipe show crepes.md
  mdrecipe show --sanitize crepes.md
  mdrecipe scan
  mdrecipe browse

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
