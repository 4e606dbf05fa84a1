package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/mdrecipe/internal/recipe"
	"github.com/gerunddev/mdrecipe/internal/styles"
)

// Check parses each recipe file given on the command line and exits with
// status 1 if any of them is invalid.
//
// Flags: --dialect <instructions|steps>, --strict
func Check(args []string) {
	cfg := loadConfig()
	opts, err := cfg.ParseOptions()
	if err != nil {
		fail("Invalid config: %v", err)
	}

	paths, err := parseRecipeFlags(args, &opts)
	if err != nil {
		fail("%v", err)
	}
	if len(paths) == 0 {
		fail("Usage: mdrecipe check [--dialect <name>] [--strict] <file>...")
	}

	if failed := CheckFiles(os.Stdout, paths, opts); failed > 0 {
		os.Exit(1)
	}
}

// CheckFiles parses every file in paths and writes one line per file. It
// returns the number of files that could not be read or parsed.
func CheckFiles(w io.Writer, paths []string, opts recipe.Options) int {
	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+path+": "+err.Error()))
			continue
		}

		r, err := recipe.ParseWithOptions(data, opts)
		if err != nil {
			failed++
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+describeError(path, err)))
			continue
		}

		fmt.Fprintf(w, "%s %s\n",
			styles.SuccessStyle.Render("✓ "+path),
			styles.DimStyle.Render(fmt.Sprintf("%s (%d ingredients, %d steps)",
				r.Name, len(r.Ingredients.Lines()), r.Instructions.Count())))
	}

	if len(paths) > 1 {
		fmt.Fprintln(w, styles.HelpStyle.Render(fmt.Sprintf("%d checked, %d invalid", len(paths), failed)))
	}
	return failed
}

// parseRecipeFlags applies the parser flags in args to opts and returns the
// remaining arguments.
func parseRecipeFlags(args []string, opts *recipe.Options) ([]string, error) {
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--strict":
			opts.StrictSizes = true
		case "--dialect":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--dialect needs a value")
			}
			i++
			d, err := recipe.ParseDialect(args[i])
			if err != nil {
				return nil, err
			}
			opts.Dialect = d
		default:
			rest = append(rest, args[i])
		}
	}
	return rest, nil
}
