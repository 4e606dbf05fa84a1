package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdrecipe/internal/recipe"
	"github.com/gerunddev/mdrecipe/internal/styles"
)

// Show prints a structured summary of one recipe file
//
// Flags: --sanitize, --dialect <instructions|steps>, --strict
func Show(args []string) {
	cfg := loadConfig()
	opts, err := cfg.ParseOptions()
	if err != nil {
		fail("Invalid config: %v", err)
	}

	summaryOpts := SummaryOptions{Styled: true}
	var rest []string
	for _, arg := range args {
		if arg == "--sanitize" {
			summaryOpts.Sanitize = true
			continue
		}
		rest = append(rest, arg)
	}

	paths, err := parseRecipeFlags(rest, &opts)
	if err != nil {
		fail("%v", err)
	}
	if len(paths) != 1 {
		fail("Usage: mdrecipe show [--sanitize] <file>")
	}
	path := paths[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fail("%v", err)
	}
	r, err := recipe.ParseWithOptions(data, opts)
	if err != nil {
		fail("%s", describeError(path, err))
	}

	fmt.Println(styles.DimStyle.Render(path))
	if err := WriteSummary(os.Stdout, r, summaryOpts); err != nil {
		fail("%v", err)
	}
}
