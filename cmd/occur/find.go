package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
	"github.com/dshills/occur/internal/engine/pattern"
)

// fileMatches holds one file's matches along with its lines for
// display.
type fileMatches struct {
	path    string
	lines   []string
	matches []match.Match
}

func newFindCmd() *cobra.Command {
	var (
		word  bool
		regex bool
	)

	cmd := &cobra.Command{
		Use:   "find PATTERN FILE...",
		Short: "List every occurrence of a pattern in the given files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			set := pattern.NewSet()
			if _, err := set.Add(args[0], patternKind(word, regex)); err != nil {
				return err
			}
			pred := set.Predicate(cfg.TieBreak())

			files := args[1:]
			results := make([]fileMatches, len(files))

			g, _ := errgroup.WithContext(context.Background())
			for i, path := range files {
				i, path := i, path
				g.Go(func() error {
					lines, err := readLines(path)
					if err != nil {
						return err
					}
					buf := buffer.NewBufferFromLines(buffer.ID(i+1), lines)
					results[i] = fileMatches{
						path:    path,
						lines:   lines,
						matches: match.Collect(match.FindAll(buf, pred, nil)),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if flagJSON {
				out, err := matchesJSON(results)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			for _, fm := range results {
				printMatches(fm)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&word, "word", "w", false, "match whole words only")
	cmd.Flags().BoolVarP(&regex, "regex", "e", false, "treat the pattern as a regular expression")
	return cmd
}

// patternKind maps the mutually exclusive flags onto a pattern kind.
// Literal is the default.
func patternKind(word, regex bool) pattern.Kind {
	switch {
	case word:
		return pattern.KindWord
	case regex:
		return pattern.KindRegex
	default:
		return pattern.KindLiteral
	}
}

// readLines reads a file into buffer lines. A trailing newline does
// not produce a phantom empty line.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n"), nil
}
