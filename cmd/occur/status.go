package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
	"github.com/dshills/occur/internal/engine/pattern"
)

// statusEntry is one file's occurrence count.
type statusEntry struct {
	path  string
	total int
}

func newStatusCmd() *cobra.Command {
	var (
		word  bool
		regex bool
	)

	cmd := &cobra.Command{
		Use:   "status PATTERN FILE...",
		Short: "Report how many occurrences of a pattern each file holds",
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
			entries := make([]statusEntry, len(files))

			g, _ := errgroup.WithContext(context.Background())
			for i, path := range files {
				i, path := i, path
				g.Go(func() error {
					lines, err := readLines(path)
					if err != nil {
						return err
					}
					buf := buffer.NewBufferFromLines(buffer.ID(i+1), lines)
					ms := match.Collect(match.FindAll(buf, pred, nil))
					entries[i] = statusEntry{path: path, total: len(ms)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if flagJSON {
				out, err := statusJSON(entries)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s: %d\n", e.path, e.total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&word, "word", "w", false, "match whole words only")
	cmd.Flags().BoolVarP(&regex, "regex", "e", false, "treat the pattern as a regular expression")
	return cmd
}
