package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/occurrence"
	"github.com/dshills/occur/internal/operator"
	lualoader "github.com/dshills/occur/internal/plugin/lua"
)

func newApplyCmd() *cobra.Command {
	var (
		word     bool
		regex    bool
		write    bool
		input    string
		register []string
		luaFile  string
	)

	cmd := &cobra.Command{
		Use:   "apply OPERATOR PATTERN FILE...",
		Short: "Apply an operator to every occurrence of a pattern",
		Long: `Apply runs a named operator (change, delete, upper, distribute, ...)
over every occurrence of the pattern in each file. The transformed text
is printed to stdout, or written back with --write.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ops := operator.DefaultRegistry()
			if luaFile != "" {
				loader := lualoader.NewLoader(ops, lualoader.WithLogger(logger))
				defer loader.Close()
				if err := loader.LoadFile(luaFile); err != nil {
					return err
				}
			}

			opName, pat, files := args[0], args[1], args[2:]
			if !ops.Has(opName) {
				return fmt.Errorf("unknown operator %q (available: %s)",
					opName, strings.Join(ops.Names(), ", "))
			}

			reg := occurrence.NewRegistry(
				occurrence.WithConfig(cfg),
				occurrence.WithLogger(logger),
				occurrence.WithOperators(ops),
				occurrence.WithPrompter(operator.StaticPrompter(input)),
			)

			for i, path := range files {
				if err := applyToFile(reg, buffer.ID(i+1), path, opName, pat, applyOptions{
					word:     word,
					regex:    regex,
					write:    write,
					register: register,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&word, "word", "w", false, "match whole words only")
	cmd.Flags().BoolVarP(&regex, "regex", "e", false, "treat the pattern as a regular expression")
	cmd.Flags().BoolVar(&write, "write", false, "write the result back to the file")
	cmd.Flags().StringVar(&input, "input", "", "replacement text for the change operator")
	cmd.Flags().StringArrayVar(&register, "register", nil, "register line for put/distribute (repeatable)")
	cmd.Flags().StringVar(&luaFile, "lua", "", "Lua file defining custom operators")
	return cmd
}

type applyOptions struct {
	word     bool
	regex    bool
	write    bool
	register []string
}

// applyToFile marks every occurrence in one file and applies the
// operator across the whole buffer.
func applyToFile(reg *occurrence.Registry, id buffer.ID, path, opName, pat string, opts applyOptions) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	buf := buffer.NewBufferFromLines(id, lines)

	occ := reg.Attach(buf)
	defer occ.Dispose()

	if _, err := occ.AddPattern(pat, patternKind(opts.word, opts.regex)); err != nil {
		return err
	}
	if len(opts.register) > 0 {
		occ.Registers().Set(operator.DefaultRegister, opts.register)
	}

	n, err := occ.MarkAll()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	scope := buffer.NewSpan(buffer.Position{}, buf.EndPosition())
	result, err := occ.Apply(opName, scope)
	if err != nil {
		if errors.Is(err, operator.ErrCancelled) {
			return nil
		}
		return fmt.Errorf("apply %q to %s: %w", opName, path, err)
	}

	if result.Applied == 0 {
		return nil
	}
	if opts.write {
		return os.WriteFile(path, []byte(buf.Text()+"\n"), 0o644)
	}
	fmt.Print(buf.Text() + "\n")
	return nil
}
