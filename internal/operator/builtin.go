package operator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Built-in operator names.
const (
	OpChange     = "change"
	OpDelete     = "delete"
	OpYank       = "yank"
	OpPut        = "put"
	OpDistribute = "distribute"
	OpIndent     = "indent"
	OpOutdent    = "outdent"
	OpFormat     = "format"
	OpUpper      = "upper"
	OpLower      = "lower"
	OpSwapCase   = "swapcase"
)

// registerBuiltins installs the built-in operators. Registration cannot
// fail for built-ins; names are unique by construction.
func registerBuiltins(r *Registry) {
	builtins := []Op{
		{Name: OpChange, Fn: changeFn, Prepare: changePrepare},
		{Name: OpDelete, Fn: deleteFn},
		{Name: OpYank, Fn: yankFn},
		{Name: OpPut, Fn: putFn},
		{Name: OpDistribute, Fn: distributeFn},
		{Name: OpIndent, Fn: indentFn},
		{Name: OpOutdent, Fn: outdentFn},
		{Name: OpFormat, Fn: formatFn},
		{Name: OpUpper, Fn: upperFn},
		{Name: OpLower, Fn: lowerFn},
		{Name: OpSwapCase, Fn: swapCaseFn},
	}
	for _, op := range builtins {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
}

// changePrepare gathers the replacement text. Aborting the prompt
// cancels the whole application before any mutation.
func changePrepare(ctx *Context, prompt Prompter) error {
	if prompt == nil {
		return ErrCancelled
	}
	input, err := prompt.Prompt("Change occurrences to: ")
	if err != nil {
		return err
	}
	ctx.Input = input
	return nil
}

func changeFn(ctx *Context, _ []string) ([]string, bool) {
	return []string{ctx.Input}, true
}

func deleteFn(ctx *Context, current []string) ([]string, bool) {
	ctx.Yank(current)
	return []string{""}, true
}

func yankFn(ctx *Context, current []string) ([]string, bool) {
	ctx.Yank(current)
	return nil, false
}

// putFn replaces every occurrence with the full register content.
func putFn(ctx *Context, _ []string) ([]string, bool) {
	if len(ctx.Source) == 0 {
		return nil, false
	}
	out := make([]string, len(ctx.Source))
	copy(out, ctx.Source)
	return out, true
}

// distributeFn cycles the register's lines across occurrences:
// occurrence i takes source[i % len(source)].
func distributeFn(ctx *Context, _ []string) ([]string, bool) {
	if len(ctx.Source) == 0 {
		return nil, false
	}
	return []string{ctx.Source[ctx.Index%len(ctx.Source)]}, true
}

func indentFn(ctx *Context, current []string) ([]string, bool) {
	unit := "\t"
	if ctx.IndentWidth > 0 {
		unit = strings.Repeat(" ", ctx.IndentWidth)
	}
	out := make([]string, len(current))
	for i, line := range current {
		if line == "" {
			out[i] = line
			continue
		}
		out[i] = unit + line
	}
	return out, true
}

func outdentFn(ctx *Context, current []string) ([]string, bool) {
	width := ctx.IndentWidth
	if width <= 0 {
		width = 1
	}
	out := make([]string, len(current))
	for i, line := range current {
		out[i] = outdentLine(line, width)
	}
	return out, true
}

// outdentLine removes up to width columns of leading whitespace; a tab
// counts as the full width.
func outdentLine(line string, width int) string {
	removed := 0
	cut := 0
	for i, r := range line {
		if removed >= width {
			break
		}
		if r == '\t' {
			cut = i + 1
			break
		}
		if r == ' ' {
			removed++
			cut = i + 1
			continue
		}
		break
	}
	return line[cut:]
}

// formatFn normalizes whitespace: runs of spaces and tabs collapse to a
// single space and trailing whitespace is trimmed.
func formatFn(_ *Context, current []string) ([]string, bool) {
	out := make([]string, len(current))
	for i, line := range current {
		out[i] = strings.TrimRight(strings.Join(strings.Fields(line), " "), " ")
	}
	return out, true
}

func upperFn(_ *Context, current []string) ([]string, bool) {
	caser := cases.Upper(language.Und)
	out := make([]string, len(current))
	for i, line := range current {
		out[i] = caser.String(line)
	}
	return out, true
}

func lowerFn(_ *Context, current []string) ([]string, bool) {
	caser := cases.Lower(language.Und)
	out := make([]string, len(current))
	for i, line := range current {
		out[i] = caser.String(line)
	}
	return out, true
}

func swapCaseFn(_ *Context, current []string) ([]string, bool) {
	out := make([]string, len(current))
	for i, line := range current {
		out[i] = strings.Map(swapRune, line)
	}
	return out, true
}

func swapRune(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	if unicode.IsLower(r) {
		return unicode.ToUpper(r)
	}
	return r
}
