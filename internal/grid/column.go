// Package grid is the table component shared by every list screen: it owns
// sort state, draws pagination controls for pages its caller fetches, and
// renders cells from column descriptors.
package grid

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row maps column keys to raw values. Rows have no identity of their own;
// callers that need one store it under an "id" key.
type Row map[string]any

// Column describes how one table column is labelled and rendered.
type Column struct {
	Key   string
	Label string

	// Render builds the whole cell from the row. Returning false falls back
	// to the raw value under Key.
	Render func(Row) (string, bool)

	// Format turns a non-blank raw value into display text. Without it the
	// value is printed and truncated to DefaultWordLimit words.
	Format func(any) string

	// Style is applied to the finished cell text when set.
	Style *lipgloss.Style

	// MaxWidth caps the rendered column width; 0 means no cap.
	MaxWidth int
}

// Blank is the text shown for missing values.
const Blank = "-"

// DefaultWordLimit is how many words an unformatted cell keeps.
const DefaultWordLimit = 7

// Cell returns the display text for row under c.
func (c Column) Cell(row Row) string {
	if c.Render != nil {
		if s, ok := c.Render(row); ok {
			return c.style(s)
		}
	}
	v := row[c.Key]
	if IsBlank(v) {
		return Blank
	}
	if c.Format != nil {
		return c.style(c.Format(deref(v)))
	}
	return c.style(Truncate(fmt.Sprint(deref(v)), DefaultWordLimit))
}

func (c Column) style(s string) string {
	if c.Style == nil {
		return s
	}
	return c.Style.Render(s)
}

// IsBlank reports whether v should be displayed as Blank: nil, a nil
// pointer, the empty string, or the literal string "undefined" in any case.
func IsBlank(v any) bool {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == "" || strings.EqualFold(x, "undefined")
	}
	// Named string types such as status enums.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.Len() == 0 || strings.EqualFold(rv.String(), "undefined")
	}
	return false
}

// Truncate keeps the first n whitespace-separated words of s and appends
// "..." when there were more. Strings of n words or fewer are returned
// unchanged.
func Truncate(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}

// deref unwraps pointer values. A nil pointer becomes a nil interface.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
