package grid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColumnCell_BlankValues(t *testing.T) {
	col := Column{Key: "vendor"}
	var nilStr *string
	for _, v := range []any{nil, "", "undefined", "UNDEFINED", "Undefined", nilStr} {
		assert.Equal(t, Blank, col.Cell(Row{"vendor": v}), "value %#v", v)
	}
	assert.Equal(t, Blank, col.Cell(Row{}), "missing key")
}

type orderStatus string

func TestColumnCell_BlankNamedStrings(t *testing.T) {
	col := Column{Key: "status"}
	var nilStatus *orderStatus
	for _, v := range []any{orderStatus(""), orderStatus("UNDEFINED"), nilStatus} {
		assert.Equal(t, Blank, col.Cell(Row{"status": v}), "value %#v", v)
	}
	partial := orderStatus("partial")
	assert.Equal(t, "partial", col.Cell(Row{"status": orderStatus("partial")}))
	assert.Equal(t, "partial", col.Cell(Row{"status": &partial}))
}

func TestColumnCell_RenderWins(t *testing.T) {
	col := Column{
		Key: "amount",
		Render: func(r Row) (string, bool) {
			return "custom", true
		},
		Format: func(any) string { return "formatted" },
	}
	assert.Equal(t, "custom", col.Cell(Row{"amount": nil}))
}

func TestColumnCell_RenderDeclinesFallsThrough(t *testing.T) {
	col := Column{
		Key:    "amount",
		Render: func(Row) (string, bool) { return "", false },
		Format: func(v any) string { return "₹" + v.(string) },
	}
	assert.Equal(t, "₹12", col.Cell(Row{"amount": "12"}))
	assert.Equal(t, Blank, col.Cell(Row{"amount": ""}))
}

func TestColumnCell_FormatGetsDereferencedValue(t *testing.T) {
	d := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	col := Column{Key: "due", Format: func(v any) string {
		return v.(time.Time).Format("02 Jan 2006")
	}}
	assert.Equal(t, "04 Mar 2026", col.Cell(Row{"due": &d}))
}

func TestColumnCell_DefaultTruncation(t *testing.T) {
	col := Column{Key: "remarks"}
	seven := "one two three four five six seven"
	eight := seven + " eight"

	assert.Equal(t, seven, col.Cell(Row{"remarks": seven}))
	assert.Equal(t, seven+"...", col.Cell(Row{"remarks": eight}))
	assert.Equal(t, "42", col.Cell(Row{"remarks": 42}))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 7, ""},
		{"short text", 7, "short text"},
		{"a b c d e f g", 7, "a b c d e f g"},
		{"a b c d e f g h", 7, "a b c d e f g..."},
		{"a  b\tc", 2, "a b..."},
		{"  padded  ", 7, "  padded  "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), "Truncate(%q, %d)", tt.in, tt.n)
	}
}

func TestTruncate_NeverLongerThanLimit(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := Truncate(long, DefaultWordLimit)
	assert.Len(t, strings.Fields(strings.TrimSuffix(got, "...")), DefaultWordLimit)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestDisplayIndex(t *testing.T) {
	assert.Equal(t, 1, DisplayIndex(1, 0))
	assert.Equal(t, 10, DisplayIndex(1, 9))
	assert.Equal(t, 11, DisplayIndex(2, 0))
	assert.Equal(t, 23, DisplayIndex(3, 2))
	assert.Equal(t, 1, DisplayIndex(0, 0), "page below 1 treated as 1")
}
