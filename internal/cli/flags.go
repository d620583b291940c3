package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// sortFlags backs --sort and --desc on listing commands.
type sortFlags struct {
	key  string
	desc bool
}

func addSortFlags(fs *pflag.FlagSet, f *sortFlags, cols []grid.Column) {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	fs.StringVar(&f.key, "sort", "", "Sort the page by column ("+strings.Join(keys, ", ")+")")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending")
}

// config validates the flags against cols and returns the sort they ask for.
// fallback applies when --sort was not given.
func (f sortFlags) config(cols []grid.Column, fallback grid.SortConfig) (grid.SortConfig, error) {
	if f.key == "" {
		return fallback, nil
	}
	for _, c := range cols {
		if c.Key == f.key {
			cfg := grid.SortConfig{Key: f.key}
			if f.desc {
				cfg.Direction = grid.Desc
			}
			return cfg, nil
		}
	}
	return grid.SortConfig{}, fmt.Errorf("unknown sort column %q", f.key)
}

func addPageFlag(fs *pflag.FlagSet, page *int) {
	fs.IntVarP(page, "page", "p", 1, fmt.Sprintf("Page to show (%d rows per page)", grid.PageSize))
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return t, nil
}

// parseOptionalDate is parseDate for flags that may be left empty.
func parseOptionalDate(flag, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(flag, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// requireFlags fails when any of the named string flags is empty.
func requireFlags(fs *pflag.FlagSet, names ...string) error {
	var missing []string
	for _, n := range names {
		v, err := fs.GetString(n)
		if err != nil || strings.TrimSpace(v) == "" {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required: %s", strings.Join(missing, ", "))
	}
	return nil
}
