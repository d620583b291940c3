package wbs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// ErrTooDeep is returned when a tree nests below the leaf level.
var ErrTooDeep = errors.New("schedule tree deeper than group/item/task/leaf")

// legacyNode mirrors the nested JSON shape served by the site backend, where
// each level keeps its children under a differently named key.
type legacyNode struct {
	ID         flexString   `json:"id"`
	RowIndex   *flexNumber  `json:"row_index"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Unit       string       `json:"unit"`
	Quantity   flexNumber   `json:"quantity"`
	Done       flexNumber   `json:"completed_quantity"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	Status     string       `json:"status"`
	Items      []legacyNode `json:"items"`
	Tasks      []legacyNode `json:"tasks"`
	TaskWBSIDs []legacyNode `json:"task_wbs_ids"`
}

// DecodeTree parses an array of root group nodes in the legacy JSON shape.
// The child keys items, tasks and task_wbs_ids are folded into Children;
// any of them may be missing or empty.
func DecodeTree(data []byte) ([]Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var roots []legacyNode
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("parsing schedule tree: %w", err)
	}
	return convertLegacy(roots, 0, "")
}

func convertLegacy(in []legacyNode, level int, path string) ([]Node, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if level >= MaxDepth {
		return nil, fmt.Errorf("%s: %w", path, ErrTooDeep)
	}
	out := make([]Node, 0, len(in))
	for i, ln := range in {
		at := pathID(path, i)
		n := Node{
			SourceID:     string(ln.ID),
			Kind:         domain.KindAtLevel(level),
			Code:         ln.Code,
			Name:         ln.Name,
			Unit:         ln.Unit,
			Quantity:     float64(ln.Quantity),
			DoneQuantity: float64(ln.Done),
			Status:       domain.ScheduleStatus(strings.ToLower(strings.TrimSpace(ln.Status))),
		}
		if ln.RowIndex != nil {
			ri := int(*ln.RowIndex)
			n.RowIndex = &ri
		}
		var err error
		if n.Start, err = parseLegacyDate(ln.StartDate); err != nil {
			return nil, fmt.Errorf("node %s start_date: %w", at, err)
		}
		if n.End, err = parseLegacyDate(ln.EndDate); err != nil {
			return nil, fmt.Errorf("node %s end_date: %w", at, err)
		}

		kids := make([]legacyNode, 0, len(ln.Items)+len(ln.Tasks)+len(ln.TaskWBSIDs))
		kids = append(kids, ln.Items...)
		kids = append(kids, ln.Tasks...)
		kids = append(kids, ln.TaskWBSIDs...)
		if n.Children, err = convertLegacy(kids, level+1, at); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// parseLegacyDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
// Blank values mean "no date".
func parseLegacyDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	*f = flexNumber(v)
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}
