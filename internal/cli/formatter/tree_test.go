package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWBSTree(t *testing.T) {
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	rows := []wbs.Row{
		{ID: "g", Kind: domain.NodeGroup, RowIndex: 1, Name: "Substructure", HasChildren: true},
		{ID: "i", ParentID: "g", Kind: domain.NodeItem, Level: 1, RowIndex: 2, Name: "Footings",
			Unit: "cum", Quantity: 120, DoneQuantity: 40, End: &end, Status: domain.ScheduleInProgress},
	}
	state := wbs.NewExpandState([]string{"g"})

	out := ansi.Strip(RenderWBSTree(TreeLines(rows, rows, state, 1), now))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "  1 ▾ Substructure")
	assert.Contains(t, lines[1], "▸ ")
	assert.Contains(t, lines[1], "  2     Footings")
	assert.Contains(t, lines[1], "40 / 120 cum")
	assert.Contains(t, lines[1], "10d late")
}

func TestRenderWBSTree_CollapsedMarker(t *testing.T) {
	rows := []wbs.Row{
		{ID: "g", RowIndex: 1, Name: "Finishes", HasChildren: true},
		{ID: "i", ParentID: "g", Level: 1, RowIndex: 2, Name: "Plaster", HasChildren: true},
		{ID: "t", ParentID: "i", Level: 2, RowIndex: 3, Name: "Internal walls"},
	}
	visible := wbs.Visible(rows, wbs.ExpandState{})
	out := ansi.Strip(RenderWBSTree(TreeLines(rows, visible, wbs.ExpandState{}, -1), time.Now()))
	assert.Contains(t, out, "▸ Finishes (+2)")
	assert.NotContains(t, out, "Plaster")
}

func TestRenderWBSTree_Empty(t *testing.T) {
	assert.Empty(t, RenderWBSTree(nil, time.Now()))
}
