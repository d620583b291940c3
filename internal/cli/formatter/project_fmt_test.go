package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList_UsesShortIDWhenPresent(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 3)
	out := ansi.Strip(FormatProjectList([]*domain.Project{{
		ID:         "12345678-aaaa-bbbb-cccc-1234567890ab",
		ShortID:    "MET01",
		Name:       "Metro Depot",
		Client:     "MahaMetro",
		Status:     domain.ProjectActive,
		TargetDate: &target,
	}}, now))

	assert.Contains(t, out, "MET01")
	assert.NotContains(t, out, "12345678")
	assert.Contains(t, out, "MahaMetro")
	assert.Contains(t, out, "04 Feb 2026 (In 3d)")
}

func TestFormatProjectList_FallsBackToUUIDPrefix(t *testing.T) {
	out := ansi.Strip(FormatProjectList([]*domain.Project{{
		ID:     "abcdef12-3456-7890-abcd-ef1234567890",
		Name:   "Bridge",
		Status: domain.ProjectOnHold,
	}}, time.Now()))
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
}

func TestFormatProjectList_Empty(t *testing.T) {
	assert.Contains(t, ansi.Strip(FormatProjectList(nil, time.Now())), "No projects yet")
}

func TestSummarize(t *testing.T) {
	end := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	now := end.AddDate(0, 0, 5)
	rows := []wbs.Row{
		{Status: domain.ScheduleCompleted, End: &end},
		{Status: domain.ScheduleInProgress, End: &end},
		{Status: domain.ScheduleNotStarted},
		{Status: domain.ScheduleCompleted},
	}
	sum := Summarize(rows, now)
	assert.Equal(t, ScheduleSummary{Rows: 4, Completed: 2, Late: 1, Progress: 0.5}, sum)

	card := ansi.Strip(FormatProjectCard(&domain.Project{Name: "Depot", ShortID: "DEP01"}, sum))
	assert.Contains(t, card, "DEP01")
	assert.Contains(t, card, "50%")
}
