package cli

import "github.com/alexanderramin/sitedesk/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Project the user drilled into from the project list.
	ActiveProject *domain.Project

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject makes p the context for schedule and order views.
func (s *SharedState) SetActiveProject(p *domain.Project) {
	s.ActiveProject = p
}

// ActiveProjectID returns the active project's ID, or "" when none is set.
func (s *SharedState) ActiveProjectID() string {
	if s.ActiveProject == nil {
		return ""
	}
	return s.ActiveProject.ID
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}
