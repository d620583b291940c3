package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
)

// ValidateSchedule checks an import before conversion and returns every
// problem found.
func ValidateSchedule(s *ScheduleImport) []error {
	var errs []error
	if s.Project != nil {
		errs = append(errs, validateProject(s.Project)...)
	}
	if wbs.Count(s.Tree) == 0 {
		errs = append(errs, fmt.Errorf("schedule: at least one node is required"))
	}
	seen := make(map[int]string)
	errs = append(errs, validateNodes(s.Tree, "", seen)...)
	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		probe := domain.Project{ShortID: p.ShortID}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	var start time.Time
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if t, err := time.Parse("2006-01-02", p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("project.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	} else {
		start = t
	}
	if p.TargetDate != nil {
		target, err := time.Parse("2006-01-02", *p.TargetDate)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("project.target_date: invalid date format %q (expected YYYY-MM-DD)", *p.TargetDate))
		case !start.IsZero() && !target.After(start):
			errs = append(errs, fmt.Errorf("project.target_date %q must be after start_date %q", *p.TargetDate, p.StartDate))
		}
	}
	return errs
}

// validateNodes walks the tree. seen maps row_index to the path of the node
// that first used it.
func validateNodes(nodes []wbs.Node, path string, seen map[int]string) []error {
	var errs []error
	for i, n := range nodes {
		at := "schedule[" + wbsPath(path, i) + "]"
		if n.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", at))
		}
		if n.RowIndex != nil {
			if *n.RowIndex < 1 {
				errs = append(errs, fmt.Errorf("%s.row_index must be positive, got %d", at, *n.RowIndex))
			} else if prev, dup := seen[*n.RowIndex]; dup {
				errs = append(errs, fmt.Errorf("%s.row_index %d already used by %s", at, *n.RowIndex, prev))
			} else {
				seen[*n.RowIndex] = at
			}
		}
		if n.Quantity < 0 {
			errs = append(errs, fmt.Errorf("%s.quantity must not be negative", at))
		}
		if n.DoneQuantity < 0 {
			errs = append(errs, fmt.Errorf("%s.completed_quantity must not be negative", at))
		}
		if n.DoneQuantity > n.Quantity && n.Quantity >= 0 {
			errs = append(errs, fmt.Errorf("%s.completed_quantity %g exceeds quantity %g", at, n.DoneQuantity, n.Quantity))
		}
		if n.Start != nil && n.End != nil && n.End.Before(*n.Start) {
			errs = append(errs, fmt.Errorf("%s.end_date %s is before start_date %s", at,
				n.End.Format("2006-01-02"), n.Start.Format("2006-01-02")))
		}
		if n.Status != "" && !domain.ValidScheduleStatuses[string(n.Status)] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", at, n.Status))
		}
		errs = append(errs, validateNodes(n.Children, wbsPath(path, i), seen)...)
	}
	return errs
}

func wbsPath(parent string, i int) string {
	if parent == "" {
		return fmt.Sprint(i + 1)
	}
	return fmt.Sprintf("%s.%d", parent, i+1)
}
