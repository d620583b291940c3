package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/google/uuid"
)

// ConvertedSchedule holds domain objects ready for persistence.
type ConvertedSchedule struct {
	Project *domain.Project
	Nodes   []*domain.WBSNode
}

// Convert transforms a validated import that carries a project section into
// a new project and its schedule. Call ValidateSchedule first.
func Convert(s *ScheduleImport) (*ConvertedSchedule, error) {
	if s.Project == nil {
		return nil, fmt.Errorf("import file has no project section")
	}
	now := time.Now().UTC()

	startDate, err := time.Parse("2006-01-02", s.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	var targetDate *time.Time
	if s.Project.TargetDate != nil {
		t, err := time.Parse("2006-01-02", *s.Project.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("parsing target_date: %w", err)
		}
		targetDate = &t
	}

	project := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    strings.ToUpper(s.Project.ShortID),
		Name:       s.Project.Name,
		Client:     s.Project.Client,
		Location:   s.Project.Location,
		StartDate:  startDate,
		TargetDate: targetDate,
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return &ConvertedSchedule{
		Project: project,
		Nodes:   ConvertNodes(project.ID, s.Tree, now),
	}, nil
}

// ConvertNodes flattens tree into persisted nodes for projectID, parents
// before children. Every node gets a fresh UUID; OrderIndex keeps the
// sibling order of the file.
func ConvertNodes(projectID string, tree []wbs.Node, now time.Time) []*domain.WBSNode {
	out := make([]*domain.WBSNode, 0, wbs.Count(tree))
	var walk func(nodes []wbs.Node, parentID *string)
	walk = func(nodes []wbs.Node, parentID *string) {
		for i, n := range nodes {
			status := n.Status
			if status == "" {
				status = domain.ScheduleNotStarted
			}
			dn := &domain.WBSNode{
				ID:           uuid.New().String(),
				ProjectID:    projectID,
				ParentID:     parentID,
				Kind:         n.Kind,
				OrderIndex:   i,
				RowIndex:     n.RowIndex,
				Code:         n.Code,
				Name:         n.Name,
				Unit:         n.Unit,
				Quantity:     n.Quantity,
				DoneQuantity: n.DoneQuantity,
				StartDate:    n.Start,
				EndDate:      n.End,
				Status:       status,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			out = append(out, dn)
			id := dn.ID
			walk(n.Children, &id)
		}
	}
	walk(tree, nil)
	return out
}
