package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/importer"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/wbs"
)

type scheduleService struct {
	projects repository.ProjectRepo
	nodes    repository.WBSNodeRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	nodes repository.WBSNodeRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects: projects,
		nodes:    nodes,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) ImportFile(ctx context.Context, projectID, path string) (*ImportResult, error) {
	si, err := importer.LoadSchedule(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, projectID, si)
}

func (s *scheduleService) Import(ctx context.Context, projectID string, si *importer.ScheduleImport) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() { observe(ctx, s.observer, "import-schedule", startedAt, fields, err) }()

	if projectID != "" {
		// The project already exists; its section in the file is ignored.
		si = &importer.ScheduleImport{Tree: si.Tree}
	}
	if errs := importer.ValidateSchedule(si); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	now := time.Now().UTC()
	result = &ImportResult{}
	var nodes []*domain.WBSNode
	if projectID == "" {
		conv, err := importer.Convert(si)
		if err != nil {
			return nil, fmt.Errorf("converting import: %w", err)
		}
		result.Project = conv.Project
		result.Created = true
		nodes = conv.Nodes
	} else {
		p, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		result.Project = p
		nodes = importer.ConvertNodes(p.ID, si.Tree, now)
	}
	fields["project_id"] = result.Project.ID
	fields["node_count"] = len(nodes)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txNodes := repository.NewSQLiteWBSNodeRepo(tx)

		if result.Created {
			if err := txProjects.Create(ctx, result.Project); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}
		} else if err := txNodes.DeleteByProject(ctx, result.Project.ID); err != nil {
			return fmt.Errorf("clearing previous schedule: %w", err)
		}
		for _, n := range nodes {
			if err := txNodes.Create(ctx, n); err != nil {
				return fmt.Errorf("creating node %q: %w", n.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.NodeCount = len(nodes)
	for _, n := range nodes {
		if n.RowIndex != nil {
			result.RowCount++
		}
	}
	return result, nil
}

func (s *scheduleService) Tree(ctx context.Context, projectID string) ([]wbs.Node, error) {
	nodes, err := s.nodes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return wbs.FromNodes(nodes), nil
}

func (s *scheduleService) Rows(ctx context.Context, projectID string) ([]wbs.Row, error) {
	tree, err := s.Tree(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return wbs.Flatten(tree), nil
}

// UpdateProgress records the executed quantity of a node and moves its
// status along: nothing done keeps it not started, everything done
// completes it, anything in between is in progress. On-hold nodes keep
// their status.
func (s *scheduleService) UpdateProgress(ctx context.Context, nodeID string, done float64) (node *domain.WBSNode, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"node_id": nodeID, "done": done}
	defer func() { observe(ctx, s.observer, "update-progress", startedAt, fields, err) }()

	node, err = s.nodes.GetByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if done < 0 {
		return nil, fmt.Errorf("%w: completed quantity must not be negative", ErrInvalidInput)
	}
	if done > node.Quantity {
		return nil, fmt.Errorf("%w: completed quantity %g exceeds quantity %g %s",
			ErrInvalidInput, done, node.Quantity, node.Unit)
	}

	node.DoneQuantity = done
	if node.Status != domain.ScheduleOnHold {
		switch {
		case done == 0:
			node.Status = domain.ScheduleNotStarted
		case done == node.Quantity:
			node.Status = domain.ScheduleCompleted
		default:
			node.Status = domain.ScheduleInProgress
		}
	}
	node.UpdatedAt = time.Now().UTC()
	if err = s.nodes.Update(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
