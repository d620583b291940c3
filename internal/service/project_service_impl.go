package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": p.ShortID}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, fields, err) }()

	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	if err = p.ValidateShortID(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if p.TargetDate != nil && !p.TargetDate.After(p.StartDate) {
		return fmt.Errorf("%w: target date must be after start date", ErrInvalidInput)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := s.projects.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p, err = s.projects.GetByID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project %q: %w", ref, repository.ErrNotFound)
	}
	return p, err
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "delete-project", startedAt, map[string]any{"project_id": id}, err) }()
	return s.projects.Delete(ctx, id)
}
