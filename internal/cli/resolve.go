package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
)

// resolveProject finds a project by short ID, full UUID or unique UUID prefix.
func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	p, err := app.Projects.Resolve(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
