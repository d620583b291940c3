package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateNormalizesAndDefaults(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	p := &domain.Project{ShortID: " met01 ", Name: "Metro Depot", StartDate: time.Now().UTC()}
	require.NoError(t, ts.projSvc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "MET01", p.ShortID)
	assert.Equal(t, domain.ProjectActive, p.Status)

	ev := ts.observer.last()
	assert.Equal(t, "create-project", ev.Name)
	assert.True(t, ev.Success)
}

func TestProjectService_CreateRejectsInvalid(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	err := ts.projSvc.Create(ctx, &domain.Project{ShortID: "M1", Name: "X", StartDate: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = ts.projSvc.Create(ctx, &domain.Project{ShortID: "MET01", StartDate: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	target := start
	err = ts.projSvc.Create(ctx, &domain.Project{ShortID: "MET01", Name: "X", StartDate: start, TargetDate: &target})
	assert.ErrorContains(t, err, "target date must be after start date")

	assert.False(t, ts.observer.last().Success)
}

func TestProjectService_Resolve(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	p := &domain.Project{ShortID: "BRG02", Name: "Bridge", StartDate: time.Now().UTC()}
	require.NoError(t, ts.projSvc.Create(ctx, p))

	byShort, err := ts.projSvc.Resolve(ctx, "brg02")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byShort.ID)

	byID, err := ts.projSvc.Resolve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "BRG02", byID.ShortID)

	_, err = ts.projSvc.Resolve(ctx, "NOPE01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorContains(t, err, `"NOPE01"`)
}

func TestProjectService_Delete(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	p := &domain.Project{ShortID: "DEL01", Name: "Gone", StartDate: time.Now().UTC()}
	require.NoError(t, ts.projSvc.Create(ctx, p))
	require.NoError(t, ts.projSvc.Delete(ctx, p.ID))

	projects, err := ts.projSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.ErrorIs(t, ts.projSvc.Delete(ctx, p.ID), repository.ErrNotFound)
}
