package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	target := time.Now().UTC().AddDate(1, 0, 0)
	proj := testutil.NewTestProject("Metro Depot", testutil.WithTargetDate(target), testutil.WithClient("MMRDA"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Metro Depot", fetched.Name)
	assert.Equal(t, "MMRDA", fetched.Client)
	assert.Equal(t, "Pune", fetched.Location)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	require.NotNil(t, fetched.TargetDate)
	assert.Equal(t, target.Format("2006-01-02"), fetched.TargetDate.Format("2006-01-02"))
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Bridge", testutil.WithShortID("BRG01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "brg01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListInCreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	first := testutil.NewTestProject("Alpha")
	second := testutil.NewTestProject("Beta")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Name)
	assert.Equal(t, "Beta", projects[1].Name)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tower", testutil.WithProjectStatus(domain.ProjectActive))
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = domain.ProjectOnHold
	proj.Location = "Nashik"
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)
	assert.Equal(t, "Nashik", fetched.Location)
}

func TestProjectRepo_DeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestProjectRepo_DuplicateShortIDRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("One", testutil.WithShortID("DUP01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("Two", testutil.WithShortID("DUP01"))))
}
