package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"github.com/hirecanvas/hirecanvas/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	repo, err := NewSQLiteRepository(":memory:")
	require.NoError(t, err, "failed to open test database")
	return repo
}

func seedCompany(t *testing.T, repo *Repository, slug, owner string) *models.Company {
	t.Helper()
	company := &models.Company{
		Slug:    slug,
		Name:    "Test Company",
		OwnerID: owner,
	}
	require.NoError(t, repo.CreateCompany(context.Background(), company))
	return company
}

func TestCreateCompany(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := &models.Company{Slug: "acme", Name: "Acme", OwnerID: "u1"}
	err := repo.CreateCompany(ctx, company)
	assert.NoError(t, err, "CreateCompany should not return an error")
	assert.NotEqual(t, uuid.Nil, company.ID, "id must be assigned by the store")
	assert.False(t, company.CreatedAt.IsZero(), "createdAt must be stamped")
	assert.False(t, company.UpdatedAt.IsZero(), "updatedAt must be stamped")
	assert.NotNil(t, company.Sections, "sections default to an empty list")

	retrieved, err := repo.GetCompanyBySlug(ctx, "acme")
	assert.NoError(t, err, "GetCompanyBySlug should retrieve the created company")
	assert.Equal(t, company.Name, retrieved.Name, "Company name should match")
	assert.Equal(t, "u1", retrieved.OwnerID)
}

func TestCreateCompanyDuplicateSlug(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	seedCompany(t, repo, "acme", "u1")

	dup := &models.Company{Slug: "acme", Name: "Other", OwnerID: "u2"}
	err := repo.CreateCompany(ctx, dup)
	assert.ErrorIs(t, err, e.ErrDuplicateSlug)

	// The collision must not have mutated storage.
	companies, err := repo.FindCompanies(ctx, CompanyFilter{})
	require.NoError(t, err)
	assert.Len(t, companies, 1)
	assert.Equal(t, "Test Company", companies[0].Name)
}

func TestGetCompanyBySlugNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.GetCompanyBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestFindCompaniesByOwner(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	seedCompany(t, repo, "acme", "u1")
	seedCompany(t, repo, "globex", "u2")

	all, err := repo.FindCompanies(ctx, CompanyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.FindCompanies(ctx, CompanyFilter{OwnerID: "u1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "acme", mine[0].Slug)
}

func TestReplaceCompanyMergesFields(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	created := seedCompany(t, repo, "acme", "u1")
	before := created.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	updated, err := repo.ReplaceCompany(ctx, &models.CompanyUpdate{
		Slug:         "acme",
		Name:         utils.Ptr("Acme Corp"),
		PrimaryColor: utils.Ptr("#000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "#000000", updated.PrimaryColor)
	assert.Equal(t, "u1", updated.OwnerID, "unsent fields keep their value")
	assert.True(t, updated.UpdatedAt.After(before), "updatedAt must be bumped")
	assert.Equal(t, created.ID, updated.ID, "id is stable across replaces")
}

func TestReplaceCompanyReplacesSections(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	created := seedCompany(t, repo, "acme", "u1")

	sections := []models.Section{
		{ID: "s1", CompanyID: created.ID.String(), Type: models.SectionBenefits, Title: "Benefits", Order: 0},
		{ID: "s2", CompanyID: created.ID.String(), Type: models.SectionAbout, Title: "About", Order: 1},
	}
	updated, err := repo.ReplaceCompany(ctx, &models.CompanyUpdate{Slug: "acme", Sections: sections})
	require.NoError(t, err)
	require.Len(t, updated.Sections, 2)
	assert.Equal(t, "s1", updated.Sections[0].ID)
	assert.Equal(t, 0, updated.Sections[0].Order)
	assert.Equal(t, "s2", updated.Sections[1].ID)

	// A second replace drops the old list wholesale.
	updated, err = repo.ReplaceCompany(ctx, &models.CompanyUpdate{
		Slug:     "acme",
		Sections: []models.Section{{ID: "s3", Type: models.SectionValues, Title: "Values", Order: 0}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, "s3", updated.Sections[0].ID)
}

func TestReplaceCompanyNilSectionsKeepsStored(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	created := seedCompany(t, repo, "acme", "u1")
	_, err := repo.ReplaceCompany(ctx, &models.CompanyUpdate{
		Slug:     "acme",
		Sections: []models.Section{{ID: "s1", CompanyID: created.ID.String(), Type: models.SectionAbout, Title: "About", Order: 0}},
	})
	require.NoError(t, err)

	// Branding-only update; the section list survives.
	updated, err := repo.ReplaceCompany(ctx, &models.CompanyUpdate{
		Slug: "acme",
		Name: utils.Ptr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, "s1", updated.Sections[0].ID)
}

func TestReplaceCompanyNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.ReplaceCompany(context.Background(), &models.CompanyUpdate{
		Slug: "missing",
		Name: utils.Ptr("Nobody"),
	})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCreateAndFindJobs(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	acme := seedCompany(t, repo, "acme", "u1")
	globex := seedCompany(t, repo, "globex", "u2")

	jobs := []*models.Job{
		{CompanyID: acme.ID, Title: "Engineer", Department: "Engineering", Location: "Berlin", JobType: models.FullTime, Description: "Build things"},
		{CompanyID: acme.ID, Title: "Sales Rep", Department: "Sales", Location: "London", JobType: models.PartTime, Description: "Sell things"},
		{CompanyID: globex.ID, Title: "Designer", Department: "Design", Location: "Berlin", JobType: models.Contract, Description: "Draw things"},
	}
	for _, j := range jobs {
		require.NoError(t, repo.CreateJob(ctx, j))
		assert.NotEqual(t, uuid.Nil, j.ID)
		assert.False(t, j.CreatedAt.IsZero())
	}

	all, err := repo.FindJobs(ctx, JobFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCompany, err := repo.FindJobs(ctx, JobFilter{CompanyID: acme.ID})
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)

	byLocation, err := repo.FindJobs(ctx, JobFilter{Location: "Berlin"})
	require.NoError(t, err)
	assert.Len(t, byLocation, 2)

	byType, err := repo.FindJobs(ctx, JobFilter{JobType: "Contract"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Designer", byType[0].Title)

	// The "all" sentinel disables a dimension.
	sentinel, err := repo.FindJobs(ctx, JobFilter{Location: "all", JobType: "all"})
	require.NoError(t, err)
	assert.Len(t, sentinel, 3)

	// Search is case-insensitive over title and department.
	search, err := repo.FindJobs(ctx, JobFilter{Search: "ENG"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Engineer", search[0].Title)

	byDept, err := repo.FindJobs(ctx, JobFilter{Search: "sales"})
	require.NoError(t, err)
	require.Len(t, byDept, 1)
	assert.Equal(t, "Sales Rep", byDept[0].Title)
}
