package jobs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	acmeID   = uuid.New()
	globexID = uuid.New()
)

func fixtures() ([]models.Job, []models.Company) {
	companies := []models.Company{
		{ID: acmeID, Name: "Acme"},
		{ID: globexID, Name: "Globex"},
	}
	jobs := []models.Job{
		{ID: uuid.New(), CompanyID: acmeID, Title: "Engineer", Department: "Engineering", Location: "Berlin", JobType: models.FullTime},
		{ID: uuid.New(), CompanyID: acmeID, Title: "Sales Rep", Department: "Sales", Location: "London", JobType: models.PartTime},
		{ID: uuid.New(), CompanyID: globexID, Title: "Designer", Department: "Design", Location: "Berlin", JobType: models.Contract},
	}
	return jobs, companies
}

func TestFilterNoCriteriaIsIdentity(t *testing.T) {
	jobs, companies := fixtures()
	out := Filter(jobs, companies, Criteria{})
	assert.Equal(t, jobs, out, "no criteria must return the input unchanged in order and content")
}

func TestFilterAllSentinelDisablesDimension(t *testing.T) {
	jobs, companies := fixtures()
	out := Filter(jobs, companies, Criteria{Location: All, JobType: All, Department: All})
	assert.Equal(t, jobs, out)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	jobs, companies := fixtures()
	out := Filter(jobs, companies, Criteria{Search: "eng"})
	require.Len(t, out, 1)
	assert.Equal(t, "Engineer", out[0].Title)

	out = Filter(jobs, companies, Criteria{Search: "ENGINEER"})
	require.Len(t, out, 1)
	assert.Equal(t, "Engineer", out[0].Title)
}

func TestFilterSearchMatchesAnyField(t *testing.T) {
	jobs, companies := fixtures()

	byLocation := Filter(jobs, companies, Criteria{Search: "london"})
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Sales Rep", byLocation[0].Title)

	byDepartment := Filter(jobs, companies, Criteria{Search: "design"})
	require.Len(t, byDepartment, 1)
	assert.Equal(t, "Designer", byDepartment[0].Title)

	byCompanyName := Filter(jobs, companies, Criteria{Search: "globex"})
	require.Len(t, byCompanyName, 1)
	assert.Equal(t, "Designer", byCompanyName[0].Title)
}

func TestFilterSearchUnknownCompanyHasNoName(t *testing.T) {
	jobs, _ := fixtures()
	// No companies supplied: company-name matching finds nothing, the other
	// fields still match.
	out := Filter(jobs, nil, Criteria{Search: "acme"})
	assert.Empty(t, out)

	out = Filter(jobs, nil, Criteria{Search: "engineer"})
	assert.Len(t, out, 1)
}

func TestFilterExactDimensions(t *testing.T) {
	jobs, companies := fixtures()

	berlin := Filter(jobs, companies, Criteria{Location: "Berlin"})
	assert.Len(t, berlin, 2)

	contract := Filter(jobs, companies, Criteria{JobType: "Contract"})
	require.Len(t, contract, 1)
	assert.Equal(t, "Designer", contract[0].Title)

	sales := Filter(jobs, companies, Criteria{Department: "Sales"})
	require.Len(t, sales, 1)
	assert.Equal(t, "Sales Rep", sales[0].Title)
}

func TestFilterCriteriaAreANDed(t *testing.T) {
	jobs, companies := fixtures()
	out := Filter(jobs, companies, Criteria{Location: "Berlin", JobType: "Contract"})
	require.Len(t, out, 1)
	assert.Equal(t, "Designer", out[0].Title)

	out = Filter(jobs, companies, Criteria{Location: "Berlin", JobType: "Part-time"})
	assert.Empty(t, out)
}

func TestFilterPreservesInputOrder(t *testing.T) {
	jobs, companies := fixtures()
	out := Filter(jobs, companies, Criteria{Location: "Berlin"})
	require.Len(t, out, 2)
	assert.Equal(t, "Engineer", out[0].Title, "a filter, not a sort")
	assert.Equal(t, "Designer", out[1].Title)
}

func TestFacetsDistinctAndSorted(t *testing.T) {
	jobs, _ := fixtures()
	jobs = append(jobs, models.Job{Title: "Another", Department: "Sales", Location: "Berlin", JobType: models.FullTime})

	assert.Equal(t, []string{"Berlin", "London"}, Locations(jobs))
	assert.Equal(t, []string{"Contract", "Full-time", "Part-time"}, JobTypes(jobs))
	assert.Equal(t, []string{"Design", "Engineering", "Sales"}, Departments(jobs))
}

func TestFacetsSkipEmptyValues(t *testing.T) {
	jobs := []models.Job{{Title: "Untitled"}}
	assert.Empty(t, Locations(jobs))
	assert.Empty(t, Departments(jobs))
}
