// Package jobs implements the pure filtering engine used by every job
// listing surface: the public careers page, the editor preview and the
// global job board. It filters, it never reorders.
package jobs

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

// All is the sentinel value meaning "no constraint" for a filter dimension.
const All = "all"

// Criteria is the set of predicates ANDed together by Filter. An empty
// string or the All sentinel disables that dimension.
type Criteria struct {
	// Search matches case-insensitively against title, department,
	// location and the resolved company name.
	Search string
	// Location, JobType and Department are exact matches.
	Location   string
	JobType    string
	Department string
}

func active(v string) bool {
	return v != "" && v != All
}

// Filter returns the subsequence of jobs matching every active criterion,
// in the input collection's order. The companies slice supplies the
// company-name join for text search; jobs referencing an unknown company
// simply have no name to match against.
func Filter(in []models.Job, companies []models.Company, c Criteria) []models.Job {
	names := make(map[uuid.UUID]string, len(companies))
	for _, co := range companies {
		names[co.ID] = strings.ToLower(co.Name)
	}

	query := strings.ToLower(c.Search)
	out := make([]models.Job, 0, len(in))
	for _, job := range in {
		if active(c.Location) && job.Location != c.Location {
			continue
		}
		if active(c.JobType) && string(job.JobType) != c.JobType {
			continue
		}
		if active(c.Department) && job.Department != c.Department {
			continue
		}
		if query != "" && !matchesSearch(job, names[job.CompanyID], query) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// matchesSearch reports whether any searchable field contains the
// lowercased query.
func matchesSearch(job models.Job, companyName, query string) bool {
	return strings.Contains(strings.ToLower(job.Title), query) ||
		strings.Contains(strings.ToLower(job.Department), query) ||
		strings.Contains(strings.ToLower(job.Location), query) ||
		strings.Contains(companyName, query)
}

// Locations returns the distinct locations present in the collection,
// alphabetically sorted.
func Locations(in []models.Job) []string {
	return distinct(in, func(j models.Job) string { return j.Location })
}

// JobTypes returns the distinct job types present, alphabetically sorted.
func JobTypes(in []models.Job) []string {
	return distinct(in, func(j models.Job) string { return string(j.JobType) })
}

// Departments returns the distinct departments present, alphabetically sorted.
func Departments(in []models.Job) []string {
	return distinct(in, func(j models.Job) string { return j.Department })
}

func distinct(in []models.Job, key func(models.Job) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, job := range in {
		k := key(job)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
