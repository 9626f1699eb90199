// Package web serves the rendered page surfaces: the public careers page,
// the guarded editor and preview views, and the global job board. The
// pages are read-side renders over the same engines the JSON API uses.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hirecanvas/hirecanvas/internal/builder/auth"
	"github.com/hirecanvas/hirecanvas/internal/builder/db"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/jobs"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"github.com/hirecanvas/hirecanvas/internal/builder/policy"
	"github.com/hirecanvas/hirecanvas/internal/builder/sections"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageService is the slice of the business logic the pages need.
type PageService interface {
	ListCompanies(ctx context.Context, ownerID string) ([]models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	ListJobs(ctx context.Context, filter db.JobFilter) ([]models.Job, error)
}

// PageHandler renders the HTML surfaces.
type PageHandler struct {
	service   PageService
	logger    *zap.Logger
	templates *template.Template
}

func NewPageHandler(service PageService, logger *zap.Logger) (*PageHandler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		service:   service,
		logger:    logger.Named("page_handler"),
		templates: templates,
	}, nil
}

// Register mounts the page routes. The slug routes go last so fixed paths
// keep precedence.
func (h *PageHandler) Register(r *mux.Router) {
	r.HandleFunc("/jobs", h.JobBoard).Methods(http.MethodGet)
	r.HandleFunc("/{slug}/careers", h.Careers).Methods(http.MethodGet)
	r.HandleFunc("/{slug}/edit", h.Edit).Methods(http.MethodGet)
	r.HandleFunc("/{slug}/preview", h.Preview).Methods(http.MethodGet)
}

type careersPage struct {
	Company   *models.Company
	Sections  []models.Section
	Jobs      []models.Job
	Locations []string
	JobTypes  []string
	Criteria  jobs.Criteria
	Preview   bool
}

type boardPage struct {
	Jobs        []models.Job
	Companies   map[string]string
	Locations   []string
	JobTypes    []string
	Departments []string
	Criteria    jobs.Criteria
}

type editorPage struct {
	Company  *models.Company
	Sections []models.Section
}

// Careers renders the public page: branding, sections in display order,
// and the job list narrowed by the filter query parameters.
func (h *PageHandler) Careers(w http.ResponseWriter, r *http.Request) {
	h.renderCareers(w, r, false)
}

// Preview renders the same page as Careers but only for the owner or an
// admin, so drafts can be checked before sharing the public URL.
func (h *PageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.guardedCompany(w, r); !ok {
		return
	}
	h.renderCareers(w, r, true)
}

func (h *PageHandler) renderCareers(w http.ResponseWriter, r *http.Request, preview bool) {
	company, err := h.service.GetCompanyBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.renderError(w, err)
		return
	}

	listings, err := h.service.ListJobs(r.Context(), db.JobFilter{CompanyID: company.ID})
	if err != nil {
		h.renderError(w, err)
		return
	}

	q := r.URL.Query()
	criteria := jobs.Criteria{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		JobType:  q.Get("jobType"),
	}
	page := careersPage{
		Company:   company,
		Sections:  sections.SortedView(company.Sections),
		Jobs:      jobs.Filter(listings, []models.Company{*company}, criteria),
		Locations: jobs.Locations(listings),
		JobTypes:  jobs.JobTypes(listings),
		Criteria:  criteria,
		Preview:   preview,
	}
	h.render(w, "careers.html.tmpl", page)
}

// Edit renders the section editor for the owner or an admin.
func (h *PageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	company, ok := h.guardedCompany(w, r)
	if !ok {
		return
	}
	h.render(w, "edit.html.tmpl", editorPage{
		Company:  company,
		Sections: sections.SortedView(company.Sections),
	})
}

// JobBoard renders the cross-tenant listing with the department facet.
func (h *PageHandler) JobBoard(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.ListCompanies(r.Context(), "")
	if err != nil {
		h.renderError(w, err)
		return
	}
	listings, err := h.service.ListJobs(r.Context(), db.JobFilter{})
	if err != nil {
		h.renderError(w, err)
		return
	}

	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID.String()] = c.Name
	}

	q := r.URL.Query()
	criteria := jobs.Criteria{
		Search:     q.Get("search"),
		Location:   q.Get("location"),
		JobType:    q.Get("jobType"),
		Department: q.Get("department"),
	}
	page := boardPage{
		Jobs:        jobs.Filter(listings, companies, criteria),
		Companies:   names,
		Locations:   jobs.Locations(listings),
		JobTypes:    jobs.JobTypes(listings),
		Departments: jobs.Departments(listings),
		Criteria:    criteria,
	}
	h.render(w, "board.html.tmpl", page)
}

// guardedCompany loads the slugged company and enforces the owner/admin
// guard shared by the edit and preview surfaces.
func (h *PageHandler) guardedCompany(w http.ResponseWriter, r *http.Request) (*models.Company, bool) {
	company, err := h.service.GetCompanyBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.renderError(w, err)
		return nil, false
	}

	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}
	if !policy.CanEditCompany(actor.Role, actor.ID, company.OwnerID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return company, true
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
	}
}

// renderError keeps error output short and human readable; internals stay
// in the logs.
func (h *PageHandler) renderError(w http.ResponseWriter, err error) {
	if errors.Is(err, e.ErrNotFound) {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	h.logger.Error("Page render failed", zap.Error(err))
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}
