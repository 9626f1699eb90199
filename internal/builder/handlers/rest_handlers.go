package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hirecanvas/hirecanvas/internal/builder/auth"
	"github.com/hirecanvas/hirecanvas/internal/builder/db"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"go.uber.org/zap"
)

// BuilderController defines the business logic interface the REST
// handlers invoke.
type BuilderController interface {
	ListCompanies(ctx context.Context, ownerID string) ([]models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	CreateCompany(ctx context.Context, actor *models.Actor, name, slug string) (*models.Company, error)
	ReplaceCompany(ctx context.Context, actor *models.Actor, update *models.CompanyUpdate) (*models.Company, error)
	ListJobs(ctx context.Context, filter db.JobFilter) ([]models.Job, error)
	CreateJob(ctx context.Context, actor *models.Actor, job *models.Job) (*models.Job, error)
}

// RestHandler serves the JSON API.
type RestHandler struct {
	service  BuilderController
	logger   *zap.Logger
	validate *validator.Validate
}

// NewRestHandler constructs a RestHandler with the given service and logger.
func NewRestHandler(service BuilderController, logger *zap.Logger) *RestHandler {
	return &RestHandler{
		service:  service,
		logger:   logger.Named("rest_handler"),
		validate: validator.New(),
	}
}

// Register mounts the API routes on the router.
func (h *RestHandler) Register(r *mux.Router) {
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/companies", h.ListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies", h.CreateCompany).Methods(http.MethodPost)
	api.HandleFunc("/companies/{slug}", h.GetCompany).Methods(http.MethodGet)
	api.HandleFunc("/companies/{slug}", h.ReplaceCompany).Methods(http.MethodPut)
	api.HandleFunc("/jobs", h.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs", h.CreateJob).Methods(http.MethodPost)
}

type createCompanyRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

type replaceCompanyRequest struct {
	Name           *string          `json:"name"`
	LogoURL        *string          `json:"logoUrl"`
	BannerURL      *string          `json:"bannerUrl"`
	PrimaryColor   *string          `json:"primaryColor"`
	SecondaryColor *string          `json:"secondaryColor"`
	VideoURL       *string          `json:"videoUrl"`
	Sections       []models.Section `json:"sections"`
}

type createJobRequest struct {
	CompanyID   string `json:"companyId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Location    string `json:"location" validate:"required"`
	JobType     string `json:"jobType" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ListCompanies returns all companies, optionally narrowed to one owner
// via the userId query parameter. Reads are unauthenticated.
func (h *RestHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.ListCompanies(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companies)
}

// CreateCompany provisions a new tenant for the acting recruiter or admin.
func (h *RestHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		h.writeError(w, e.ErrUnauthenticated)
		return
	}

	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, e.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	company, err := h.service.CreateCompany(r.Context(), actor, req.Name, req.Slug)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, company)
}

// GetCompany returns one company document by slug, sections included.
func (h *RestHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.service.GetCompanyBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, company)
}

// ReplaceCompany submits a whole-document save: branding fields plus the
// entire section list.
func (h *RestHandler) ReplaceCompany(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		h.writeError(w, e.ErrUnauthenticated)
		return
	}

	var req replaceCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, e.ErrInvalidInput)
		return
	}
	for _, s := range req.Sections {
		if _, err := models.ParseSectionType(string(s.Type)); err != nil {
			h.writeError(w, e.ErrInvalidInput)
			return
		}
	}

	update := &models.CompanyUpdate{
		Slug:           mux.Vars(r)["slug"],
		Name:           req.Name,
		LogoURL:        req.LogoURL,
		BannerURL:      req.BannerURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		VideoURL:       req.VideoURL,
		Sections:       req.Sections,
	}
	company, err := h.service.ReplaceCompany(r.Context(), actor, update)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, company)
}

// ListJobs returns jobs matching the query parameters. Reads are
// unauthenticated.
func (h *RestHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.JobFilter{
		Location: q.Get("location"),
		JobType:  q.Get("jobType"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, e.ErrInvalidInput)
			return
		}
		filter.CompanyID = id
	}

	jobs, err := h.service.ListJobs(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jobs)
}

// CreateJob publishes a listing under a company the actor may manage.
func (h *RestHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		h.writeError(w, e.ErrUnauthenticated)
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, e.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		h.writeError(w, e.ErrInvalidInput)
		return
	}

	job := &models.Job{
		CompanyID:   companyID,
		Title:       req.Title,
		Department:  req.Department,
		Location:    req.Location,
		JobType:     models.JobType(req.JobType),
		Description: req.Description,
	}
	created, err := h.service.CreateJob(r.Context(), actor, job)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RestHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeValidationError surfaces the first failing field to the caller.
func (h *RestHandler) writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "missing or invalid field: " + fieldErrs[0].Field(),
		})
		return
	}
	h.writeError(w, e.ErrInvalidInput)
}

// writeError maps domain and repository errors to HTTP status codes.
// Storage failures surface as a generic 500 with no internal detail.
func (h *RestHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, e.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, e.ErrForbidden):
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, e.ErrDuplicateSlug):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "a company with this slug already exists"})
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
