// Package controller implements the core business logic (service layer)
// for the careers page builder: validation, access policy enforcement,
// section-list normalization, and event production around repository
// operations.
package controller

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/hirecanvas/hirecanvas/internal/builder/db"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/events"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"github.com/hirecanvas/hirecanvas/internal/builder/policy"
	"github.com/hirecanvas/hirecanvas/internal/builder/sections"
	"go.uber.org/zap"
)

// Default branding applied to a freshly created company.
const (
	defaultPrimaryColor   = "#3b82f6"
	defaultSecondaryColor = "#8b5cf6"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type EventProducer interface {
	Produce(eventType events.EventType, key string, payload interface{})
}

// Repository defines the storage interface consumed by the service.
type Repository interface {
	FindCompanies(ctx context.Context, filter db.CompanyFilter) ([]models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	ReplaceCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	FindJobs(ctx context.Context, filter db.JobFilter) ([]models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	Close() error
}

// BuilderService provides the operations behind the REST surface and the
// rendered pages.
type BuilderService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewBuilderService constructs a BuilderService with a repository, an
// event producer, and a logger.
func NewBuilderService(repo Repository, producer EventProducer, logger *zap.Logger) *BuilderService {
	return &BuilderService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("builder_service"),
	}
}

// ListCompanies returns companies, optionally narrowed to one owner.
func (s *BuilderService) ListCompanies(ctx context.Context, ownerID string) ([]models.Company, error) {
	return s.repo.FindCompanies(ctx, db.CompanyFilter{OwnerID: ownerID})
}

// GetCompanyBySlug fetches one company document, sections included.
func (s *BuilderService) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	return s.repo.GetCompanyBySlug(ctx, slug)
}

// CreateCompany provisions a new tenant for the acting recruiter or admin:
// validates name and slug, rejects duplicate slugs without touching
// storage, applies default branding, and fires a creation event.
func (s *BuilderService) CreateCompany(ctx context.Context, actor *models.Actor, name, slug string) (*models.Company, error) {
	if actor == nil {
		return nil, e.ErrUnauthenticated
	}
	if !policy.CanCreateCompany(actor.Role) {
		return nil, fmt.Errorf("%w: role may not create companies", e.ErrForbidden)
	}
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", e.ErrInvalidInput)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must match [a-z0-9-]+", e.ErrInvalidInput)
	}

	if _, err := s.repo.GetCompanyBySlug(ctx, slug); err == nil {
		return nil, e.ErrDuplicateSlug
	} else if !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}

	company := &models.Company{
		Slug:           slug,
		Name:           name,
		PrimaryColor:   defaultPrimaryColor,
		SecondaryColor: defaultSecondaryColor,
		OwnerID:        actor.ID,
		Sections:       []models.Section{},
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}
	go func() {
		s.producer.Produce(events.CompanyCreated, company.ID.String(), company)
	}()
	return company, nil
}

// ReplaceCompany submits a whole-document update: branding fields plus the
// entire section list. Only the owner or an admin may save. The submitted
// section list is renormalized so persisted orders always form a dense
// {0..N-1} permutation, and each section is stamped with the owning
// company's id. Last write wins on concurrent saves.
func (s *BuilderService) ReplaceCompany(ctx context.Context, actor *models.Actor, update *models.CompanyUpdate) (*models.Company, error) {
	if actor == nil {
		return nil, e.ErrUnauthenticated
	}
	existing, err := s.repo.GetCompanyBySlug(ctx, update.Slug)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditCompany(actor.Role, actor.ID, existing.OwnerID) {
		return nil, fmt.Errorf("%w: not the company owner", e.ErrForbidden)
	}

	if update.Sections != nil {
		normalized := sections.Renormalize(update.Sections)
		for i := range normalized {
			normalized[i].CompanyID = existing.ID.String()
		}
		update.Sections = normalized
	}

	updated, err := s.repo.ReplaceCompany(ctx, update)
	if err != nil {
		return nil, err
	}
	go func() {
		s.producer.Produce(events.CompanyUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// ListJobs returns jobs matching the store-level filter.
func (s *BuilderService) ListJobs(ctx context.Context, filter db.JobFilter) ([]models.Job, error) {
	return s.repo.FindJobs(ctx, filter)
}

// CreateJob publishes a listing under a company. Recruiters may only
// publish under companies they own; admins under any. The referenced
// company must exist.
func (s *BuilderService) CreateJob(ctx context.Context, actor *models.Actor, job *models.Job) (*models.Job, error) {
	if actor == nil {
		return nil, e.ErrUnauthenticated
	}
	if !policy.CanCreateJob(actor.Role) {
		return nil, fmt.Errorf("%w: only recruiters and admins can create jobs", e.ErrForbidden)
	}
	if job.CompanyID == uuid.Nil || job.Title == "" || job.Department == "" ||
		job.Location == "" || job.JobType == "" || job.Description == "" {
		return nil, fmt.Errorf("%w: missing required fields", e.ErrInvalidInput)
	}
	if _, err := models.ParseJobType(string(job.JobType)); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	owner, err := s.ownerOfCompany(ctx, actor, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCreateJobForCompany(actor.Role, actor.ID, owner) {
		return nil, fmt.Errorf("%w: can only create jobs for owned companies", e.ErrForbidden)
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	go func() {
		s.producer.Produce(events.JobCreated, job.ID.String(), job)
	}()
	return job, nil
}

// ownerOfCompany resolves the owner of the target company. Recruiters
// look only through their own companies, so a miss is a 403 either way;
// admins look through all companies, so a miss means the company does
// not exist.
func (s *BuilderService) ownerOfCompany(ctx context.Context, actor *models.Actor, companyID uuid.UUID) (string, error) {
	filter := db.CompanyFilter{}
	if actor.Role == models.RoleRecruiter {
		filter.OwnerID = actor.ID
	}
	companies, err := s.repo.FindCompanies(ctx, filter)
	if err != nil {
		return "", err
	}
	for _, c := range companies {
		if c.ID == companyID {
			return c.OwnerID, nil
		}
	}
	if actor.Role == models.RoleAdmin {
		return "", fmt.Errorf("%w: company %s", e.ErrNotFound, companyID)
	}
	// A recruiter scoping the lookup to its own companies and missing means
	// either the company does not exist or it is not theirs; both are 403.
	return "", fmt.Errorf("%w: can only create jobs for owned companies", e.ErrForbidden)
}
