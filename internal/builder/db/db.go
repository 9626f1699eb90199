package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Repository is the storage adapter for companies and jobs. It is the only
// place that touches the database; driver failures are wrapped in
// ErrStorage so no transport detail leaks upward. Neither entity has a
// delete operation.
type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CompanyFilter narrows FindCompanies. A zero value matches everything.
type CompanyFilter struct {
	OwnerID string
}

// JobFilter narrows FindJobs. Empty fields and the "all" sentinel are
// skipped; Search is a case-insensitive substring match on title and
// department, mirroring the query the listing surfaces issue.
type JobFilter struct {
	CompanyID uuid.UUID
	Location  string
	JobType   string
	Search    string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", e.ErrStorage, err)
	}

	if err := db.AutoMigrate(&models.Company{}, &models.Job{}); err != nil {
		return nil, fmt.Errorf("%w: failed to migrate database: %v", e.ErrStorage, err)
	}

	return &Repository{db: db}, nil
}

// NewSQLiteRepository opens a sqlite-backed repository. Used by local
// development and the integration tests; pass ":memory:" for a throwaway
// store.
func NewSQLiteRepository(dsn string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", e.ErrStorage, err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Job{}); err != nil {
		return nil, fmt.Errorf("%w: failed to migrate database: %v", e.ErrStorage, err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) FindCompanies(ctx context.Context, filter CompanyFilter) ([]models.Company, error) {
	query := r.db.WithContext(ctx).Model(&models.Company{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	var companies []models.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrStorage, err)
	}
	return companies, nil
}

func (r *Repository) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).First(&company, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", e.ErrStorage, result.Error)
	}
	return &company, nil
}

// CreateCompany inserts a company, assigning id and timestamps.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.Sections == nil {
		company.Sections = []models.Section{}
	}
	result := r.db.WithContext(ctx).Create(company)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateSlug
		}
		return fmt.Errorf("%w: %v", e.ErrStorage, result.Error)
	}
	return nil
}

// ReplaceCompany merges the non-nil fields of update into the company with
// the given slug, replaces the section list wholesale when one is supplied,
// bumps UpdatedAt, and returns the stored document. The write is a single
// row update; on concurrent saves the last write wins.
func (r *Repository) ReplaceCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.LogoURL != nil {
		fields["logo_url"] = *update.LogoURL
	}
	if update.BannerURL != nil {
		fields["banner_url"] = *update.BannerURL
	}
	if update.PrimaryColor != nil {
		fields["primary_color"] = *update.PrimaryColor
	}
	if update.SecondaryColor != nil {
		fields["secondary_color"] = *update.SecondaryColor
	}
	if update.VideoURL != nil {
		fields["video_url"] = *update.VideoURL
	}

	err := r.WithTransaction(ctx, func(tx *Repository) error {
		var company models.Company
		if err := tx.db.First(&company, "slug = ?", update.Slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.ErrNotFound
			}
			return fmt.Errorf("%w: %v", e.ErrStorage, err)
		}
		result := tx.db.Model(&company).Updates(fields)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", e.ErrStorage, result.Error)
		}
		if update.Sections != nil {
			// The section list must travel through the schema field so the
			// JSON serializer on Company.Sections applies.
			company.Sections = update.Sections
			if err := tx.db.Model(&company).Select("sections").Updates(&company).Error; err != nil {
				return fmt.Errorf("%w: %v", e.ErrStorage, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetCompanyBySlug(ctx, update.Slug)
}

func (r *Repository) FindJobs(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.CompanyID != uuid.Nil {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Location != "" && filter.Location != "all" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.JobType != "" && filter.JobType != "all" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(department) LIKE ?", like, like)
	}
	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrStorage, err)
	}
	return jobs, nil
}

// CreateJob inserts a job, assigning id and creation timestamp. Jobs are
// immutable afterwards.
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = uuid.New()
	job.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("%w: %v", e.ErrStorage, err)
	}
	return nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
