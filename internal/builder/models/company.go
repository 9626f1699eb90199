// Package models defines the core domain models for the careers page
// builder: Company, Section, Job and the Actor identity, together with
// their fixed enumerations.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SectionType represents the kind of a content section on a careers page.
type SectionType string

const (
	// SectionAbout is the "About us" block.
	SectionAbout    SectionType = "about"
	SectionLife     SectionType = "life"
	SectionValues   SectionType = "values"
	SectionBenefits SectionType = "benefits"
)

// ParseSectionType validates a raw section type against the fixed enumeration.
func ParseSectionType(s string) (SectionType, error) {
	switch t := SectionType(s); t {
	case SectionAbout, SectionLife, SectionValues, SectionBenefits:
		return t, nil
	default:
		return "", fmt.Errorf("unknown section type %q", s)
	}
}

// DisplayName returns the capitalized human-readable name of the type,
// used as the default title of a freshly added section.
func (t SectionType) DisplayName() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Section is one ordered content block on a company's careers page.
// Sections are embedded in their company document and have no lifecycle
// of their own; the whole list is replaced on every company save.
type Section struct {
	// ID is an opaque identifier; new sections are assigned one before the
	// company document is ever saved, so unsaved sections are addressable.
	ID string `json:"id"`
	// CompanyID is the id of the owning company.
	CompanyID string `json:"companyId"`
	// Type is one of the fixed section kinds.
	Type    SectionType `json:"type"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	// Order is the zero-based position of the section on the page. After any
	// completed mutation the orders of a company's sections form a dense
	// permutation of {0..N-1}.
	Order int `json:"order"`
}

// Company defines the domain model for one tenant's careers microsite.
// The section list is embedded inline; there is no separate section table.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	// Slug is the immutable, globally unique, URL-safe token under which the
	// public page is published.
	Slug string `json:"slug" gorm:"uniqueIndex;size:64"`
	// Name is the company's display name.
	Name string `json:"name" gorm:"size:120"`
	// LogoURL and BannerURL are branding image locations.
	LogoURL   string `json:"logoUrl"`
	BannerURL string `json:"bannerUrl"`
	// PrimaryColor and SecondaryColor are hex colors for the page theme.
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	// VideoURL is an optional embedded culture video.
	VideoURL string `json:"videoUrl,omitempty"`
	// OwnerID is the identity of the recruiter who created the company.
	OwnerID string `json:"ownerId" gorm:"index;size:64"`
	// Sections is the ordered list of content blocks.
	Sections  []Section `json:"sections" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyUpdate represents the fields that can be changed on an existing
// Company. Pointer types allow partial updates. Slug is absent from the
// updatable fields because it is immutable after creation; it identifies
// the document instead. Sections, when non-nil, replaces the stored list
// wholesale.
type CompanyUpdate struct {
	// Slug identifies the company to update.
	Slug           string
	Name           *string
	LogoURL        *string
	BannerURL      *string
	PrimaryColor   *string
	SecondaryColor *string
	VideoURL       *string
	Sections       []Section
}
