package models

import (
	"strings"
	"time"

	"github.com/julianstephens/garden/internal/errors"
)

// Page is a freeform CMS page. Featured pages surface on the landing page;
// published non-featured pages appear in the site nav. ExternalURL, when
// set, makes the page a pure outbound link.
type Page struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug,omitempty"`
	HeadingImage string    `json:"heading_image,omitempty"`
	Body         string    `json:"body"`
	Excerpt      string    `json:"excerpt,omitempty"`
	Images       []string  `json:"images,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	ExternalURL  string    `json:"external_url,omitempty"`
	Layout       string    `json:"layout,omitempty"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPage holds the fields accepted when creating a page.
type NewPage struct {
	Title        string
	Slug         string
	HeadingImage string
	Body         string
	Excerpt      string
	Images       []string
	IsFeatured   bool
	ExternalURL  string
	Layout       string
	Published    bool
}

// Validate rejects invalid creation input before any backend call.
func (n *NewPage) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return errors.Validationf("page title cannot be empty")
	}
	n.Slug = strings.TrimSpace(n.Slug)
	return nil
}

// PageUpdate is a partial update; nil fields are left untouched.
type PageUpdate struct {
	Title        *string
	Slug         *string
	HeadingImage *string
	Body         *string
	Excerpt      *string
	Images       *[]string
	IsFeatured   *bool
	ExternalURL  *string
	Layout       *string
	Published    *bool
}

// Validate rejects invalid patch input.
func (u PageUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return errors.Validationf("page title cannot be empty")
	}
	return nil
}

// Empty reports whether the patch carries no changes.
func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Slug == nil && u.HeadingImage == nil &&
		u.Body == nil && u.Excerpt == nil && u.Images == nil &&
		u.IsFeatured == nil && u.ExternalURL == nil && u.Layout == nil &&
		u.Published == nil
}
