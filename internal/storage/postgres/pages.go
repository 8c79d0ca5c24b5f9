package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/storage"
)

const pageColumns = "id, title, slug, heading_image, body, excerpt, images, is_featured, external_url, layout, published, created_at, updated_at"

func scanPage(scan func(...any) error) (models.Page, error) {
	var p models.Page
	var slug, headingImage, excerpt, externalURL, layout sql.NullString
	var images []byte

	err := scan(&p.ID, &p.Title, &slug, &headingImage, &p.Body, &excerpt, &images,
		&p.IsFeatured, &externalURL, &layout, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Page{}, err
	}

	p.Slug = slug.String
	p.HeadingImage = headingImage.String
	p.Excerpt = excerpt.String
	p.ExternalURL = externalURL.String
	p.Layout = layout.String

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return models.Page{}, fmt.Errorf("failed to parse images: %w", err)
	}

	return p, nil
}

func (s *Store) queryPages(where string, args ...any) ([]models.Page, error) {
	query := "SELECT " + pageColumns + " FROM pages" + where + " ORDER BY created_at DESC"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Backendf(err, "querying pages")
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, errors.Backendf(err, "scanning page")
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *Store) GetPages() ([]models.Page, error) {
	return s.queryPages("")
}

func (s *Store) GetFeaturedPages() ([]models.Page, error) {
	return s.queryPages(" WHERE is_featured = $1 AND published = $2", true, true)
}

func (s *Store) GetNavPages() ([]models.Page, error) {
	return s.queryPages(" WHERE is_featured = $1 AND published = $2", false, true)
}

func (s *Store) GetPageBySlug(slug string) (models.Page, error) {
	row := s.db.QueryRow("SELECT "+pageColumns+" FROM pages WHERE slug = $1", slug)
	p, err := scanPage(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Page{}, errors.NotFoundf("page with slug %q", slug)
		}
		return models.Page{}, errors.Backendf(err, "querying page by slug")
	}
	return p, nil
}

func (s *Store) getPage(id string) (models.Page, error) {
	row := s.db.QueryRow("SELECT "+pageColumns+" FROM pages WHERE id = $1", id)
	p, err := scanPage(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Page{}, errors.NotFoundf("page %s", id)
		}
		return models.Page{}, errors.Backendf(err, "querying page %s", id)
	}
	return p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *Store) writePage(p models.Page, insert bool) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return errors.Backendf(err, "encoding images")
	}
	if p.Images == nil {
		images = []byte("[]")
	}

	if insert {
		_, err = s.db.Exec(`
			INSERT INTO pages (`+pageColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			p.ID, p.Title, nullable(p.Slug), nullable(p.HeadingImage), p.Body, nullable(p.Excerpt),
			images, p.IsFeatured, nullable(p.ExternalURL), nullable(p.Layout), p.Published,
			p.CreatedAt, p.UpdatedAt)
	} else {
		_, err = s.db.Exec(`
			UPDATE pages SET title = $1, slug = $2, heading_image = $3, body = $4, excerpt = $5, images = $6,
				is_featured = $7, external_url = $8, layout = $9, published = $10, updated_at = $11
			WHERE id = $12`,
			p.Title, nullable(p.Slug), nullable(p.HeadingImage), p.Body, nullable(p.Excerpt),
			images, p.IsFeatured, nullable(p.ExternalURL), nullable(p.Layout), p.Published,
			p.UpdatedAt, p.ID)
	}
	if err != nil {
		return errors.Backendf(err, "writing page %s", p.ID)
	}
	return nil
}

func (s *Store) AddPage(n models.NewPage) (models.Page, error) {
	if err := n.Validate(); err != nil {
		return models.Page{}, err
	}

	now := time.Now()
	page := models.Page{
		ID:           uuid.New().String(),
		Title:        n.Title,
		Slug:         n.Slug,
		HeadingImage: n.HeadingImage,
		Body:         n.Body,
		Excerpt:      n.Excerpt,
		Images:       n.Images,
		IsFeatured:   n.IsFeatured,
		ExternalURL:  n.ExternalURL,
		Layout:       n.Layout,
		Published:    n.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.writePage(page, true); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func (s *Store) UpdatePage(id string, upd models.PageUpdate) (models.Page, error) {
	if err := upd.Validate(); err != nil {
		return models.Page{}, err
	}

	page, err := s.getPage(id)
	if err != nil {
		return models.Page{}, err
	}

	storage.ApplyPageUpdate(&page, upd)
	page.UpdatedAt = time.Now()

	if err := s.writePage(page, false); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func (s *Store) DeletePage(id string) error {
	res, err := s.db.Exec("DELETE FROM pages WHERE id = $1", id)
	if err != nil {
		return errors.Backendf(err, "deleting page %s", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Backend(err)
	}
	if affected == 0 {
		return errors.NotFoundf("page %s", id)
	}
	return nil
}
