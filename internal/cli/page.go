package cli

import (
	"fmt"

	"github.com/julianstephens/garden/internal/models"
)

type PageCmd struct {
	Add    PageAddCmd    `cmd:"" help:"Add a new page."`
	List   PageListCmd   `cmd:"" help:"List pages."`
	Show   PageShowCmd   `cmd:"" help:"Show a page by slug."`
	Update PageUpdateCmd `cmd:"" help:"Update a page's fields."`
	Delete PageDeleteCmd `cmd:"" help:"Delete a page."`
}

type PageAddCmd struct {
	Title       string   `arg:"" help:"Page title."`
	Slug        string   `help:"URL slug." default:""`
	Body        string   `help:"Page body (markdown)." default:""`
	Excerpt     string   `help:"Short excerpt for listings." default:""`
	Image       []string `help:"Gallery image paths (repeatable)."`
	Heading     string   `help:"Heading image path." default:""`
	Featured    bool     `help:"Surface on the landing page."`
	ExternalURL string   `help:"Make the page a pure outbound link." default:""`
	Layout      string   `help:"Layout variant." default:""`
	Published   bool     `help:"Publish immediately."`
}

func (c *PageAddCmd) Run(ctx *Context) error {
	page, err := ctx.Store.AddPage(models.NewPage{
		Title:        c.Title,
		Slug:         c.Slug,
		HeadingImage: c.Heading,
		Body:         c.Body,
		Excerpt:      c.Excerpt,
		Images:       c.Image,
		IsFeatured:   c.Featured,
		ExternalURL:  c.ExternalURL,
		Layout:       c.Layout,
		Published:    c.Published,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added page: %s (%s)\n", page.Title, page.Slug)
	return nil
}

type PageListCmd struct {
	Featured bool `help:"Only featured pages." xor:"filter"`
	Nav      bool `help:"Only published nav pages." xor:"filter"`
}

func (c *PageListCmd) Run(ctx *Context) error {
	var (
		pages []models.Page
		err   error
	)
	switch {
	case c.Featured:
		pages, err = ctx.Store.GetFeaturedPages()
	case c.Nav:
		pages, err = ctx.Store.GetNavPages()
	default:
		pages, err = ctx.Store.GetPages()
	}
	if err != nil {
		return err
	}

	if len(pages) == 0 {
		fmt.Println("No pages found.")
		return nil
	}

	for _, p := range pages {
		flags := ""
		if p.IsFeatured {
			flags += " [featured]"
		}
		if !p.Published {
			flags += " [draft]"
		}
		if p.ExternalURL != "" {
			flags += " -> " + p.ExternalURL
		}
		fmt.Printf("%s (%s)%s\n", p.Title, p.Slug, flags)
	}
	return nil
}

type PageShowCmd struct {
	Slug string `arg:"" help:"Page slug."`
}

func (c *PageShowCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetPageBySlug(c.Slug)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(p.Title))
	if p.Excerpt != "" {
		fmt.Println(subStyle.Render(p.Excerpt))
	}
	if p.ExternalURL != "" {
		fmt.Printf("Links to: %s\n", p.ExternalURL)
		return nil
	}
	if p.Body != "" {
		fmt.Println()
		fmt.Println(p.Body)
	}
	if len(p.Images) > 0 {
		fmt.Printf("\nImages: %d\n", len(p.Images))
	}
	return nil
}

type PageUpdateCmd struct {
	Slug        string  `arg:"" help:"Slug of the page to update."`
	Title       *string `help:"New title."`
	NewSlug     *string `help:"New slug."`
	Body        *string `help:"New body."`
	Excerpt     *string `help:"New excerpt."`
	Heading     *string `help:"New heading image path."`
	Featured    *bool   `help:"Surface on the landing page."`
	ExternalURL *string `help:"Outbound link target."`
	Layout      *string `help:"Layout variant."`
	Published   *bool   `help:"Published state."`
}

func (c *PageUpdateCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetPageBySlug(c.Slug)
	if err != nil {
		return err
	}

	upd := models.PageUpdate{
		Title:        c.Title,
		Slug:         c.NewSlug,
		HeadingImage: c.Heading,
		Body:         c.Body,
		Excerpt:      c.Excerpt,
		IsFeatured:   c.Featured,
		ExternalURL:  c.ExternalURL,
		Layout:       c.Layout,
		Published:    c.Published,
	}
	if upd.Empty() {
		return fmt.Errorf("nothing to update")
	}

	updated, err := ctx.Store.UpdatePage(p.ID, upd)
	if err != nil {
		return err
	}

	fmt.Printf("Updated page: %s (%s)\n", updated.Title, updated.Slug)
	return nil
}

type PageDeleteCmd struct {
	Slug string `arg:"" help:"Slug of the page to delete."`
}

func (c *PageDeleteCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetPageBySlug(c.Slug)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeletePage(p.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted page: %s\n", p.Title)
	return nil
}
