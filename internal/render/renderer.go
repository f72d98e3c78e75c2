// Package render sequences the layout engine into the finished activity
// report: cover page first, then one page block per activity, in record
// order.
package render

import (
	"fmt"
	"log"

	"github.com/mariocj89/chf-activity-report/internal/imaging"
	"github.com/mariocj89/chf-activity-report/internal/layout"
	"github.com/mariocj89/chf-activity-report/internal/res"
	"github.com/mariocj89/chf-activity-report/pkg/report"
)

// defaultPhotoMaxEdge is the pixel budget for embedded activity photos.
const defaultPhotoMaxEdge = 1200

// bannerMaxHeight caps the cover banner strip in points.
const bannerMaxHeight = 120.0

// logoBox is the square the corner logo is fitted into, in points.
const logoBox = 56.0

// ProgressFunc receives human-readable stage descriptions as rendering
// advances.
type ProgressFunc func(stage string)

// Options configures one renderer.
type Options struct {
	Layout layout.Config

	// BannerURL optionally names an image, or a page whose preview
	// image is used, for the cover banner. Fetch failures are logged
	// and the banner skipped.
	BannerURL string

	// LogoPath optionally names the school logo file.
	LogoPath string

	Progress ProgressFunc

	// PhotoMaxEdge overrides the pixel budget for embedded photos when
	// positive.
	PhotoMaxEdge int

	// Loader resolves photos, logo and banner. A fresh one is created
	// when nil.
	Loader *res.Loader

	Meta layout.Meta
}

// Result is one finished document.
type Result struct {
	PDF      []byte
	Filename string
	Pages    int
}

// Renderer turns a report record into the finished PDF document.
type Renderer struct {
	opts Options
}

// New returns a renderer for the given options.
func New(opts Options) *Renderer {
	if opts.Loader == nil {
		opts.Loader = res.NewLoader("")
	}
	if opts.PhotoMaxEdge <= 0 {
		opts.PhotoMaxEdge = defaultPhotoMaxEdge
	}
	return &Renderer{opts: opts}
}

// Render validates the report, renders every section and returns the
// document bytes together with the derived filename. The input record is
// not modified.
func (r *Renderer) Render(rep *report.Report) (*Result, error) {
	if err := rep.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	r.progress("Preparing document")
	e := layout.NewEngine(r.opts.Layout)
	if err := e.StartDocument(); err != nil {
		return nil, err
	}
	if err := e.SetMeta(r.meta(rep)); err != nil {
		return nil, err
	}

	r.progress("Loading assets")
	banner, logo := r.loadAssets()

	r.progress("Rendering cover page")
	if err := r.renderCover(e, rep, banner, logo); err != nil {
		return nil, fmt.Errorf("cover page: %w", err)
	}

	total := len(rep.Activities)
	for i := range rep.Activities {
		a := &rep.Activities[i]
		r.progress(fmt.Sprintf("Rendering activity %d of %d: %s", i+1, total, a.Title))

		photos, err := imaging.ProcessPhotos(a.Photos, r.opts.PhotoMaxEdge, func(done, processing int) {
			r.progress(fmt.Sprintf("Processing photo %d of %d for %q", done, processing, a.Title))
		})
		if err != nil {
			return nil, fmt.Errorf("activity %d (%s): %w", i+1, a.Title, err)
		}

		prepared := *a
		prepared.Photos = photos
		if err := e.DrawActivity(&prepared); err != nil {
			return nil, fmt.Errorf("activity %d (%s): %w", i+1, a.Title, err)
		}
	}

	r.progress("Encoding document")
	pdf, err := e.Finalize()
	if err != nil {
		return nil, err
	}

	return &Result{
		PDF:      pdf,
		Filename: rep.Filename(),
		Pages:    e.PageCount(),
	}, nil
}

func (r *Renderer) progress(stage string) {
	if r.opts.Progress != nil {
		r.opts.Progress(stage)
	}
}

func (r *Renderer) meta(rep *report.Report) layout.Meta {
	m := r.opts.Meta
	if m.Title == "" {
		m.Title = "Cultural Activities Report " + rep.SchoolYear
	}
	if m.Author == "" {
		m.Author = rep.Instructor
	}
	if m.Subject == "" {
		m.Subject = "School cultural activities"
	}
	if m.Creator == "" {
		m.Creator = "chf-report"
	}
	return m
}

// loadAssets fetches the optional banner and logo. Only the banner fetch
// can fail, and a failure just means no banner.
func (r *Renderer) loadAssets() (banner, logo []byte) {
	if r.opts.BannerURL != "" {
		data, err := r.opts.Loader.FetchBanner(r.opts.BannerURL)
		if err != nil {
			log.Printf("skipping banner %s: %v", r.opts.BannerURL, err)
		} else {
			banner = data
		}
	}
	if r.opts.LogoPath != "" {
		logo = r.opts.Loader.LoadLogo(r.opts.LogoPath)
	}
	return banner, logo
}

// renderCover draws the title block, the school facts, the optional
// header and banner images and the activity distribution table.
func (r *Renderer) renderCover(e *layout.Engine, rep *report.Report, banner, logo []byte) error {
	if logo != nil {
		x := e.Page().Width - e.LeftX() - logoBox
		if err := e.DrawOverlayImage(logo, x, 26, logoBox, logoBox); err != nil {
			return fmt.Errorf("logo: %w", err)
		}
	}

	if err := e.DrawHeading("Cultural Activities Report", 1); err != nil {
		return err
	}

	fields := []struct{ label, value string }{
		{"School year", rep.SchoolYear},
		{"Instructor", rep.Instructor},
		{"School type", schoolTypeLabel(rep.SchoolType)},
		{"Documented activities", fmt.Sprintf("%d", len(rep.Activities))},
	}
	for _, f := range fields {
		if err := e.DrawField(f.label, f.value); err != nil {
			return err
		}
	}
	e.AddSpace(8)

	if len(rep.HeaderImage) > 0 {
		normalized, err := imaging.NormalizeHeader(rep.HeaderImage)
		if err != nil {
			return fmt.Errorf("header image: %w", err)
		}
		if err := e.DrawImage(normalized, e.ContentWidth(), 0); err != nil {
			return fmt.Errorf("header image: %w", err)
		}
	}

	if banner != nil {
		if err := e.DrawImage(banner, e.ContentWidth(), bannerMaxHeight); err != nil {
			return fmt.Errorf("banner: %w", err)
		}
	}

	if err := e.DrawRule(); err != nil {
		return err
	}

	if len(rep.Distribution) > 0 {
		if err := e.DrawHeading("Activity Distribution", 2); err != nil {
			return err
		}
		if err := e.DrawDistributionTable(distributionEntries(rep.Distribution)); err != nil {
			return err
		}
	}
	return nil
}

func distributionEntries(categories []report.DistributionCategory) []layout.PercentEntry {
	entries := make([]layout.PercentEntry, len(categories))
	for i, c := range categories {
		entries[i] = layout.PercentEntry{Label: c.Label, Percent: c.Percent}
	}
	return entries
}

func schoolTypeLabel(t report.SchoolType) string {
	switch t {
	case report.SchoolTypePrimary:
		return "Primary school"
	case report.SchoolTypeSecondary:
		return "Secondary school"
	case report.SchoolTypeMixed:
		return "Mixed levels"
	}
	return string(t)
}
