package api

import (
	"github.com/mariocj89/chf-activity-report/internal/layout"
	"github.com/mariocj89/chf-activity-report/internal/render"
)

// ProgressFunc receives human-readable stage descriptions during
// generation.
type ProgressFunc = render.ProgressFunc

// Options represents configuration options for report generation
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64

	// Page margins in points
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// OrphanLines is the minimum number of wrapped lines that must fit
	// in the remaining page space before a text block may start there.
	OrphanLines int

	// Debug draws layout outlines
	Debug bool

	// BannerURL optionally names an image, or a page whose preview image
	// is used, for the cover banner
	BannerURL string

	// LogoPath optionally names the school logo file
	LogoPath string

	// PhotoMaxEdge is the pixel budget for the longest edge of embedded
	// activity photos. Zero means the renderer default.
	PhotoMaxEdge int

	// ResourcePaths are extra directories searched for local assets
	ResourcePaths []string

	// Progress receives stage descriptions as generation advances
	Progress ProgressFunc

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options: US Letter pages with
// 54 point margins on every side.
func DefaultOptions() Options {
	return Options{
		PageWidth:  layout.PageSizeLetter.Width,
		PageHeight: layout.PageSizeLetter.Height,

		MarginTop:    layout.DefaultMargins.Top,
		MarginRight:  layout.DefaultMargins.Right,
		MarginBottom: layout.DefaultMargins.Bottom,
		MarginLeft:   layout.DefaultMargins.Left,

		OrphanLines: layout.DefaultOrphanLines,
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(layout.PageSizeLetter.Width, layout.PageSizeLetter.Height)
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(layout.PageSizeA4.Width, layout.PageSizeA4.Height)
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithOrphanLines sets the minimum number of wrapped lines that must fit
// at the bottom of a page before a text block may start there
func WithOrphanLines(n int) Option {
	return func(o *Options) {
		o.OrphanLines = n
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithBannerURL sets the cover banner source
func WithBannerURL(url string) Option {
	return func(o *Options) {
		o.BannerURL = url
	}
}

// WithLogo sets the school logo path
func WithLogo(path string) Option {
	return func(o *Options) {
		o.LogoPath = path
	}
}

// WithPhotoMaxEdge sets the pixel budget for embedded activity photos
func WithPhotoMaxEdge(pixels int) Option {
	return func(o *Options) {
		o.PhotoMaxEdge = pixels
	}
}

// WithResourcePath adds a path to search for local assets
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithProgress sets the progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCreator sets the document creator entry
func WithCreator(creator string) Option {
	return func(o *Options) {
		o.Creator = creator
	}
}
