package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mariocj89/chf-activity-report/internal/layout"
	"github.com/mariocj89/chf-activity-report/internal/render"
	"github.com/mariocj89/chf-activity-report/internal/res"
	"github.com/mariocj89/chf-activity-report/pkg/report"
)

// Result is one finished document: the PDF bytes, the derived filename
// and the number of pages produced.
type Result = render.Result

// Generator is the main API for turning a report record into a PDF
type Generator struct {
	options Options
	loader  *res.Loader
}

// New creates a new report generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new report generator with the specified options
func NewWithOptions(options Options) *Generator {
	return &Generator{
		options: options,
		loader:  res.NewLoader(""),
	}
}

// NewWith creates a generator from the default options modified by opts
func NewWith(opts ...Option) *Generator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// Generate renders the report into a finished document. The report is
// validated first; an invalid record or an undecodable image aborts the
// whole call with no partial output.
func (g *Generator) Generate(rep *report.Report) (*Result, error) {
	if g.loader == nil {
		g.loader = res.NewLoader("")
	}
	for _, path := range g.options.ResourcePaths {
		g.loader.AddSearchPath(path)
	}

	renderer := render.New(render.Options{
		Layout: layout.Config{
			Page: layout.PageSize{
				Width:  g.options.PageWidth,
				Height: g.options.PageHeight,
			},
			Margins: layout.Margins{
				Top:    g.options.MarginTop,
				Right:  g.options.MarginRight,
				Bottom: g.options.MarginBottom,
				Left:   g.options.MarginLeft,
			},
			OrphanLines: g.options.OrphanLines,
			Debug:       g.options.Debug,
		},
		BannerURL:    g.options.BannerURL,
		LogoPath:     g.options.LogoPath,
		Progress:     g.options.Progress,
		PhotoMaxEdge: g.options.PhotoMaxEdge,
		Loader:       g.loader,
		Meta: layout.Meta{
			Title:    g.options.Title,
			Author:   g.options.Author,
			Subject:  g.options.Subject,
			Keywords: g.options.Keywords,
			Creator:  g.options.Creator,
		},
	})
	return renderer.Render(rep)
}

// GenerateToFile renders the report and writes the document into dir
// under its derived filename, returning the full output path.
func (g *Generator) GenerateToFile(rep *report.Report, dir string) (string, error) {
	result, err := g.Generate(rep)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, result.Filename)
	if err := os.WriteFile(path, result.PDF, 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

// WithOptions returns a new generator with the specified options
func (g *Generator) WithOptions(options Options) *Generator {
	return NewWithOptions(options)
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (g *Generator) AddResourcePath(path string) *Generator {
	newOptions := g.options
	newOptions.ResourcePaths = append(newOptions.ResourcePaths, path)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (g *Generator) SetPageSize(width, height float64) *Generator {
	newOptions := g.options
	newOptions.PageWidth = width
	newOptions.PageHeight = height
	return NewWithOptions(newOptions)
}

// SetMargins sets the page margins
func (g *Generator) SetMargins(top, right, bottom, left float64) *Generator {
	newOptions := g.options
	newOptions.MarginTop = top
	newOptions.MarginRight = right
	newOptions.MarginBottom = bottom
	newOptions.MarginLeft = left
	return NewWithOptions(newOptions)
}

// SetDebug sets the debug mode
func (g *Generator) SetDebug(debug bool) *Generator {
	newOptions := g.options
	newOptions.Debug = debug
	return NewWithOptions(newOptions)
}

// SetBannerURL sets the cover banner source
func (g *Generator) SetBannerURL(url string) *Generator {
	newOptions := g.options
	newOptions.BannerURL = url
	return NewWithOptions(newOptions)
}

// SetLogo sets the school logo path
func (g *Generator) SetLogo(path string) *Generator {
	newOptions := g.options
	newOptions.LogoPath = path
	return NewWithOptions(newOptions)
}

// SetProgress sets the progress callback
func (g *Generator) SetProgress(fn ProgressFunc) *Generator {
	newOptions := g.options
	newOptions.Progress = fn
	return NewWithOptions(newOptions)
}

// SetTitle sets the document title
func (g *Generator) SetTitle(title string) *Generator {
	newOptions := g.options
	newOptions.Title = title
	return NewWithOptions(newOptions)
}

// SetAuthor sets the document author
func (g *Generator) SetAuthor(author string) *Generator {
	newOptions := g.options
	newOptions.Author = author
	return NewWithOptions(newOptions)
}

// SetSubject sets the document subject
func (g *Generator) SetSubject(subject string) *Generator {
	newOptions := g.options
	newOptions.Subject = subject
	return NewWithOptions(newOptions)
}

// SetKeywords sets the document keywords
func (g *Generator) SetKeywords(keywords string) *Generator {
	newOptions := g.options
	newOptions.Keywords = keywords
	return NewWithOptions(newOptions)
}
