// Package reportfile reads and writes the YAML description of a report.
// The file references photos and the header image by path; Load resolves
// those relative to the file and returns a fully populated report record.
package reportfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mariocj89/chf-activity-report/pkg/report"
)

// Document is the on-disk YAML shape of a report. Image fields hold file
// paths, not bytes; everything else maps one to one onto report.Report.
type Document struct {
	SchoolYear  string `yaml:"school_year"`
	Instructor  string `yaml:"instructor"`
	SchoolType  string `yaml:"school_type"`
	HeaderImage string `yaml:"header_image,omitempty"`

	Distribution []Category `yaml:"distribution,omitempty"`
	Activities   []Activity `yaml:"activities"`
}

// Category is one labeled slice of the activity distribution.
type Category struct {
	Label   string  `yaml:"label"`
	Percent float64 `yaml:"percent"`
}

// Activity is the YAML shape of one activity entry.
type Activity struct {
	Title        string `yaml:"title"`
	Kind         string `yaml:"kind"`
	Date         string `yaml:"date,omitempty"`
	Location     string `yaml:"location,omitempty"`
	Participants int    `yaml:"participants,omitempty"`

	Facilitator   string  `yaml:"facilitator,omitempty"`
	DurationHours float64 `yaml:"duration_hours,omitempty"`

	Destination string `yaml:"destination,omitempty"`
	Transport   string `yaml:"transport,omitempty"`

	Venue        string `yaml:"venue,omitempty"`
	AudienceSize int    `yaml:"audience_size,omitempty"`

	Description string `yaml:"description,omitempty"`
	Reflection  string `yaml:"reflection,omitempty"`

	Photos []string `yaml:"photos"`
}

// Parse decodes YAML bytes into a document without touching the
// referenced image files.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report file: %w", err)
	}
	return &doc, nil
}

// Load reads the report file at path and resolves every referenced image
// relative to the file's directory.
func Load(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Resolve(filepath.Dir(path))
}

// Resolve turns the document into a report record, reading every image
// reference. Relative paths are taken against baseDir.
func (d *Document) Resolve(baseDir string) (*report.Report, error) {
	rep := &report.Report{
		SchoolYear: d.SchoolYear,
		Instructor: d.Instructor,
		SchoolType: report.SchoolType(d.SchoolType),
	}

	if d.HeaderImage != "" {
		data, err := readImage(baseDir, d.HeaderImage)
		if err != nil {
			return nil, fmt.Errorf("header image: %w", err)
		}
		rep.HeaderImage = data
	}

	for _, c := range d.Distribution {
		rep.Distribution = append(rep.Distribution, report.DistributionCategory{
			Label:   c.Label,
			Percent: c.Percent,
		})
	}

	for i, a := range d.Activities {
		act := report.Activity{
			Title:         a.Title,
			Kind:          report.ActivityKind(a.Kind),
			Date:          a.Date,
			Location:      a.Location,
			Participants:  a.Participants,
			Facilitator:   a.Facilitator,
			DurationHours: a.DurationHours,
			Destination:   a.Destination,
			Transport:     a.Transport,
			Venue:         a.Venue,
			AudienceSize:  a.AudienceSize,
			Description:   a.Description,
			Reflection:    a.Reflection,
		}
		for _, p := range a.Photos {
			data, err := readImage(baseDir, p)
			if err != nil {
				return nil, fmt.Errorf("activity %d (%s): %w", i+1, a.Title, err)
			}
			act.Photos = append(act.Photos, data)
		}
		rep.Activities = append(rep.Activities, act)
	}

	return rep, nil
}

// Save writes the document as YAML to path, creating the directory if
// needed.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func readImage(baseDir, ref string) ([]byte, error) {
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(baseDir, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}
