// Package report defines the input record rendered into an activities
// report document, plus its validation and filename derivation rules.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// SchoolType identifies the kind of school a report covers.
type SchoolType string

const (
	SchoolTypePrimary   SchoolType = "primary"
	SchoolTypeSecondary SchoolType = "secondary"
	SchoolTypeMixed     SchoolType = "mixed"
)

// Valid reports whether the school type is one of the known values.
func (t SchoolType) Valid() bool {
	switch t {
	case SchoolTypePrimary, SchoolTypeSecondary, SchoolTypeMixed:
		return true
	}
	return false
}

// ActivityKind selects which optional detail fields apply to an activity.
type ActivityKind string

const (
	KindWorkshop    ActivityKind = "workshop"
	KindExcursion   ActivityKind = "excursion"
	KindPerformance ActivityKind = "performance"
	KindOther       ActivityKind = "other"
)

// Valid reports whether the activity kind is one of the known values.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindWorkshop, KindExcursion, KindPerformance, KindOther:
		return true
	}
	return false
}

// Photo count bounds enforced per activity.
const (
	MinPhotosPerActivity = 1
	MaxPhotosPerActivity = 6
)

// DistributionCategory is one labeled slice of the activity distribution.
type DistributionCategory struct {
	Label   string
	Percent float64
}

// Activity represents a single reported activity with its photos.
// The detail fields are optional and only meaningful for the matching kind;
// unset fields are simply not rendered.
type Activity struct {
	Title        string
	Kind         ActivityKind
	Date         string
	Location     string
	Participants int

	// Workshop details.
	Facilitator   string
	DurationHours float64

	// Excursion details.
	Destination string
	Transport   string

	// Performance details.
	Venue        string
	AudienceSize int

	Description string
	Reflection  string

	// Photos holds 1-6 encoded image buffers.
	Photos [][]byte
}

// Validate checks the activity for renderable input.
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("title is required")
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown activity kind %q", a.Kind)
	}
	if n := len(a.Photos); n < MinPhotosPerActivity || n > MaxPhotosPerActivity {
		return fmt.Errorf("want between %d and %d photos, have %d",
			MinPhotosPerActivity, MaxPhotosPerActivity, n)
	}
	return nil
}

// Report is the full input record for one generated document.
type Report struct {
	SchoolYear string
	Instructor string
	SchoolType SchoolType

	// HeaderImage optionally holds JPEG bytes for the cover image,
	// normally pre-normalized to 1600x900.
	HeaderImage []byte

	Distribution []DistributionCategory
	Activities   []Activity
}

// Validate checks the report for renderable input. Whether the distribution
// percentages sum to 100 is the caller's concern and is not enforced here.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.SchoolYear) == "" {
		return errors.New("school year is required")
	}
	if strings.TrimSpace(r.Instructor) == "" {
		return errors.New("instructor name is required")
	}
	if !r.SchoolType.Valid() {
		return fmt.Errorf("unknown school type %q", r.SchoolType)
	}
	for _, c := range r.Distribution {
		if c.Percent < 0 || c.Percent > 100 {
			return fmt.Errorf("distribution %q: percent %.1f out of range", c.Label, c.Percent)
		}
	}
	for i := range r.Activities {
		if err := r.Activities[i].Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", i+1, err)
		}
	}
	return nil
}
