// Package chfreport generates paginated PDF activity reports from
// structured report records. It re-exports the public surface of
// pkg/api and pkg/report so most callers only need this one import.
package chfreport

import (
	"github.com/mariocj89/chf-activity-report/pkg/api"
	"github.com/mariocj89/chf-activity-report/pkg/report"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Result = api.Result
type ProgressFunc = api.ProgressFunc

type Report = report.Report
type Activity = report.Activity
type DistributionCategory = report.DistributionCategory
type SchoolType = report.SchoolType
type ActivityKind = report.ActivityKind

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func NewWith(opts ...Option) *Generator         { return api.NewWith(opts...) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize       = api.WithPageSize
	WithPageSizeLetter = api.WithPageSizeLetter
	WithPageSizeA4     = api.WithPageSizeA4
	WithMargins        = api.WithMargins
	WithOrphanLines    = api.WithOrphanLines
	WithDebug          = api.WithDebug
	WithBannerURL      = api.WithBannerURL
	WithLogo           = api.WithLogo
	WithPhotoMaxEdge   = api.WithPhotoMaxEdge
	WithResourcePath   = api.WithResourcePath
	WithProgress       = api.WithProgress
	WithTitle          = api.WithTitle
	WithAuthor         = api.WithAuthor
	WithSubject        = api.WithSubject
	WithKeywords       = api.WithKeywords
	WithCreator        = api.WithCreator
)

const (
	SchoolTypePrimary   = report.SchoolTypePrimary
	SchoolTypeSecondary = report.SchoolTypeSecondary
	SchoolTypeMixed     = report.SchoolTypeMixed

	KindWorkshop    = report.KindWorkshop
	KindExcursion   = report.KindExcursion
	KindPerformance = report.KindPerformance
	KindOther       = report.KindOther
)
