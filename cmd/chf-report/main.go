package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chfreport "github.com/mariocj89/chf-activity-report"
	"github.com/mariocj89/chf-activity-report/internal/reportfile"
	"github.com/mariocj89/chf-activity-report/internal/term"
)

func main() {
	var (
		inputFile   string
		outputDir   string
		interactive bool
		bannerURL   string
		logoPath    string
		verbose     bool
	)

	flag.StringVar(&inputFile, "input", "", "Input report YAML file path")
	flag.StringVar(&outputDir, "output", ".", "Output directory for the generated PDF")
	flag.BoolVar(&interactive, "interactive", false, "Collect the report through an interactive wizard")
	flag.StringVar(&bannerURL, "banner-url", "", "Optional cover banner image or page URL")
	flag.StringVar(&logoPath, "logo", "", "Optional school logo file path")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if inputFile == "" && !interactive {
		fmt.Println("Error: either -input or -interactive is required")
		flag.Usage()
		os.Exit(1)
	}

	reporter := term.NewReporter(os.Stderr)

	var (
		rep *chfreport.Report
		doc *reportfile.Document
		err error
	)
	if interactive {
		doc, err = runWizard(os.Stdin)
		if err != nil {
			reporter.Fail(fmt.Sprintf("wizard aborted: %v", err))
			os.Exit(1)
		}
		rep, err = doc.Resolve(".")
	} else {
		rep, err = reportfile.Load(inputFile)
	}
	if err != nil {
		reporter.Fail(fmt.Sprintf("failed to load report: %v", err))
		os.Exit(1)
	}

	gen := chfreport.NewWith(
		chfreport.WithBannerURL(bannerURL),
		chfreport.WithLogo(logoPath),
		chfreport.WithDebug(verbose),
		chfreport.WithProgress(reporter.Stage),
	)

	result, err := gen.Generate(rep)
	if err != nil {
		reporter.Fail(fmt.Sprintf("failed to generate report: %v", err))
		os.Exit(1)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		reporter.Fail(fmt.Sprintf("failed to create output directory: %v", err))
		os.Exit(1)
	}
	outPath := filepath.Join(outputDir, result.Filename)
	if err := os.WriteFile(outPath, result.PDF, 0644); err != nil {
		reporter.Fail(fmt.Sprintf("failed to write %s: %v", outPath, err))
		os.Exit(1)
	}

	// The wizard's answers are kept next to the PDF so the report can be
	// regenerated or edited later.
	if doc != nil {
		yamlPath := strings.TrimSuffix(outPath, ".pdf") + ".yaml"
		if err := doc.Save(yamlPath); err != nil {
			reporter.Fail(fmt.Sprintf("failed to save report file: %v", err))
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("Saved report data to %s\n", yamlPath)
		}
	}

	reporter.Done(fmt.Sprintf("%s (%d pages)", outPath, result.Pages))
}
