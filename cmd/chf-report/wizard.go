package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mariocj89/chf-activity-report/internal/reportfile"
	"github.com/mariocj89/chf-activity-report/pkg/report"
)

var errWizardInterrupted = errors.New("interrupted")

// wizard collects a report document through a line-based prompt session.
type wizard struct {
	rl *readline.Instance
}

// runWizard walks the user through every report field and returns the
// collected document. Ctrl-C or EOF aborts the whole session.
func runWizard(stdin io.ReadCloser) (*reportfile.Document, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
	})
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	w := &wizard{rl: rl}

	fmt.Println("Cultural activities report wizard. Press Ctrl-C to abort.")
	fmt.Println()

	doc := &reportfile.Document{}

	if doc.SchoolYear, err = w.askRequired("School year (e.g. 2025-2026)"); err != nil {
		return nil, err
	}
	if doc.Instructor, err = w.askRequired("Instructor full name"); err != nil {
		return nil, err
	}
	if doc.SchoolType, err = w.askChoice("School type", []string{
		string(report.SchoolTypePrimary),
		string(report.SchoolTypeSecondary),
		string(report.SchoolTypeMixed),
	}); err != nil {
		return nil, err
	}
	if doc.HeaderImage, err = w.askPath("Header image path (optional)", false); err != nil {
		return nil, err
	}

	if doc.Distribution, err = w.askDistribution(); err != nil {
		return nil, err
	}

	for {
		a, err := w.askActivity(len(doc.Activities) + 1)
		if err != nil {
			return nil, err
		}
		doc.Activities = append(doc.Activities, *a)

		more, err := w.askYesNo("Add another activity?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return doc, nil
}

func (w *wizard) askDistribution() ([]reportfile.Category, error) {
	fmt.Println("Activity distribution: enter categories, empty label to finish.")
	var categories []reportfile.Category
	for {
		label, err := w.ask(fmt.Sprintf("Category %d label", len(categories)+1))
		if err != nil {
			return nil, err
		}
		if label == "" {
			return categories, nil
		}
		percent, err := w.askFloat("Percent for "+label, 0, 100)
		if err != nil {
			return nil, err
		}
		categories = append(categories, reportfile.Category{Label: label, Percent: percent})
	}
}

func (w *wizard) askActivity(n int) (*reportfile.Activity, error) {
	fmt.Printf("--- Activity %d ---\n", n)

	a := &reportfile.Activity{}
	var err error

	if a.Title, err = w.askRequired("Title"); err != nil {
		return nil, err
	}
	if a.Kind, err = w.askChoice("Kind", []string{
		string(report.KindWorkshop),
		string(report.KindExcursion),
		string(report.KindPerformance),
		string(report.KindOther),
	}); err != nil {
		return nil, err
	}
	if a.Date, err = w.ask("Date"); err != nil {
		return nil, err
	}
	if a.Location, err = w.ask("Location"); err != nil {
		return nil, err
	}
	if a.Participants, err = w.askInt("Number of participants"); err != nil {
		return nil, err
	}

	switch report.ActivityKind(a.Kind) {
	case report.KindWorkshop:
		if a.Facilitator, err = w.ask("Facilitator"); err != nil {
			return nil, err
		}
		if a.DurationHours, err = w.askFloat("Duration in hours", 0, 0); err != nil {
			return nil, err
		}
	case report.KindExcursion:
		if a.Destination, err = w.ask("Destination"); err != nil {
			return nil, err
		}
		if a.Transport, err = w.ask("Transport"); err != nil {
			return nil, err
		}
	case report.KindPerformance:
		if a.Venue, err = w.ask("Venue"); err != nil {
			return nil, err
		}
		if a.AudienceSize, err = w.askInt("Audience size"); err != nil {
			return nil, err
		}
	}

	if a.Description, err = w.ask("Description"); err != nil {
		return nil, err
	}
	if a.Reflection, err = w.ask("Reflection"); err != nil {
		return nil, err
	}

	fmt.Printf("Photos: between %d and %d paths, empty line to finish.\n",
		report.MinPhotosPerActivity, report.MaxPhotosPerActivity)
	for len(a.Photos) < report.MaxPhotosPerActivity {
		path, err := w.askPath(fmt.Sprintf("Photo %d path", len(a.Photos)+1), false)
		if err != nil {
			return nil, err
		}
		if path == "" {
			if len(a.Photos) >= report.MinPhotosPerActivity {
				break
			}
			fmt.Printf("At least %d photo is required.\n", report.MinPhotosPerActivity)
			continue
		}
		a.Photos = append(a.Photos, path)
	}

	return a, nil
}

// ask reads one answer. An empty answer is returned as is.
func (w *wizard) ask(prompt string) (string, error) {
	w.rl.SetPrompt(prompt + ": ")
	line, err := w.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", errWizardInterrupted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (w *wizard) askRequired(prompt string) (string, error) {
	for {
		answer, err := w.ask(prompt)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Println("A value is required.")
	}
}

func (w *wizard) askChoice(prompt string, choices []string) (string, error) {
	for {
		answer, err := w.ask(prompt + " (" + strings.Join(choices, "/") + ")")
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if strings.EqualFold(answer, c) {
				return c, nil
			}
		}
		fmt.Printf("Please answer one of: %s\n", strings.Join(choices, ", "))
	}
}

func (w *wizard) askYesNo(prompt string) (bool, error) {
	answer, err := w.askChoice(prompt, []string{"y", "n"})
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// askInt reads a non-negative integer; empty means zero.
func (w *wizard) askInt(prompt string) (int, error) {
	for {
		answer, err := w.ask(prompt)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 0 {
			return n, nil
		}
		fmt.Println("Please enter a whole number.")
	}
}

// askFloat reads a number, optionally bounded to [min, max] when max > min.
func (w *wizard) askFloat(prompt string, min, max float64) (float64, error) {
	for {
		answer, err := w.ask(prompt)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}
		v, convErr := strconv.ParseFloat(answer, 64)
		if convErr == nil && (max <= min || (v >= min && v <= max)) {
			return v, nil
		}
		if max > min {
			fmt.Printf("Please enter a number between %g and %g.\n", min, max)
		} else {
			fmt.Println("Please enter a number.")
		}
	}
}

// askPath reads a file path and warns when the file does not exist.
// required selects between looping and accepting an empty answer.
func (w *wizard) askPath(prompt string, required bool) (string, error) {
	for {
		path, err := w.ask(prompt)
		if err != nil {
			return "", err
		}
		if path == "" {
			if required {
				fmt.Println("A path is required.")
				continue
			}
			return "", nil
		}
		if _, statErr := os.Stat(path); statErr != nil {
			fmt.Printf("Cannot read %s: %v\n", path, statErr)
			continue
		}
		return path, nil
	}
}
