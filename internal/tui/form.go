package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/models"
)

// NewMedicationForm builds a form that edits in in place. Field checks mirror
// the medication rules so most mistakes are caught before saving.
func NewMedicationForm(in *models.MedicationInput, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Aspirin").
				Value(&in.Name).
				Validate(fieldValidator("Name", constants.MaxNameLen, true)),
			huh.NewInput().
				Title("Dose").
				Placeholder("100mg").
				Value(&in.Dose).
				Validate(fieldValidator("Dose", constants.MaxDoseLen, true)),
			huh.NewInput().
				Title("Schedule").
				Placeholder("Morning").
				Value(&in.Schedule).
				Validate(fieldValidator("Schedule", constants.MaxScheduleLen, true)),
			huh.NewText().
				Title("Notes").
				Value(&in.Notes),
		).Title(title),
	)
}

func fieldValidator(label string, max int, required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if required && s == "" {
			return fmt.Errorf("%s is required", strings.ToLower(label))
		}
		if utf8.RuneCountInString(s) > max {
			return fmt.Errorf("%s is too long (max %d chars)", strings.ToLower(label), max)
		}
		return nil
	}
}
