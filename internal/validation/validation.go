package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/models"
)

// Rule identifies which medication rule an input violated
type Rule string

const (
	RuleRequired    Rule = "required"
	RuleNameLength  Rule = "name_length"
	RuleDoseLength  Rule = "dose_length"
	RuleSchedLength Rule = "schedule_length"
)

// Error is returned when medication input fails validation. Message is safe
// to show to the user as is.
type Error struct {
	Rule    Rule
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Normalize trims surrounding whitespace from every field.
func Normalize(in models.MedicationInput) models.MedicationInput {
	return models.MedicationInput{
		Name:     strings.TrimSpace(in.Name),
		Dose:     strings.TrimSpace(in.Dose),
		Schedule: strings.TrimSpace(in.Schedule),
		Notes:    strings.TrimSpace(in.Notes),
	}
}

// ValidateMedication normalizes the input and checks it against the
// medication rules. Rules are applied in order and the first failure wins.
func ValidateMedication(in models.MedicationInput) (models.MedicationInput, error) {
	in = Normalize(in)

	if in.Name == "" || in.Dose == "" || in.Schedule == "" {
		return in, &Error{Rule: RuleRequired, Message: "Please fill in Name, Dose, and Schedule."}
	}
	if utf8.RuneCountInString(in.Name) > constants.MaxNameLen {
		return in, &Error{
			Rule:    RuleNameLength,
			Message: fmt.Sprintf("Medication name is too long (max %d chars).", constants.MaxNameLen),
		}
	}
	if utf8.RuneCountInString(in.Dose) > constants.MaxDoseLen {
		return in, &Error{
			Rule:    RuleDoseLength,
			Message: fmt.Sprintf("Dose is too long (max %d chars).", constants.MaxDoseLen),
		}
	}
	if utf8.RuneCountInString(in.Schedule) > constants.MaxScheduleLen {
		return in, &Error{
			Rule:    RuleSchedLength,
			Message: fmt.Sprintf("Schedule is too long (max %d chars).", constants.MaxScheduleLen),
		}
	}

	return in, nil
}
