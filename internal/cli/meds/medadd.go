package meds

import (
	"errors"
	"fmt"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/tui"
	"github.com/julianstephens/medimate/internal/validation"
)

// runForm is swapped in tests so no terminal is needed
var runForm = func(in *models.MedicationInput, title string) error {
	return tui.NewMedicationForm(in, title).Run()
}

type MedAddCmd struct {
	Name        string `arg:"" optional:"" help:"Medication name."`
	Dose        string `short:"d" help:"Dose, e.g. 100mg."`
	Schedule    string `short:"s" help:"When to take it, e.g. Morning."`
	Notes       string `short:"n" help:"Free-form notes."`
	Interactive bool   `short:"i" help:"Fill in the medication with a form."`
}

func (c *MedAddCmd) Run(ctx *cli.Context) error {
	in := models.MedicationInput{
		Name:     c.Name,
		Dose:     c.Dose,
		Schedule: c.Schedule,
		Notes:    c.Notes,
	}

	if c.Interactive || c.Name == "" {
		if err := runForm(&in, "Add medication"); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	id, err := ctx.Meds.Create(cmdContext(), in)
	if err != nil {
		return describe(err)
	}

	fmt.Fprintf(ctx.Out, "✓ Added medication %d: %s\n", id, validation.Normalize(in).Name)
	return nil
}

// describe turns a validation failure into a plain error carrying the
// user-facing message
func describe(err error) error {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return errors.New(vErr.Message)
	}
	return err
}
