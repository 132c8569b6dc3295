package meds

import (
	"errors"
	"fmt"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
)

// MedEditCmd changes only the fields given as flags unless --interactive is
// set, in which case the form starts from the current values.
type MedEditCmd struct {
	ID          int64   `arg:"" help:"Medication ID."`
	Name        *string `help:"New name."`
	Dose        *string `short:"d" help:"New dose."`
	Schedule    *string `short:"s" help:"New schedule."`
	Notes       *string `short:"n" help:"New notes."`
	Interactive bool    `short:"i" help:"Edit the medication with a form."`
}

func (c *MedEditCmd) Run(ctx *cli.Context) error {
	med, err := ctx.Meds.Get(cmdContext(), c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("medication %d not found", c.ID)
		}
		return err
	}

	in := models.MedicationInput{
		Name:     med.Name,
		Dose:     med.Dose,
		Schedule: med.Schedule,
		Notes:    med.Notes,
	}
	if c.Name != nil {
		in.Name = *c.Name
	}
	if c.Dose != nil {
		in.Dose = *c.Dose
	}
	if c.Schedule != nil {
		in.Schedule = *c.Schedule
	}
	if c.Notes != nil {
		in.Notes = *c.Notes
	}

	if c.Interactive {
		if err := runForm(&in, "Edit medication"); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	if err := ctx.Meds.Update(cmdContext(), c.ID, in); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("medication %d not found", c.ID)
		}
		return describe(err)
	}

	fmt.Fprintf(ctx.Out, "✓ Updated medication %d\n", c.ID)
	return nil
}
