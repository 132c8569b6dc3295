package meds

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/storage"
)

var confirm = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

type MedDeleteCmd struct {
	ID  int64 `arg:"" help:"Medication ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *MedDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		title := fmt.Sprintf("Delete medication %d and all of its history?", c.ID)
		if med, err := ctx.Meds.Get(cmdContext(), c.ID); err == nil {
			title = fmt.Sprintf("Delete %s (%s) and all of its history?", med.Name, med.Dose)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		ok, err := confirm(title)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Delete cancelled.")
			return nil
		}
	}

	// Deleting a missing id succeeds
	if err := ctx.Meds.Delete(cmdContext(), c.ID); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "✓ Deleted medication %d\n", c.ID)
	return nil
}
