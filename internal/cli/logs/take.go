package logs

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/storage"
)

type TakeCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Medication IDs to mark as taken."`
}

func (c *TakeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	var failed int
	for _, id := range c.IDs {
		if _, err := ctx.Log.RecordTaken(bg, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(ctx.Out, "✗ Medication %d not found\n", id)
				failed++
				continue
			}
			return err
		}

		med, err := ctx.Meds.Get(bg, id)
		if err != nil {
			fmt.Fprintf(ctx.Out, "✓ Marked medication %d as taken\n", id)
			continue
		}
		fmt.Fprintf(ctx.Out, "✓ Marked %s (%s) as taken\n", med.Name, med.Dose)
	}

	if failed > 0 {
		return fmt.Errorf("%d medication(s) not found", failed)
	}
	return nil
}
