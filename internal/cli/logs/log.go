package logs

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/models"
)

type LogCmd struct {
	Today bool `short:"t" help:"Only show doses taken today."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	filter := models.LogFilterAll
	if c.Today {
		filter = models.LogFilterToday
	}

	entries, err := ctx.Log.ListRecent(context.Background(), filter)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		if c.Today {
			fmt.Fprintln(ctx.Out, "Nothing logged today")
		} else {
			fmt.Fprintln(ctx.Out, "Nothing logged yet")
		}
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAKEN AT\tNAME\tDOSE\tSCHEDULE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.TakenAt.Format(constants.DisplayFormat), e.Name, e.Dose, e.Schedule)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(entries) == constants.RecentLogLimit {
		fmt.Fprintf(ctx.Out, "\nShowing the most recent %d entries.\n", constants.RecentLogLimit)
	}
	return nil
}
