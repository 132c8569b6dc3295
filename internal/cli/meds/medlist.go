package meds

import (
	"fmt"
	"text/tabwriter"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/utils"
)

type MedListCmd struct {
	ShowNotes bool `help:"Show notes." name:"notes"`
}

func (c *MedListCmd) Run(ctx *cli.Context) error {
	meds, err := ctx.Meds.ListAll(cmdContext())
	if err != nil {
		return err
	}
	if len(meds) == 0 {
		fmt.Fprintln(ctx.Out, "No medications found")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDOSE\tSCHEDULE\tLAST TAKEN")
	for _, m := range meds {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Dose, m.Schedule, utils.FormatDisplay(m.LastTaken, "never"))
		if c.ShowNotes && m.Notes != "" {
			fmt.Fprintf(w, "\t  %s\t\t\t\n", m.Notes)
		}
	}
	return w.Flush()
}
