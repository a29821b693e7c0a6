package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
)

var ayanamsaCmd = &cobra.Command{
	Use:     "ayanamsa",
	Aliases: []string{"zodiac"},
	Short:   "Print the ayanamsa and the tropical and sidereal sign boundaries",
	Args:    cobra.NoArgs,
	RunE:    runAyanamsa,
}

func init() {
	ayanamsaCmd.Flags().String("date", "", "date (YYYY-MM-DD, default today)")
	ayanamsaCmd.Flags().String("time", orbit.DefaultBirthClock, "time of day (HH:MM)")
	rootCmd.AddCommand(ayanamsaCmd)
}

func writeZodiacTable(w io.Writer, t time.Time) error {
	tropical := astro.SignBoundaries(false, t)
	sidereal := astro.SignBoundaries(true, t)

	fmt.Fprintf(w, "Date: %s  Ayanamsa: %.4f°\n\n", t.Format("2006-01-02 15:04 MST"), astro.Ayanamsa(t))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGN\t\tTROPICAL\tSIDEREAL")
	for s := range tropical {
		sign := astro.Sign(s)
		fmt.Fprintf(tw, "%s\t%c\t%6.2f°\t%6.2f°\n", sign, sign.Glyph(), tropical[s], sidereal[s])
	}
	return tw.Flush()
}

func runAyanamsa(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")

	rt, err := setup()
	if err != nil {
		return err
	}
	loc, err := rt.cfg.Location()
	if err != nil {
		return err
	}

	if date == "" {
		date = time.Now().In(loc).Format("2006-01-02")
	}
	t, err := orbit.ParseBirthDate(date, clock, loc)
	if err != nil {
		return err
	}
	return writeZodiacTable(cmd.OutOrStdout(), t)
}
