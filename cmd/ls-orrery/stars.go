package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/astro"
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Print the star wall placement of the catalog",
	Args:  cobra.NoArgs,
	RunE:  runStars,
}

func init() {
	starsCmd.Flags().Float64("radius", 100, "star wall radius")
	starsCmd.Flags().Float64("mag", math.Inf(1), "only stars brighter than this magnitude")
	starsCmd.Flags().Bool("json", false, "print JSON")
	rootCmd.AddCommand(starsCmd)
}

// starWall is the placed catalog as printed by the stars command.
type starWall struct {
	Radius         float64                     `json:"radius"`
	Stars          []astro.PlacedStar          `json:"stars"`
	Constellations []astro.PlacedConstellation `json:"constellations,omitempty"`
}

func placeWall(catalog astro.StarCatalog, radius, mag float64) (starWall, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return starWall{}, fmt.Errorf("--radius must be a positive number, got %v", radius)
	}
	wall := starWall{
		Radius: radius,
		Stars:  astro.PlaceStars(catalog.Brighter(mag), radius),
	}
	figs, err := astro.PlaceConstellations(catalog, radius)
	if err != nil {
		return wall, err
	}
	wall.Constellations = figs
	return wall, nil
}

func writeStarTable(w io.Writer, wall starWall) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAR\tMAG\tLON\tLAT\tU\tV")
	for _, s := range wall.Stars {
		p := astro.Unroll(s.Pos, wall.Radius)
		fmt.Fprintf(tw, "%s\t%.2f\t%7.2f°\t%+6.2f°\t%.3f\t%+.3f\n",
			s.Star.Name, s.Star.Mag, normDeg(s.EclLon), s.EclLat*180/math.Pi, p.U, p.V)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d stars, %d constellation figures on radius %g\n",
		len(wall.Stars), len(wall.Constellations), wall.Radius)
	return nil
}

func runStars(cmd *cobra.Command, args []string) error {
	radius, _ := cmd.Flags().GetFloat64("radius")
	mag, _ := cmd.Flags().GetFloat64("mag")
	asJSON, _ := cmd.Flags().GetBool("json")

	rt, err := setup()
	if err != nil {
		return err
	}

	wall, err := placeWall(rt.catalog, radius, mag)
	if err != nil {
		if len(wall.Stars) == 0 {
			return err
		}
		rt.log.Warn("constellation figures unavailable: %v", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(wall)
	}
	return writeStarTable(os.Stdout, wall)
}
