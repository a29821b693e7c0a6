package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the angle table without starting the TUI",
	Long: "Ticks the controller a number of times and prints the resulting angle table.\n" +
		"Output is JSON when --json or --out is given or stdout is not a terminal.",
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().Int("ticks", 1, "ticks to run before printing")
	snapshotCmd.Flags().Float64("dt", orbit.DefaultMaxDt, "seconds per tick")
	snapshotCmd.Flags().Bool("json", false, "print JSON")
	snapshotCmd.Flags().String("out", "", "write JSON to this file (- for stdout)")
	snapshotCmd.Flags().Duration("watch", 0, "keep ticking in real time and print at this interval")
	rootCmd.AddCommand(snapshotCmd)
}

// snapshotExport is the JSON form of one frame.
type snapshotExport struct {
	Source string                 `json:"source"`
	Mode   orbit.Mode             `json:"mode"`
	Frame  ephem.Frame            `json:"frame"`
	Time   time.Time              `json:"time"`
	Bodies map[ephem.Body]float64 `json:"bodies_deg"`
	Phase  float64                `json:"moon_phase_deg"`
	Held   []ephem.Body           `json:"held,omitempty"`
	Angles orbit.AngleTable       `json:"angles"`
}

func newSnapshotExport(source string, snap orbit.Snapshot) snapshotExport {
	degs := make(map[ephem.Body]float64, len(snap.BodyAngles))
	for b, a := range snap.BodyAngles {
		degs[b] = longitudeDeg(a)
	}
	return snapshotExport{
		Source: source,
		Mode:   snap.Mode,
		Frame:  snap.Frame,
		Time:   snap.Time,
		Bodies: degs,
		Phase:  normDeg(snap.MoonPhaseAngle),
		Held:   snap.Held,
		Angles: snap.BodyAngles,
	}
}

// longitudeDeg recovers the longitude an angle stands for, in [0, 360).
func longitudeDeg(angle float64) float64 {
	return normDeg(-angle)
}

func normDeg(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func writeSnapshotJSON(w io.Writer, source string, snap orbit.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newSnapshotExport(source, snap))
}

// writeSnapshotTable prints one frame as an aligned table.
func writeSnapshotTable(w io.Writer, source string, snap orbit.Snapshot) error {
	fmt.Fprintf(w, "Mode: %s  Frame: %s  Source: %s\n", snap.Mode, snap.Frame, source)
	fmt.Fprintf(w, "Time: %s  Moon phase: %.1f°\n\n", snap.Time.Format(time.RFC3339), normDeg(snap.MoonPhaseAngle))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY\t\tANGLE\tLONGITUDE\tSTATUS")
	for _, b := range snap.Visible() {
		a, ok := snap.BodyAngles[b]
		if !ok {
			continue
		}
		status := "ok"
		if snap.IsHeld(b) {
			status = "held"
		}
		fmt.Fprintf(tw, "%s\t%c\t%+.4f\t%7.2f°\t%s\n", b, b.Glyph(), a, longitudeDeg(a), status)
	}
	return tw.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ticks, _ := cmd.Flags().GetInt("ticks")
	dt, _ := cmd.Flags().GetFloat64("dt")
	asJSON, _ := cmd.Flags().GetBool("json")
	out, _ := cmd.Flags().GetString("out")
	watch, _ := cmd.Flags().GetDuration("watch")

	if ticks < 1 {
		return fmt.Errorf("--ticks must be at least 1, got %d", ticks)
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	ctrl, err := rt.controller(nil)
	if err != nil {
		return err
	}
	source := rt.provider.Name()

	var snap orbit.Snapshot
	for i := 0; i < ticks; i++ {
		snap = ctrl.Tick(dt)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	write := func(snap orbit.Snapshot) error {
		switch {
		case out != "" && out != "-":
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			return writeSnapshotJSON(f, source, snap)
		case asJSON || out == "-" || !isTTY:
			return writeSnapshotJSON(os.Stdout, source, snap)
		default:
			return writeSnapshotTable(os.Stdout, source, snap)
		}
	}

	if err := write(snap); err != nil {
		return err
	}
	if watch <= 0 {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	maxStep := rt.cfg.MaxDt
	if maxStep <= 0 {
		maxStep = orbit.DefaultMaxDt
	}

	ticker := time.NewTicker(watch)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			// Tick in steps no longer than the clamp so long intervals still move
			elapsed := now.Sub(last).Seconds()
			last = now
			for elapsed > 0 {
				step := math.Min(elapsed, maxStep)
				snap = ctrl.Tick(step)
				elapsed -= step
			}
			if isTTY && !asJSON && out == "" {
				fmt.Println(strings.Repeat("─", 40))
			}
			if err := write(snap); err != nil {
				rt.log.Error("snapshot: %v", err)
			}
		}
	}
}
