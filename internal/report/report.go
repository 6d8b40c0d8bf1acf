// Package report renders the final state of a run in human-readable and
// machine-readable forms. Nothing is written to disk.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/sim"
)

// RunInfo describes how a run was configured.
type RunInfo struct {
	Bodies     int     `json:"bodies"`
	Seed       int64   `json:"seed"`
	Steps      int     `json:"steps"`
	Dt         float64 `json:"dt"`
	G          float64 `json:"g"`
	Integrator string  `json:"integrator"`
	Policy     string  `json:"policy"`
	Epsilon    float64 `json:"epsilon"`
	Backend    string  `json:"backend"`
}

type BodyRecord struct {
	Index    int        `json:"index"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
	Mass     float64    `json:"mass"`
}

type ExportData struct {
	Run             RunInfo            `json:"run"`
	StepsTaken      int                `json:"steps_taken"`
	ElapsedSeconds  float64            `json:"elapsed_seconds"`
	InitialMomentum [2]float64         `json:"initial_momentum"`
	FinalMomentum   [2]float64         `json:"final_momentum"`
	EnergyDrift     float64            `json:"energy_drift"`
	Bodies          []BodyRecord       `json:"bodies"`
	Metrics         map[string]float64 `json:"metrics"`
}

func Records(sys dynamo.System) []BodyRecord {
	records := make([]BodyRecord, len(sys))
	for i, b := range sys {
		records[i] = BodyRecord{
			Index:    i,
			Position: b.Position,
			Velocity: b.Velocity,
			Mass:     b.Mass,
		}
	}
	return records
}

// Write renders result in format: "table", "csv", "json" or "svg".
func Write(w io.Writer, format string, info RunInfo, result *sim.Result) error {
	switch format {
	case "", "table":
		return WriteTable(w, result.Bodies)
	case "csv":
		return WriteCSV(w, result.Bodies)
	case "json":
		return WriteJSON(w, info, result)
	case "svg":
		return WriteSVG(w, result.Bodies)
	default:
		return fmt.Errorf("%w: unknown output format %q", dynamo.ErrInvalidArgument, format)
	}
}

// WriteTable prints one aligned line per body.
func WriteTable(w io.Writer, sys dynamo.System) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY\tX\tY\tVX\tVY\tMASS")

	for i, b := range sys {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6e\t%.6e\t%.4f\n",
			i,
			b.Position[0],
			b.Position[1],
			b.Velocity[0],
			b.Velocity[1],
			b.Mass,
		)
	}

	return tw.Flush()
}

func WriteCSV(w io.Writer, sys dynamo.System) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"body", "x", "y", "vx", "vy", "mass"}); err != nil {
		return err
	}

	for i, b := range sys {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(b.Position[0], 'g', -1, 64),
			strconv.FormatFloat(b.Position[1], 'g', -1, 64),
			strconv.FormatFloat(b.Velocity[0], 'g', -1, 64),
			strconv.FormatFloat(b.Velocity[1], 'g', -1, 64),
			strconv.FormatFloat(b.Mass, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	data := ExportData{
		Run:             info,
		StepsTaken:      result.StepsTaken,
		ElapsedSeconds:  result.Elapsed.Seconds(),
		InitialMomentum: result.InitialMomentum,
		FinalMomentum:   result.FinalMomentum,
		EnergyDrift:     result.EnergyDrift,
		Bodies:          Records(result.Bodies),
		Metrics:         result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteSummary prints run totals and metrics as aligned key/value lines.
func WriteSummary(w io.Writer, result *sim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "steps:\t%d\n", result.StepsTaken)
	fmt.Fprintf(tw, "elapsed:\t%v\n", result.Elapsed)
	fmt.Fprintf(tw, "momentum:\t(%.3e, %.3e) -> (%.3e, %.3e)\n",
		result.InitialMomentum[0], result.InitialMomentum[1],
		result.FinalMomentum[0], result.FinalMomentum[1])
	fmt.Fprintf(tw, "energy:\t%.6e -> %.6e\n", result.InitialEnergy, result.FinalEnergy)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s:\t%.6e\n", name, result.Metrics[name])
	}

	return tw.Flush()
}
