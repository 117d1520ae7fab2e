package experiment

import (
	"fmt"
	"math"

	"github.com/s-kondo-09/quantum-physics/util"
)

// SweepTable lays out sweep points as a report table with one row per
// point. Skipped points show NaN and their reason.
func SweepTable(title, param string, points []Point) util.Table {
	rows := make([]string, len(points))
	data := make([][]float64, len(points))
	notes := make([]string, len(points))
	for i, pt := range points {
		rows[i] = fmt.Sprintf("%s = %.4g", param, pt.Param)
		if pt.Skipped {
			nan := math.NaN()
			data[i] = []float64{nan, nan, nan}
			notes[i] = pt.Reason
			continue
		}
		data[i] = []float64{pt.Probability, pt.Theory, pt.LogProbability}
	}
	return util.Table{
		Title:      title,
		ColHeaders: []string{"probability", "landau-zener", "log probability"},
		RowHeaders: rows,
		Data:       map[string][][]float64{"transition probability": data},
		Notes:      notes,
	}
}

// DoublePassageTables lays out the analytic quantities and the sampled
// trace of a double passage run.
func DoublePassageTables(res DoublePassageResult) []util.Table {
	summary := util.Table{
		Title: "double passage",
		ColHeaders: []string{
			"probability", "landau-zener", "phase", "stokes phase",
			"adiabatic", "heuristic", "numerical",
		},
		RowHeaders: []string{fmt.Sprintf("F = %g", res.Parameters.SweepRate)},
		Data: map[string][][]float64{"predictions": {{
			res.Probability, res.LandauZener, res.Phase, res.Stokes,
			res.Adiabatic, res.Heuristic, res.Numerical,
		}}},
	}

	tr := res.Trace
	rows := make([]string, len(tr.Times))
	data := make([][]float64, len(tr.Times))
	for i, t := range tr.Times {
		rows[i] = fmt.Sprintf("t = %.4f", t)
		data[i] = []float64{tr.Probabilities[i]}
	}
	trace := util.Table{
		Title:      "double passage trace",
		ColHeaders: []string{"occupation"},
		RowHeaders: rows,
		Data:       map[string][][]float64{"evolution": data},
	}
	return []util.Table{summary, trace}
}
