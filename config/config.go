// Package config loads experiment descriptions from YAML files and turns
// them into the setups of package experiment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/contour"
	"github.com/s-kondo-09/quantum-physics/evolve"
	"github.com/s-kondo-09/quantum-physics/experiment"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
	"github.com/s-kondo-09/quantum-physics/ode/rk"
	"github.com/s-kondo-09/quantum-physics/quadrature"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid experiment")

// Experiment kinds.
const (
	RateSweep     = "rate-sweep"
	SlopeSweep    = "slope-sweep"
	DoublePassage = "double-passage"
)

type Parameters struct {
	Slope     float64 `yaml:"slope"`
	Gap       float64 `yaml:"gap"`
	Twist     float64 `yaml:"twist"`
	SweepRate float64 `yaml:"sweep_rate"`
	Dirac     float64 `yaml:"dirac"`
}

type Grid struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Points  int     `yaml:"points"`
	Exclude float64 `yaml:"exclude"`
}

type Passage struct {
	Eps0      float64 `yaml:"eps0"`
	Dz        float64 `yaml:"dz"`
	Dy        float64 `yaml:"dy"`
	SweepRate float64 `yaml:"sweep_rate"`
}

type Quadrature struct {
	AbsoluteTolerance float64 `yaml:"absolute_tolerance"`
	RelativeTolerance float64 `yaml:"relative_tolerance"`
	MaxIntervals      int     `yaml:"max_intervals"`
	Nodes             int     `yaml:"nodes"`
	// Epsilon regularises φ' in the transformed energy.
	Epsilon float64 `yaml:"epsilon"`
}

type Evolver struct {
	Method            string  `yaml:"method"`
	AbsoluteTolerance float64 `yaml:"absolute_tolerance"`
	RelativeTolerance float64 `yaml:"relative_tolerance"`
	NormTolerance     float64 `yaml:"norm_tolerance"`
	Samples           int     `yaml:"samples"`
}

// Experiment is the content of one experiment file.
type Experiment struct {
	Experiment string     `yaml:"experiment"`
	Model      string     `yaml:"model"`
	Sign       string     `yaml:"sign"`
	Center     string     `yaml:"center"`
	Mode       string     `yaml:"mode"`
	Parameters Parameters `yaml:"parameters"`
	Grid       Grid       `yaml:"grid"`
	Passage    Passage    `yaml:"double_passage"`
	Quadrature Quadrature `yaml:"quadrature"`
	Evolver    Evolver    `yaml:"evolver"`
	Workers    int        `yaml:"workers"`
}

// Default returns the rate sweep of the twisted model over F in [-2, 2].
func Default() Experiment {
	p := hamiltonian.DefaultParameters()
	q := quadrature.DefaultConfig()
	return Experiment{
		Experiment: RateSweep,
		Model:      hamiltonian.KindTwisted.String(),
		Sign:       contour.CurvatureMinus.String(),
		Center:     experiment.CenterQuarterPeriod.String(),
		Mode:       adiabatic.ModeTransformed.String(),
		Parameters: Parameters{
			Slope:     p.Slope,
			Gap:       p.Gap,
			Twist:     1,
			SweepRate: p.SweepRate,
			Dirac:     p.Dirac,
		},
		Grid: Grid{From: -2, To: 2, Points: 100, Exclude: 0.03},
		Passage: Passage{
			Eps0:      -50,
			Dz:        4,
			Dy:        20,
			SweepRate: -1,
		},
		Quadrature: Quadrature{
			AbsoluteTolerance: q.AbsoluteTolerance,
			RelativeTolerance: q.RelativeTolerance,
			MaxIntervals:      q.MaxIntervals,
			Nodes:             q.Nodes,
		},
		Evolver: Evolver{
			Method:            rk.DoPri5.String(),
			AbsoluteTolerance: 1e-10,
			RelativeTolerance: 1e-10,
			NormTolerance:     1e-6,
			Samples:           500,
		},
		Workers: 4,
	}
}

// Load reads and validates the experiment file at path. Fields missing
// from the file keep their Default values.
func Load(path string) (Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates an experiment from YAML. Unknown fields are
// rejected.
func Parse(data []byte) (Experiment, error) {
	e := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&e); err != nil && !errors.Is(err, io.EOF) {
		return Experiment{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := e.Validate(); err != nil {
		return Experiment{}, err
	}
	return e, nil
}

// Validate checks every field the selected experiment uses.
func (e Experiment) Validate() error {
	invalid := func(field string, err error) error {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}

	switch e.Experiment {
	case RateSweep, SlopeSweep:
		if _, err := e.Sweep(); err != nil {
			return err
		}
	case DoublePassage:
		if _, err := e.DoublePassageSetup(); err != nil {
			return err
		}
	default:
		return invalid("experiment", fmt.Errorf("unknown kind %q", e.Experiment))
	}

	if e.Workers < 0 {
		return invalid("workers", fmt.Errorf("negative count %d", e.Workers))
	}
	return nil
}

// Sweep builds the sweep described by a rate-sweep or slope-sweep file.
func (e Experiment) Sweep() (experiment.Sweep, error) {
	invalid := func(field string, err error) error {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}

	var s experiment.Sweep
	var err error
	if s.Kind, err = hamiltonian.ParseKind(e.Model); err != nil {
		return s, invalid("model", err)
	}
	if s.Sign, err = contour.ParseCurvatureSign(e.Sign); err != nil {
		return s, invalid("sign", err)
	}
	if s.Center, err = experiment.ParseCenterPolicy(e.Center); err != nil {
		return s, invalid("center", err)
	}
	if s.Mode, err = adiabatic.ParseMode(e.Mode); err != nil {
		return s, invalid("mode", err)
	}

	s.Parameters = hamiltonian.Parameters(e.Parameters)
	// the swept value is checked point by point
	check := s.Parameters
	switch e.Experiment {
	case RateSweep:
		check.SweepRate = 1
	case SlopeSweep:
		check.Slope = 1
	default:
		return s, invalid("experiment", fmt.Errorf("%q is not a sweep", e.Experiment))
	}
	if err := check.Validate(); err != nil {
		return s, invalid("parameters", err)
	}

	g := e.Grid
	if g.Points < 2 {
		return s, invalid("grid", fmt.Errorf("need at least two points, got %d", g.Points))
	}
	if !finite(g.From) || !finite(g.To) || !(g.From < g.To) {
		return s, invalid("grid", fmt.Errorf("bad range [%g, %g]", g.From, g.To))
	}
	if !finite(g.Exclude) || g.Exclude < 0 {
		return s, invalid("grid", fmt.Errorf("bad exclusion %g", g.Exclude))
	}
	s.Grid = floats.Span(make([]float64, g.Points), g.From, g.To)
	s.Exclude = g.Exclude

	in, err := e.integrator()
	if err != nil {
		return s, err
	}
	s.Integrator = in
	s.Workers = e.Workers
	return s, nil
}

// DoublePassageSetup builds the setup of a double-passage file.
func (e Experiment) DoublePassageSetup() (experiment.DoublePassageSetup, error) {
	invalid := func(field string, err error) error {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}

	s := experiment.DefaultDoublePassage()
	s.Eps0, s.Dz, s.Dy, s.SweepRate = e.Passage.Eps0, e.Passage.Dz, e.Passage.Dy, e.Passage.SweepRate
	if _, err := hamiltonian.DoublePassageParameters(s.Eps0, s.Dz, s.Dy, s.SweepRate); err != nil {
		return s, invalid("double_passage", err)
	}

	var err error
	if s.Sign, err = contour.ParseCurvatureSign(e.Sign); err != nil {
		return s, invalid("sign", err)
	}
	if s.Mode, err = adiabatic.ParseMode(e.Mode); err != nil {
		return s, invalid("mode", err)
	}
	if s.Integrator, err = e.integrator(); err != nil {
		return s, err
	}

	method, err := rk.ParseMethod(e.Evolver.Method)
	if err != nil {
		return s, invalid("evolver", err)
	}
	ev := e.Evolver
	if ev.Samples < 2 {
		return s, invalid("evolver", fmt.Errorf("need at least two samples, got %d", ev.Samples))
	}
	if !nonNegative(ev.AbsoluteTolerance, ev.RelativeTolerance, ev.NormTolerance) {
		return s, invalid("evolver", errors.New("tolerances must be finite and non-negative"))
	}
	s.Samples = ev.Samples
	s.Evolver = &evolve.Evolver{
		Method:            method,
		AbsoluteTolerance: ev.AbsoluteTolerance,
		RelativeTolerance: ev.RelativeTolerance,
		NormTolerance:     ev.NormTolerance,
		Observable:        evolve.AdiabaticUpper,
	}
	return s, nil
}

func (e Experiment) integrator() (*contour.Integrator, error) {
	q := e.Quadrature
	if !nonNegative(q.AbsoluteTolerance, q.RelativeTolerance, q.Epsilon) || q.MaxIntervals < 0 || q.Nodes < 0 {
		return nil, fmt.Errorf("%w: quadrature: settings must be finite and non-negative", ErrInvalidConfig)
	}
	in := contour.NewIntegrator()
	in.Quadrature = quadrature.Config{
		AbsoluteTolerance: q.AbsoluteTolerance,
		RelativeTolerance: q.RelativeTolerance,
		MaxIntervals:      q.MaxIntervals,
		Nodes:             q.Nodes,
	}
	in.Epsilon = q.Epsilon
	return in, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func nonNegative(xs ...float64) bool {
	for _, x := range xs {
		if !finite(x) || x < 0 {
			return false
		}
	}
	return true
}
