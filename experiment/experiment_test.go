package experiment

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/contour"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

func twistedRateSweep(buf *bytes.Buffer) Sweep {
	return Sweep{
		Kind:       hamiltonian.KindTwisted,
		Parameters: hamiltonian.Parameters{Slope: 1, Gap: 0.1, Twist: 1, SweepRate: 1, Dirac: 1},
		Sign:       contour.CurvatureMinus,
		Center:     CenterQuarterPeriod,
		Mode:       adiabatic.ModeTransformed,
		Grid:       floats.Span(make([]float64, 100), -2, 2),
		Workers:    4,
		Logger:     slog.New(slog.NewTextHandler(buf, nil)),
	}
}

func TestRateSweep(t *testing.T) {
	var buf bytes.Buffer
	s := twistedRateSweep(&buf)
	points, err := RateSweep(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, points, len(s.Grid))

	near := 0
	for i, pt := range points {
		assert.Equal(t, s.Grid[i], pt.Param)
		assert.False(t, pt.Skipped)
		assert.LessOrEqual(t, pt.LogProbability, 0.0)
		assert.InDelta(t, math.Exp(pt.LogProbability), pt.Probability, 1e-15)
		if math.Abs(pt.Param-0.4) < math.Abs(points[near].Param-0.4) {
			near = i
		}
	}
	assert.GreaterOrEqual(t, points[near].Probability, 0.95)
	assert.Contains(t, buf.String(), "sweep finished")

	s.Workers = 1
	serial, err := RateSweep(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, serial, points)
}

func TestRateSweepSkipsExcludedRates(t *testing.T) {
	var buf bytes.Buffer
	s := twistedRateSweep(&buf)
	s.Exclude = 0.03

	points, err := RateSweep(context.Background(), s)
	require.NoError(t, err)

	skipped := 0
	for _, pt := range points {
		if pt.Skipped {
			skipped++
			assert.Less(t, math.Abs(pt.Param), 0.03)
			assert.NotEmpty(t, pt.Reason)
		}
	}
	assert.Equal(t, 2, skipped)
	assert.Contains(t, buf.String(), "skipping point")
}

func TestSlopeSweepMatchesLandauZener(t *testing.T) {
	var buf bytes.Buffer
	s := Sweep{
		Kind:       hamiltonian.KindLinear,
		Parameters: hamiltonian.DefaultParameters(),
		Sign:       contour.CurvaturePlus,
		Center:     CenterCrossing,
		Mode:       adiabatic.ModePlain,
		Grid:       []float64{-2, -1, 0, 0.5, 1, 2},
		Workers:    3,
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}

	points, err := SlopeSweep(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, points, 6)

	assert.True(t, points[2].Skipped)
	for _, pt := range points {
		if pt.Skipped {
			continue
		}
		assert.InEpsilon(t, math.Log(pt.Theory), pt.LogProbability, 1e-3, "v=%g", pt.Param)
	}
}

func TestRateSweepSkipsSingularPoints(t *testing.T) {
	// For F = 8 the path to the transition point passes the zero of x²+y²
	// at t = -0.25i, where φ' has a pole.
	var buf bytes.Buffer
	s := Sweep{
		Kind:       hamiltonian.KindLinear,
		Parameters: hamiltonian.Parameters{Slope: 1, Gap: 0.1, Twist: 1, SweepRate: 1, Dirac: 1},
		Sign:       contour.CurvaturePlus,
		Center:     CenterCrossing,
		Mode:       adiabatic.ModeTransformed,
		Grid:       []float64{1, 2, 8},
		Workers:    3,
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}

	points, err := RateSweep(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, points, 3)

	for _, pt := range points[:2] {
		assert.False(t, pt.Skipped, "F=%g: %s", pt.Param, pt.Reason)
		assert.LessOrEqual(t, pt.LogProbability, 0.0)
	}
	assert.True(t, points[2].Skipped)
	assert.Equal(t, 8.0, points[2].Param)
	assert.Contains(t, points[2].Reason, "contour: log probability")
	assert.Contains(t, buf.String(), "skipping point")
}

func TestSlopeSweepWithSlopeMagnitude(t *testing.T) {
	// reference values of the Kondo slope scan with gap m - k·|v|·F/4
	var buf bytes.Buffer
	s := Sweep{
		Kind:       hamiltonian.KindKondo,
		Parameters: hamiltonian.Parameters{Slope: 1, Gap: 0.1, Twist: 1, SweepRate: -1, Dirac: 1},
		Sign:       contour.CurvatureMinusAbsSlope,
		Center:     CenterQuarterPeriod,
		Mode:       adiabatic.ModeTransformed,
		Grid:       []float64{-1, 1, -0.5, 0.5},
		Workers:    2,
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}
	want := []float64{0.641829, 0.925770, 0.686443, 0.995997}

	points, err := SlopeSweep(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, points, len(want))
	for i, pt := range points {
		require.False(t, pt.Skipped, pt.Reason)
		assert.InDelta(t, want[i], pt.Probability, 1e-4, "v=%g", pt.Param)
	}

	// a fixed sign cannot follow v through zero
	s.Sign = contour.CurvatureMinus
	fixed, err := SlopeSweep(context.Background(), s)
	require.NoError(t, err)
	assert.InDelta(t, points[1].Probability, fixed[1].Probability, 1e-12)
	assert.Greater(t, math.Abs(fixed[0].Probability-points[0].Probability), 0.1)
}

func TestRateSweepWithRateMagnitude(t *testing.T) {
	// reference values of the twisted rate scan with gap m + k·v·|F|/4
	// centred on π/(2·(-F))
	var buf bytes.Buffer
	s := Sweep{
		Kind:       hamiltonian.KindTwisted,
		Parameters: hamiltonian.Parameters{Slope: 1, Gap: 0.1, Twist: 1, SweepRate: 1, Dirac: 1},
		Sign:       contour.CurvaturePlusAbsRate,
		Center:     CenterSignedQuarterPeriod,
		Mode:       adiabatic.ModeTransformed,
		Grid:       []float64{-1, 1, -0.5, 0.5, -2, 2},
		Workers:    3,
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}
	want := []float64{0.641829, 0.925770, 0.714278, 0.996058, 0.433801, 0.580614}

	points, err := RateSweep(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, points, len(want))
	for i, pt := range points {
		require.False(t, pt.Skipped, pt.Reason)
		assert.InDelta(t, want[i], pt.Probability, 1e-4, "F=%g", pt.Param)
	}
}

func TestSweepErrors(t *testing.T) {
	var buf bytes.Buffer
	s := twistedRateSweep(&buf)
	s.Kind = hamiltonian.Kind(9)
	_, err := RateSweep(context.Background(), s)
	assert.ErrorIs(t, err, hamiltonian.ErrUnknownKind)

	s = twistedRateSweep(&buf)
	s.Mode = adiabatic.Mode(7)
	_, err = RateSweep(context.Background(), s)
	assert.ErrorIs(t, err, adiabatic.ErrInvalidMode)

	s = twistedRateSweep(&buf)
	s.Center = CenterPolicy(5)
	_, err = RateSweep(context.Background(), s)
	assert.ErrorIs(t, err, ErrUnknownCenter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RateSweep(ctx, twistedRateSweep(&buf))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCenterPolicy(t *testing.T) {
	p := hamiltonian.DefaultParameters().WithSweepRate(-0.5)
	twisted, err := hamiltonian.NewTwisted(p)
	require.NoError(t, err)
	linear, err := hamiltonian.NewLinear(p)
	require.NoError(t, err)

	c, err := CenterCrossing.Center(linear)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)

	c, err = CenterCrossing.Center(twisted)
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi, c, 1e-15)

	c, err = CenterQuarterPeriod.Center(twisted)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, c, 1e-15)

	c, err = CenterNegativeQuarterPeriod.Center(twisted)
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi, c, 1e-15)

	c, err = CenterSignedQuarterPeriod.Center(twisted)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, c, 1e-15)

	forward, err := hamiltonian.NewTwisted(p.WithSweepRate(0.5))
	require.NoError(t, err)
	c, err = CenterSignedQuarterPeriod.Center(forward)
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi, c, 1e-15)

	for i := 0; i < NumberOfCenterPolicies; i++ {
		got, err := ParseCenterPolicy(CenterPolicy(i).String())
		require.NoError(t, err)
		assert.Equal(t, CenterPolicy(i), got)
	}
	_, err = ParseCenterPolicy("middle")
	assert.ErrorIs(t, err, ErrUnknownCenter)
}

func TestDoublePassage(t *testing.T) {
	if testing.Short() {
		t.Skip("double passage evolution in short mode")
	}
	var buf bytes.Buffer
	s := DefaultDoublePassage()
	s.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	res, err := DoublePassage(context.Background(), s)
	require.NoError(t, err)

	assert.InDelta(t, 0.032, res.Parameters.Twist, 1e-15)
	assert.InDelta(t, 0.072, res.First.Im, 1e-12)
	assert.InDelta(t, -math.Pi/2, res.First.Re, 1e-15)
	assert.InDelta(t, math.Pi/2, res.Second.Re, 1e-15)

	assert.InDelta(t, 0.44257, res.Probability, 1e-4)
	assert.InDelta(t, 0.44295, res.LandauZener, 1e-4)
	assert.InDelta(t, 0.1296, res.AdiabaticParameter, 1e-12)
	assert.InDelta(t, 0.46493, res.Stokes, 1e-4)
	assert.InDelta(t, 102.7605, res.DynamicalPhase, 1e-3)
	assert.InDelta(t, 0.80235, res.Heuristic, 1e-3)
	assert.InDelta(t, 0.80456, res.Numerical, 1e-3)
	assert.InDelta(t, res.Heuristic, res.Numerical, 0.1)
	assert.Len(t, res.Trace.Times, 500)
	assert.Contains(t, buf.String(), "double passage")
}

func TestDoublePassageRejectsBadSetup(t *testing.T) {
	s := DefaultDoublePassage()
	s.Eps0 = 0
	_, err := DoublePassage(context.Background(), s)
	assert.ErrorIs(t, err, hamiltonian.ErrInvalidParameter)
}
