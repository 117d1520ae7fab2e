package experiment

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-kondo-09/quantum-physics/evolve"
	"github.com/s-kondo-09/quantum-physics/util"
)

func TestSweepTable(t *testing.T) {
	points := []Point{
		{Param: -1, Probability: 0.9, Theory: 0.91, LogProbability: math.Log(0.9)},
		{Param: 0, Skipped: true, Reason: "excluded"},
	}
	table := SweepTable("rate sweep", "F", points)
	assert.Equal(t, []string{"F = -1", "F = 0"}, table.RowHeaders)
	assert.Equal(t, []string{"", "excluded"}, table.Notes)

	data := table.Data["transition probability"]
	require.Len(t, data, 2)
	assert.Equal(t, 0.9, data[0][0])
	assert.True(t, math.IsNaN(data[1][0]))

	var buf bytes.Buffer
	require.NoError(t, util.WriteTables([]util.Table{table}, &buf))
	assert.Contains(t, buf.String(), "excluded")
}

func TestDoublePassageTables(t *testing.T) {
	res := DoublePassageResult{
		Probability: 0.44,
		Trace: evolve.Trace{
			Times:         []float64{-1, 0, 1},
			Probabilities: []float64{0, 0.5, 0.8},
		},
	}
	tables := DoublePassageTables(res)
	require.Len(t, tables, 2)
	assert.Len(t, tables[1].RowHeaders, 3)

	var buf bytes.Buffer
	require.NoError(t, util.WriteTables(tables, &buf))
	assert.Contains(t, buf.String(), "double passage trace")
}
