package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "genetic", want: GeneticStrategy},
		{in: " GA ", want: GeneticStrategy},
		{in: "linear", want: LinearStrategy},
		{in: "LP", want: LinearStrategy},
		{in: "annealing", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseStrategies(t *testing.T) {
	got, err := ParseStrategies([]string{"linear", "lp", "genetic"})
	require.NoError(t, err)
	assert.Equal(t, []Strategy{LinearStrategy, GeneticStrategy}, got)

	got, err = ParseStrategies([]string{"linear", "all"})
	require.NoError(t, err)
	assert.Equal(t, AllStrategies, got)

	_, err = ParseStrategies(nil)
	assert.Error(t, err)
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "genetic", GeneticStrategy.String())
	assert.Equal(t, "linear", LinearStrategy.String())
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
}

func TestNewSolver(t *testing.T) {
	settings := config.DefaultSolverSettings()

	s, err := NewSolver(GeneticStrategy, settings)
	require.NoError(t, err)
	assert.Equal(t, GeneticName, s.Name())

	s, err = NewSolver(LinearStrategy, settings)
	require.NoError(t, err)
	assert.Equal(t, LinearName, s.Name())

	_, err = NewSolver(Strategy(9), settings)
	assert.Error(t, err)

	settings.Genetic.PopulationSize = 1
	_, err = NewSolver(GeneticStrategy, settings)
	assert.Error(t, err)
}

func TestPhaseError(t *testing.T) {
	err := error(&PhaseError{
		Phase:  PhaseMaxProfit,
		Status: PhaseStatus{Phase: PhaseMaxProfit, Status: "infeasible", Message: "no feasible point"},
		Err:    ErrInfeasibleModel,
	})
	assert.True(t, errors.Is(err, ErrInfeasibleModel))
	assert.False(t, errors.Is(err, ErrPhaseFailed))
	assert.Equal(t, "phase 2 (maximize profit) failed: infeasible model: no feasible point", err.Error())
}
