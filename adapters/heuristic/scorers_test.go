package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassoc/domain/dataset"
)

func scorerFrame() *dataset.Dataset {
	// "color" fully determines "label"; "noise" is uninformative.
	n := 40
	cols := map[string][]string{
		"color": make([]string, n),
		"noise": make([]string, n),
		"label": make([]string, n),
	}
	for i := 0; i < n; i++ {
		color := []string{"red", "blue"}[i%2]
		cols["color"][i] = color
		cols["noise"][i] = []string{"a", "a", "b", "b"}[i%4]
		if color == "red" {
			cols["label"][i] = "warm"
		} else {
			cols["label"][i] = "cool"
		}
	}
	return dataset.FromColumns([]string{"color", "noise", "label"}, cols)
}

func TestMajorityClass(t *testing.T) {
	frame := scorerFrame()
	s := NewMajorityClass("logistic regression")
	assert.Equal(t, "logistic regression", s.Name())

	// label splits 50/50: the null model scores 0.5.
	acc, err := s.Score(frame, "label", []string{"color", "noise"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, acc, 1e-9)

	_, err = s.Score(frame, "absent", nil)
	assert.Error(t, err)
}

func TestOneRule(t *testing.T) {
	frame := scorerFrame()
	s := NewOneRule("decision tree")

	// The color rule predicts label perfectly.
	acc, err := s.Score(frame, "label", []string{"noise", "color"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-9)

	// With only an uninformative predictor the rule falls back to the
	// per-group majority, which is 0.5 here.
	acc, err = s.Score(frame, "label", []string{"noise"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, acc, 1e-9)

	_, err = s.Score(frame, "label", nil)
	assert.Error(t, err)
}

func TestJointMajority(t *testing.T) {
	frame := scorerFrame()
	s := NewJointMajority("random forest")

	acc, err := s.Score(frame, "label", []string{"color", "noise"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-9)

	// Joint grouping can only refine: never below the best single rule.
	one, err := NewOneRule("decision tree").Score(frame, "label", []string{"color", "noise"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, one)
}
