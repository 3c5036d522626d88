package heuristic

import (
	"fmt"
	"strings"

	"goassoc/domain/dataset"
	"goassoc/ports"
)

// Baseline scorers standing in for the swappable classifier stages. They
// score training accuracy only, which is what the accuracy bands consume;
// a real classifier adapter can replace any of them behind
// ports.ModelScorer without touching the pipeline.

// MajorityClass predicts the most frequent target category regardless of
// predictors. This is the null-model floor for any classifier.
type MajorityClass struct {
	name string
}

// NewMajorityClass creates a majority-class scorer reporting under the
// given stage name.
func NewMajorityClass(name string) *MajorityClass {
	return &MajorityClass{name: name}
}

var _ ports.ModelScorer = (*MajorityClass)(nil)

func (s *MajorityClass) Name() string { return s.name }

func (s *MajorityClass) Score(frame *dataset.Dataset, target string, predictors []string) (float64, error) {
	values := frame.Column(target)
	if len(values) == 0 {
		return 0, fmt.Errorf("target column %q is empty", target)
	}
	counts := make(map[string]int)
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	return float64(best) / float64(len(values)), nil
}

// OneRule picks the single predictor whose per-category majority vote best
// explains the target (the classic 1R rule), a stand-in for a depth-one
// decision tree.
type OneRule struct {
	name string
}

// NewOneRule creates a one-rule scorer reporting under the given stage name.
func NewOneRule(name string) *OneRule {
	return &OneRule{name: name}
}

var _ ports.ModelScorer = (*OneRule)(nil)

func (s *OneRule) Name() string { return s.name }

func (s *OneRule) Score(frame *dataset.Dataset, target string, predictors []string) (float64, error) {
	targetValues := frame.Column(target)
	if len(targetValues) == 0 {
		return 0, fmt.Errorf("target column %q is empty", target)
	}
	if len(predictors) == 0 {
		return 0, fmt.Errorf("no predictors for target %q", target)
	}
	best := 0.0
	for _, predictor := range predictors {
		acc := groupedMajorityAccuracy([][]string{frame.Column(predictor)}, targetValues)
		if acc > best {
			best = acc
		}
	}
	return best, nil
}

// JointMajority votes the majority target class within each joint predictor
// group, an upper-bound stand-in for an ensemble fit on all predictors.
type JointMajority struct {
	name string
}

// NewJointMajority creates a joint-majority scorer reporting under the
// given stage name.
func NewJointMajority(name string) *JointMajority {
	return &JointMajority{name: name}
}

var _ ports.ModelScorer = (*JointMajority)(nil)

func (s *JointMajority) Name() string { return s.name }

func (s *JointMajority) Score(frame *dataset.Dataset, target string, predictors []string) (float64, error) {
	targetValues := frame.Column(target)
	if len(targetValues) == 0 {
		return 0, fmt.Errorf("target column %q is empty", target)
	}
	if len(predictors) == 0 {
		return 0, fmt.Errorf("no predictors for target %q", target)
	}
	cols := make([][]string, len(predictors))
	for i, p := range predictors {
		cols[i] = frame.Column(p)
	}
	return groupedMajorityAccuracy(cols, targetValues), nil
}

// groupedMajorityAccuracy groups rows by the joint key of the given columns
// and scores the share of rows matching their group's majority target.
func groupedMajorityAccuracy(cols [][]string, target []string) float64 {
	n := len(target)
	for _, col := range cols {
		if len(col) < n {
			n = len(col)
		}
	}
	if n == 0 {
		return 0
	}
	groups := make(map[string]map[string]int)
	parts := make([]string, len(cols))
	for i := 0; i < n; i++ {
		for j, col := range cols {
			parts[j] = col[i]
		}
		key := strings.Join(parts, "\x1f")
		if groups[key] == nil {
			groups[key] = make(map[string]int)
		}
		groups[key][target[i]]++
	}
	correct := 0
	for _, dist := range groups {
		best := 0
		for _, count := range dist {
			if count > best {
				best = count
			}
		}
		correct += best
	}
	return float64(correct) / float64(n)
}
