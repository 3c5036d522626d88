package stats

// Association holds the outcome of one chi-square association test between
// two or more categorical variables. Instances are immutable once computed.
type Association struct {
	Variables []string `json:"variables"`
	ChiSquare float64  `json:"chi2"`
	PValue    float64  `json:"p_value"`
	DOF       int      `json:"dof"`
	N         int      `json:"n"`
	// CramersV is the normalized association strength in [0,1]. A value is
	// only present for computable, non-degenerate tables; degenerate or NaN
	// outcomes never reach an Association.
	CramersV       float64 `json:"cramers_v"`
	Interpretation string  `json:"interpretation"`
}

// PairResult is the wire shape of one pairwise chi-square test.
type PairResult struct {
	Variable1      string  `json:"variable_1"`
	Variable2      string  `json:"variable_2"`
	ChiSquare      float64 `json:"chi2"`
	PValue         float64 `json:"p_value"`
	CramersV       float64 `json:"cramers_v"`
	Interpretation string  `json:"interpretation"`
}

// MultiResult is the wire shape of one multi-variable chi-square test.
type MultiResult struct {
	Variables      []string `json:"variables"`
	ChiSquare      float64  `json:"chi2"`
	PValue         float64  `json:"p_value"`
	CramersV       float64  `json:"cramers_v"`
	Interpretation string   `json:"interpretation"`
}

// ModelResult is the wire shape of one classifier accuracy score.
type ModelResult struct {
	Target         string   `json:"target"`
	Predictors     []string `json:"predictors"`
	Accuracy       float64  `json:"accuracy"`
	Interpretation string   `json:"interpretation"`
}

// AverageStrength is the aggregate association summary over all valid pairs.
type AverageStrength struct {
	Value          float64 `json:"value"`
	Interpretation string  `json:"interpretation"`
}

// ResultsBundle aggregates every analysis category of a finished task.
type ResultsBundle struct {
	AverageCramersV    *AverageStrength `json:"average_cramers_v"`
	LogisticRegression []ModelResult    `json:"logistic_regression_results"`
	DecisionTree       []ModelResult    `json:"decision_tree_results"`
	RandomForest       []ModelResult    `json:"random_forest_results"`
	ChiSquare          []PairResult     `json:"chi_square_results"`
	MultiVariable      []MultiResult    `json:"multi_variable_results"`
}

// NewResultsBundle creates an empty bundle with non-nil result lists so a
// degraded stage serializes as [] rather than null.
func NewResultsBundle() *ResultsBundle {
	return &ResultsBundle{
		LogisticRegression: []ModelResult{},
		DecisionTree:       []ModelResult{},
		RandomForest:       []ModelResult{},
		ChiSquare:          []PairResult{},
		MultiVariable:      []MultiResult{},
	}
}
