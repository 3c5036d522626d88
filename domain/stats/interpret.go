package stats

// InterpretCramersV maps an association strength onto its qualitative label.
// The cut points are a contract with downstream consumers, which render the
// labels verbatim.
func InterpretCramersV(v float64) string {
	switch {
	case v < 0.1:
		return "Very weak"
	case v < 0.3:
		return "Weak"
	case v < 0.5:
		return "Moderate"
	case v < 0.7:
		return "Strong"
	default:
		return "Very strong"
	}
}

// InterpretModelAccuracy maps a classifier accuracy onto its qualitative
// label, same contract as InterpretCramersV.
func InterpretModelAccuracy(accuracy float64) string {
	switch {
	case accuracy < 0.6:
		return "Poor"
	case accuracy < 0.7:
		return "Fair"
	case accuracy < 0.8:
		return "Good"
	case accuracy < 0.9:
		return "Very good"
	default:
		return "Excellent"
	}
}
