package readiness

// Level is a discrete label summarizing how close a plan is to investor review.
type Level string

const (
	Draft      Level = "draft"
	Developing Level = "developing"
	Good       Level = "good"
	Excellent  Level = "excellent"
	Ready      Level = "ready"
)

// Thresholds holds the minimum overall score for each level. Draft is the floor and is never
// compared; it is kept so the mapping round-trips through configuration.
type Thresholds struct {
	Draft      float64 `json:"draft" yaml:"draft"`
	Developing float64 `json:"developing" yaml:"developing"`
	Good       float64 `json:"good" yaml:"good"`
	Excellent  float64 `json:"excellent" yaml:"excellent"`
	Ready      float64 `json:"ready" yaml:"ready"`
}

// DefaultThresholds returns the stock readiness cut-offs.
func DefaultThresholds() (t Thresholds) {
	t = Thresholds{
		Draft:      20,
		Developing: 40,
		Good:       60,
		Excellent:  80,
		Ready:      90,
	}
	return t
}

// Classify maps a 0-100 score to a level. Thresholds are checked from highest to lowest and the
// first one the score reaches wins.
func Classify(score float64, t Thresholds) (level Level) {
	switch {
	case score >= t.Ready:
		level = Ready
	case score >= t.Excellent:
		level = Excellent
	case score >= t.Good:
		level = Good
	case score >= t.Developing:
		level = Developing
	default:
		level = Draft
	}
	return level
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() (ok bool) {
	switch l {
	case Draft, Developing, Good, Excellent, Ready:
		ok = true
	}
	return ok
}
