package scorer

import (
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/readiness"
	"github.com/pkg/errors"
)

// Criteria holds the tunable thresholds the rules and the section analyzer read.
type Criteria struct {
	MinWordsPerSection int                  `json:"minWordsPerSection" yaml:"minWordsPerSection"`
	MaxWordsPerSection int                  `json:"maxWordsPerSection" yaml:"maxWordsPerSection"`
	RequiredSections   []plan.Kind          `json:"requiredSections" yaml:"requiredSections"`
	Thresholds         readiness.Thresholds `json:"qualityThresholds" yaml:"qualityThresholds"`
}

// CriteriaPatch is a partial update. Nil fields leave the current value untouched.
type CriteriaPatch struct {
	MinWordsPerSection *int                  `json:"minWordsPerSection,omitempty" yaml:"minWordsPerSection,omitempty"`
	MaxWordsPerSection *int                  `json:"maxWordsPerSection,omitempty" yaml:"maxWordsPerSection,omitempty"`
	RequiredSections   []plan.Kind           `json:"requiredSections,omitempty" yaml:"requiredSections,omitempty"`
	Thresholds         *readiness.Thresholds `json:"qualityThresholds,omitempty" yaml:"qualityThresholds,omitempty"`
}

// DefaultCriteria returns the stock criteria.
func DefaultCriteria() (c Criteria) {
	c = Criteria{
		MinWordsPerSection: 50,
		MaxWordsPerSection: 2000,
		RequiredSections:   plan.StandardKinds(),
		Thresholds:         readiness.DefaultThresholds(),
	}
	return c
}

// Apply returns a copy of c with the patch merged in.
func (c Criteria) Apply(p CriteriaPatch) (merged Criteria) {
	merged = c.clone()

	if p.MinWordsPerSection != nil {
		merged.MinWordsPerSection = *p.MinWordsPerSection
	}
	if p.MaxWordsPerSection != nil {
		merged.MaxWordsPerSection = *p.MaxWordsPerSection
	}
	if p.RequiredSections != nil {
		merged.RequiredSections = append([]plan.Kind(nil), p.RequiredSections...)
	}
	if p.Thresholds != nil {
		merged.Thresholds = *p.Thresholds
	}

	return merged
}

// Validate rejects criteria that would make scoring meaningless.
func (c Criteria) Validate() (err error) {
	if c.MinWordsPerSection < 0 {
		err = errors.Errorf("minWordsPerSection must not be negative, got %d", c.MinWordsPerSection)
		return err
	}

	if c.MaxWordsPerSection < c.MinWordsPerSection {
		err = errors.Errorf("maxWordsPerSection (%d) is below minWordsPerSection (%d)",
			c.MaxWordsPerSection, c.MinWordsPerSection)
		return err
	}

	for _, kind := range c.RequiredSections {
		if !kind.Valid() {
			err = errors.Errorf("unknown required section type %q", kind)
			return err
		}
	}

	t := c.Thresholds
	if t.Ready < t.Excellent || t.Excellent < t.Good || t.Good < t.Developing || t.Developing < t.Draft {
		err = errors.New("quality thresholds must be ordered draft <= developing <= good <= excellent <= ready")
		return err
	}

	return err
}

func (c Criteria) clone() (out Criteria) {
	out = c
	if c.RequiredSections != nil {
		out.RequiredSections = append([]plan.Kind(nil), c.RequiredSections...)
	}
	return out
}
