package plan

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Kind identifies the role a section plays in the storyboard.
type Kind string

const (
	KindProblem  Kind = "problem"
	KindSolution Kind = "solution"
	KindCustomer Kind = "customer"
	KindRevenue  Kind = "revenue"
	KindRisks    Kind = "risks"
	KindCustom   Kind = "custom"
)

// StandardKinds lists the built-in storyboard sections in their default order.
func StandardKinds() (kinds []Kind) {
	kinds = []Kind{KindProblem, KindSolution, KindCustomer, KindRevenue, KindRisks}
	return kinds
}

// Valid reports whether k is a known section kind.
func (k Kind) Valid() (ok bool) {
	switch k {
	case KindProblem, KindSolution, KindCustomer, KindRevenue, KindRisks, KindCustom:
		ok = true
	}
	return ok
}

// Section is one labeled subdivision of a business plan.
type Section struct {
	ID          string `json:"id" yaml:"id"`
	Kind        Kind   `json:"type" yaml:"type"`
	Title       string `json:"title" yaml:"title"`
	Content     string `json:"content" yaml:"content"`
	IsCompleted bool   `json:"isCompleted" yaml:"isCompleted"`
	Order       int    `json:"order" yaml:"order"`
	IsCustom    bool   `json:"isCustom,omitempty" yaml:"isCustom,omitempty"`
}

// WordCount returns the number of whitespace-delimited tokens in the section content.
func (s Section) WordCount() (count int) {
	count = WordCount(s.Content)
	return count
}

// Document is a storyboard: an ordered sequence of sections plus caller-maintained metadata.
type Document struct {
	ID                   string    `json:"id" yaml:"id"`
	Title                string    `json:"title" yaml:"title"`
	Sections             []Section `json:"sections" yaml:"sections"`
	CreatedAt            time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	CompletionPercentage float64   `json:"completionPercentage" yaml:"completionPercentage"`
}

// WordCount counts whitespace-delimited tokens. Empty or blank text counts as zero.
func WordCount(text string) (count int) {
	count = len(strings.Fields(text))
	return count
}

// Snapshot returns a copy whose section slice is independent of d.
func (d Document) Snapshot() (snap Document) {
	snap = d
	if d.Sections != nil {
		snap.Sections = make([]Section, len(d.Sections))
		copy(snap.Sections, d.Sections)
	}
	return snap
}

// FindKind returns the first section of the given kind.
func (d Document) FindKind(kind Kind) (section Section, found bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			section = s
			found = true
			return section, found
		}
	}
	return section, found
}

// Validate checks the structural invariants of the document.
func (d *Document) Validate() (err error) {
	ids := make(map[string]bool, len(d.Sections))
	orders := make(map[int]string, len(d.Sections))

	for i, s := range d.Sections {
		if s.ID == "" {
			err = errors.Errorf("section at index %d missing id", i)
			return err
		}
		if ids[s.ID] {
			err = errors.Errorf("duplicate section id: %s", s.ID)
			return err
		}
		ids[s.ID] = true

		if !s.Kind.Valid() {
			err = errors.Errorf("section %s has unknown type %q", s.ID, s.Kind)
			return err
		}

		if other, exists := orders[s.Order]; exists {
			err = errors.Errorf("sections %s and %s share order %d", other, s.ID, s.Order)
			return err
		}
		orders[s.Order] = s.ID
	}

	return err
}
