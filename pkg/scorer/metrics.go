package scorer

import (
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
)

// Metrics are plain content statistics, independent of scoring.
type Metrics struct {
	TotalWords             int       `json:"totalWords"`
	AverageWordsPerSection float64   `json:"averageWordsPerSection"`
	CompletionRate         float64   `json:"completionRate"`
	SectionCount           int       `json:"sectionCount"`
	CompletedSections      int       `json:"completedSections"`
	LastUpdated            time.Time `json:"lastUpdated,omitempty"`
}

// ComputeMetrics counts words across the document. CompletionRate is copied from the
// caller-maintained CompletionPercentage rather than derived from the sections.
func ComputeMetrics(doc plan.Document) (m Metrics) {
	for _, s := range doc.Sections {
		m.TotalWords += s.WordCount()
		if s.IsCompleted {
			m.CompletedSections++
		}
	}

	m.SectionCount = len(doc.Sections)
	if m.SectionCount > 0 {
		m.AverageWordsPerSection = float64(m.TotalWords) / float64(m.SectionCount)
	}

	m.CompletionRate = doc.CompletionPercentage
	m.LastUpdated = doc.UpdatedAt

	return m
}
