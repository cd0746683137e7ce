package engine

import (
	"errors"
	"fmt"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"
)

// Plan is the ordered extractor pipeline applied to every directory.
type Plan struct {
	Extractors []extract.Extractor
}

// NewPlan orders the selected extractors by stage and checks that every
// required metric is provided by an earlier extractor and that no metric is
// provided twice.
func NewPlan(selected []extract.Extractor) (*Plan, error) {
	if len(selected) == 0 {
		return nil, errors.New("no extractors selected")
	}

	ordered := append([]extract.Extractor(nil), selected...)
	extract.SortByStage(ordered)

	providedBy := make(map[data.Key]string)
	for _, ex := range ordered {
		for _, k := range ex.Requires() {
			if _, ok := providedBy[k]; !ok {
				return nil, fmt.Errorf("extractor %s requires %s, which no earlier extractor provides", ex.ID(), k)
			}
		}
		for _, k := range ex.Provides() {
			if other, dup := providedBy[k]; dup {
				return nil, fmt.Errorf("metric %s is provided by both %s and %s", k, other, ex.ID())
			}
			providedBy[k] = ex.ID()
		}
	}

	return &Plan{Extractors: ordered}, nil
}

// Artifacts returns the file names every directory must contain, in plan order.
func (p *Plan) Artifacts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ex := range p.Extractors {
		a := ex.Artifact()
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
