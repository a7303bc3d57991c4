// Package stats contains usage aggregation and reporting.
package stats

import (
	"github.com/verte-zerg/usageheat/internal/model"
)

// Report contains precomputed data for rendering one filter selection.
type Report struct {
	Filter   model.FilterState
	Views    model.Views
	Insights Insights
}

// BuildReport aggregates facts under filter and derives insights.
func BuildReport(facts []model.UsageFact, filter model.FilterState) (Report, error) {
	views, err := Aggregate(facts, filter)
	if err != nil {
		return Report{}, err
	}
	insights, err := ComputeInsights(facts, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Filter:   filter,
		Views:    views,
		Insights: insights,
	}, nil
}
