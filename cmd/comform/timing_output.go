package main

import (
	"fmt"

	"comform/internal/driver"
	"comform/internal/observ"
	"comform/internal/pipeline"
)

// recordStageTimings adds each stage's total across files to timer. Stages
// overlap when files run in parallel, so they stay out of the total.
func recordStageTimings(timer *observ.Timer, results []driver.Result) {
	var sum pipeline.Timings
	cached := 0
	for i := range results {
		sum.Merge(results[i].Timings)
		if results[i].Cached {
			cached++
		}
	}
	for _, stage := range pipeline.Stages {
		if !sum.Has(stage) {
			continue
		}
		timer.Record(string(stage), sum.Duration(stage), fmt.Sprintf("sum over %d files", len(results)))
	}
	if cached > 0 {
		timer.Record("cache hits", 0, fmt.Sprintf("%d of %d files", cached, len(results)))
	}
}
