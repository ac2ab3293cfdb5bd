// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/amortize/pkg/output"
)

// FindSchedule finds a loan schedule by name in the results slice.
// Returns a pointer to the schedule if found, nil otherwise.
func FindSchedule(results []output.NamedSchedule, name string) *output.NamedSchedule {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
