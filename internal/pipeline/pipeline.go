// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the configured stages of a digest run.
package pipeline

import (
	"context"
	"fmt"
	"io"
)

// Step is one named unit of pipeline work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run executes steps in order, printing per-step progress. The first
// step error stops the run and is returned annotated with the step name;
// no step is retried.
func Run(ctx context.Context, steps []Step, w io.Writer) error {
	for _, s := range steps {
		fmt.Fprintf(w, "==> %s\n", s.Name)
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("step %s: %w", s.Name, err)
		}
	}
	return nil
}
