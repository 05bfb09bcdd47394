package ports

import (
	"context"
	"errors"
)

// MultiRecorder fans an evaluation out to several recorders.
type MultiRecorder []EvaluationRecorder

func (m MultiRecorder) RecordEvaluation(ctx context.Context, e *Evaluation) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordEvaluation(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiRecorder) Close(ctx context.Context) error {
	var errs []error
	for _, r := range m {
		if err := r.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
