package domain

import "context"

// Service computes dashboard aggregates over caller-supplied records.
type Service interface {
	Summarize(ctx context.Context, req SummaryRequest) (Summary, error)
}
