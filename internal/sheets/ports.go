// Package sheets defines the outbound ports for the spreadsheet sync
// target consumed by the worker.
package sheets

import (
	"context"

	"setlog/internal/core"
)

type (
	// RowAppender writes one workout as a spreadsheet row.
	RowAppender interface {
		Append(ctx context.Context, w core.Workout) (rowRef string, err error)
	}

	// RowDeleter removes the row matching a workout's data. The target has
	// no notion of our IDs, so rows are located by content.
	RowDeleter interface {
		DeleteByData(ctx context.Context, w core.Workout) error
	}
)
