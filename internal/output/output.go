package output

import (
	"context"

	"github.com/crimson-sun/neurallink/internal/model"
)

// Output defines the interface for log entry destinations.
type Output interface {
	Write(ctx context.Context, entry model.LogEntry) error
	Close() error
}
