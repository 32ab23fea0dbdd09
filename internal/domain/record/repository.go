package record

import (
	"context"
)

// Repository - удаленный сервис, которому принадлежат записи.
type Repository interface {
	Get(ctx context.Context, id string) (*Record, error)
	MarkStatus(ctx context.Context, id string) error
}
