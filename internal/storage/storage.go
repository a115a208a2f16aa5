package storage

import (
	"context"

	"github.com/kuntur-detector/case-service/internal/model"
)

// Store persists the case collection as one document. Load is called once at
// service start; Save rewrites the whole document after every mutation.
type Store interface {
	Load(ctx context.Context) ([]model.Case, error)
	Save(ctx context.Context, cases []model.Case) error
}
