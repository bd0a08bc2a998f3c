package analysis

import (
	"context"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

type Result struct {
	ColorType  models.ColorType
	Confidence float64
}

// Classifier turns image bytes into a personal color category.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Result, error)
}

type ClassifierFunc func(ctx context.Context, image []byte) (Result, error)

func (f ClassifierFunc) Classify(ctx context.Context, image []byte) (Result, error) {
	return f(ctx, image)
}
