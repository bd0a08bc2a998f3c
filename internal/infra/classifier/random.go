package classifier

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

const (
	minConfidence   = 0.75
	confidenceRange = 0.25
)

// RandomClassifier picks a category uniformly at random. It does not look
// at the image.
type RandomClassifier struct {
	mu    sync.Mutex
	rng   *rand.Rand
	types []models.ColorType
}

func NewRandomClassifier(src rand.Source) *RandomClassifier {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>32|1)
	}
	return &RandomClassifier{
		rng:   rand.New(src),
		types: analysis.ColorTypes(),
	}
}

func (r *RandomClassifier) Classify(ctx context.Context, _ []byte) (analysis.Result, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Result{}, err
	}

	r.mu.Lock()
	idx := r.rng.IntN(len(r.types))
	x := r.rng.Float64()
	r.mu.Unlock()

	return analysis.Result{
		ColorType:  r.types[idx],
		Confidence: confidence(x),
	}, nil
}

// confidence maps x in [0,1) into [0.75,1). Rounding can push the sum up
// to exactly 1, so the result is clamped below it.
func confidence(x float64) float64 {
	c := minConfidence + x*confidenceRange
	if c >= 1 {
		c = math.Nextafter(1, 0)
	}
	return c
}
