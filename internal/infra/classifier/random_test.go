package classifier

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

func TestRandomClassifierConfidenceRange(t *testing.T) {
	c := NewRandomClassifier(rand.NewPCG(1, 2))
	seen := make(map[models.ColorType]int)

	for i := 0; i < 2000; i++ {
		res, err := c.Classify(context.Background(), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Confidence, 0.75)
		assert.Less(t, res.Confidence, 1.0)
		seen[res.ColorType]++
	}

	for _, ct := range analysis.ColorTypes() {
		assert.Positive(t, seen[ct], "category %s never chosen", ct)
	}
}

func TestRandomClassifierDeterministicWithSeed(t *testing.T) {
	a := NewRandomClassifier(rand.NewPCG(42, 7))
	b := NewRandomClassifier(rand.NewPCG(42, 7))

	for i := 0; i < 10; i++ {
		ra, err := a.Classify(context.Background(), nil)
		require.NoError(t, err)
		rb, err := b.Classify(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
	}
}

func TestConfidenceClamp(t *testing.T) {
	assert.Equal(t, 0.75, confidence(0))
	assert.Less(t, confidence(math.Nextafter(1, 0)), 1.0)
	assert.Less(t, confidence(1), 1.0)
}

func TestRandomClassifierConcurrent(t *testing.T) {
	c := NewRandomClassifier(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				res, err := c.Classify(context.Background(), nil)
				assert.NoError(t, err)
				assert.Less(t, res.Confidence, 1.0)
			}
		}()
	}
	wg.Wait()
}

func TestRandomClassifierCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRandomClassifier(nil).Classify(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
