package wish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/observability"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

var meera = domain.Customer{ID: "c1", Name: "Meera", EventType: domain.EventTypeAnniversary}

func TestDraftUsesGeneratedText(t *testing.T) {
	gen := &stubGenerator{text: "  Happy anniversary, Meera!  "}
	d := NewDrafter(gen, "VPP Jewellers", 0, zap.NewNop(), nil)

	draft := d.Draft(context.Background(), meera)
	assert.Equal(t, Draft{Text: "Happy anniversary, Meera!"}, draft)
	assert.Contains(t, gen.prompt, "warm anniversary wish for a customer named Meera")
	assert.Contains(t, gen.prompt, "The company name is VPP Jewellers.")
	assert.Contains(t, gen.prompt, "under 30 words")
}

func TestDraftFallbacks(t *testing.T) {
	metrics := observability.NewMetrics("test")

	empty := NewDrafter(&stubGenerator{}, "VPP Jewellers", 0, zap.NewNop(), metrics).Draft(context.Background(), meera)
	assert.True(t, empty.Fallback)
	assert.Equal(t, "Happy Celebration from VPP Jewellers! Wishing you a wonderful day filled with joy and sparkle.", empty.Text)

	failed := NewDrafter(&stubGenerator{err: errors.New("quota")}, "VPP Jewellers", 0, zap.NewNop(), metrics).Draft(context.Background(), meera)
	assert.True(t, failed.Fallback)
	assert.Equal(t, "Happy anniversary to our valued customer, Meera! Best wishes from team VPP Jewellers.", failed.Text)

	unconfigured := NewDrafter(nil, "VPP Jewellers", 0, zap.NewNop(), metrics).Draft(context.Background(), meera)
	assert.Equal(t, failed.Text, unconfigured.Text)

	families, err := metrics.Registry().Gather()
	assert.NoError(t, err)
	var fallbacks float64
	for _, f := range families {
		if f.GetName() == "test_wish_fallbacks_total" {
			fallbacks = f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 3.0, fallbacks)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-2.0-flash")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
