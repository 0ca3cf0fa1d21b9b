package persona

import (
	"context"
	"errors"
	"log"

	"github.com/louisbranch/zhpersona/internal/platform/otel"
	"github.com/louisbranch/zhpersona/internal/services/persona/metrics"
	"github.com/louisbranch/zhpersona/internal/services/persona/story"
)

// Storyteller writes a life story for a record and renders an avatar.
type Storyteller interface {
	Story(ctx context.Context, persona any) (story.Story, error)
	Avatar(ctx context.Context, prompt string) (string, error)
	CanIllustrate() bool
}

func (a *Assembler) httpStoryteller(cfg AIConfig) Storyteller {
	return story.New(story.Config{
		APIKey:      cfg.APIKey,
		ChatURL:     cfg.BaseURL,
		Model:       cfg.Model,
		ImageAPIKey: cfg.ImageAPIKey,
		ImageURL:    cfg.ImageURL,
		ImageModel:  cfg.ImageModel,
		HTTPClient:  a.httpClient,
	})
}

// enrich adds the AI fields to rec. Failures are logged and leave rec
// without any AI field from the failed step.
func (a *Assembler) enrich(ctx context.Context, rec *Record, cfg AIConfig) {
	ctx, span := otel.Tracer().Start(ctx, "persona.ai")
	defer span.End()

	teller := a.storyteller(cfg)
	s, err := teller.Story(ctx, rec)
	if err != nil {
		a.aiFailed("story", err)
		return
	}
	a.metrics.IncrementAI("story", metrics.OutcomeOK)
	rec.LifeStory = s.LifeStory
	rec.ImagePrompt = s.ImagePrompt

	if s.ImagePrompt == "" || !teller.CanIllustrate() {
		a.metrics.IncrementAI("image", metrics.OutcomeSkipped)
		return
	}
	url, err := teller.Avatar(ctx, s.ImagePrompt)
	if err != nil {
		a.aiFailed("image", err)
		return
	}
	a.metrics.IncrementAI("image", metrics.OutcomeOK)
	rec.AvatarURL = url
}

func (a *Assembler) aiFailed(kind string, err error) {
	if errors.Is(err, story.ErrNoAPIKey) {
		log.Printf("ai %s skipped: no api key configured", kind)
		a.metrics.IncrementAI(kind, metrics.OutcomeSkipped)
		return
	}
	log.Printf("ai %s unavailable: %v", kind, err)
	a.metrics.IncrementAI(kind, metrics.OutcomeFailed)
}
