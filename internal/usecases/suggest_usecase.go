package usecases

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"whisperbox.backend/internal/infrastructure/suggest"
	"whisperbox.backend/pkg/logger"
	redispkg "whisperbox.backend/pkg/redis"
)

// categoryPrompts maps a suggestion category to the prompt sent to the
// model. Unknown categories fall back to "conversation".
var categoryPrompts = map[string]string{
	"conversation":  "Create a list of three open-ended and engaging questions. These questions are for an anonymous social messaging platform and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on universal themes that encourage friendly interaction.",
	"compliment":    "Create a list of three warm, genuine compliments someone could send anonymously. Keep them wholesome and suitable for anyone, avoiding comments about appearance.",
	"question":      "Create a list of three thought-provoking questions that spark curiosity. Keep them light and suitable for a diverse anonymous audience.",
	"funfact":       "Create a list of three surprising fun facts phrased as short anonymous messages. Keep them accurate, light-hearted and suitable for everyone.",
	"motivational":  "Create a list of three short motivational messages someone could send anonymously to brighten a stranger's day. Keep them sincere and free of cliches.",
	"joke":          "Create a list of three short, clean jokes suitable to send as anonymous messages. Avoid anything offensive or targeting groups of people.",
	"roast":         "Create a list of three playful, good-natured roasts that tease without being hurtful. Keep them light enough that the recipient would laugh.",
	"pickup":        "Create a list of three cheesy but harmless pickup lines suitable for an anonymous messaging platform. Keep them playful and inoffensive.",
	"sarcasm":       "Create a list of three witty sarcastic remarks suitable as anonymous messages. Keep them clever rather than mean-spirited.",
	"showerthought": "Create a list of three amusing shower thoughts phrased as short anonymous messages. Keep them clever and family-friendly.",
	"advice":        "Create a list of three pieces of short, practical life advice someone could send anonymously. Keep them genuinely useful and non-judgmental.",
	"confession":    "Create a list of three light-hearted, relatable fictional confessions suitable as anonymous messages. Keep them harmless and funny.",
	"poetic":        "Create a list of three short poetic lines someone could send as an anonymous message. Keep them evocative but accessible.",
}

const defaultCategory = "conversation"

// cache seams
var (
	cacheGet = redispkg.Get
	cacheSet = redispkg.Set
)

// SuggestUsecase produces message suggestions via an LLM, with a Redis
// cache per category. Failures degrade to an empty list rather than an
// error: suggestions are a convenience, never a blocker.
type SuggestUsecase struct {
	client   suggest.Client
	cacheTTL time.Duration
}

func NewSuggestUsecase(client suggest.Client, cacheTTL time.Duration) *SuggestUsecase {
	return &SuggestUsecase{client: client, cacheTTL: cacheTTL}
}

func (u *SuggestUsecase) Suggest(ctx context.Context, category string) []string {
	prompt, ok := categoryPrompts[category]
	if !ok {
		category = defaultCategory
		prompt = categoryPrompts[defaultCategory]
	}

	cacheKey := "suggest:" + category
	if redispkg.GetClient() != nil {
		if raw, err := cacheGet(ctx, cacheKey); err == nil {
			var cached []string
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached
			}
		}
	}

	if u.client == nil {
		return []string{}
	}

	suggestions, err := u.client.Complete(ctx, prompt)
	if err != nil {
		logger.Warn(ctx, "suggestion request failed, returning empty list", zap.String("category", category), zap.Error(err))
		return []string{}
	}

	if redispkg.GetClient() != nil && len(suggestions) > 0 {
		if raw, err := json.Marshal(suggestions); err == nil {
			if err := cacheSet(ctx, cacheKey, string(raw), u.cacheTTL); err != nil {
				logger.Warn(ctx, "failed to cache suggestions", zap.String("category", category), zap.Error(err))
			}
		}
	}
	return suggestions
}
