package internals

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"restaurant-booking-server/config"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/metrics"
	"restaurant-booking-server/model"
)

// Translator turns text into targetLang. An empty sourceLang lets the
// service detect it.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// SentimentScorer returns a signed polarity score for text.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (int, error)
}

// AuthorReviewStore is the review lookup the duplicate check needs.
type AuthorReviewStore interface {
	GetAuthorReviewsSince(ctx context.Context, userID, restaurantID int, sameRestaurant bool, since time.Time, limit int) ([]model.Review, error)
}

type Analysis struct {
	Sentiment string
	IsFlagged bool
}

type DuplicateCheck struct {
	IsSpam bool
	Reason string
}

// Verdict is what gets stored on a review after both checks ran.
type Verdict struct {
	Sentiment  string
	IsFlagged  bool
	FlagReason *string
}

type IntegrityEngine struct {
	translator Translator
	scorer     SentimentScorer
	reviews    AuthorReviewStore
	cfg        config.IntegrityConfig
	pivotLang  string
	now        func() time.Time
}

func NewIntegrityEngine(translator Translator, scorer SentimentScorer, reviews AuthorReviewStore, cfg config.IntegrityConfig, pivotLang string) *IntegrityEngine {
	return &IntegrityEngine{
		translator: translator,
		scorer:     scorer,
		reviews:    reviews,
		cfg:        cfg,
		pivotLang:  pivotLang,
		now:        time.Now,
	}
}

// SentimentFromScore maps a polarity score to a sentiment label; zero counts as
// positive.
func SentimentFromScore(score int) string {
	if score < 0 {
		return model.SentimentNegative
	}
	return model.SentimentPositive
}

// IsRatingConflict reports whether the numeric rating contradicts the sentiment.
// A rating of 3 never conflicts.
func IsRatingConflict(rating float64, sentiment string) bool {
	if rating >= 4 && sentiment == model.SentimentNegative {
		return true
	}
	if rating <= 2 && sentiment == model.SentimentPositive {
		return true
	}
	return false
}

// Analyze classifies content and checks it against rating. It never fails:
// translation or scoring errors yield a positive, unflagged result.
func (engine *IntegrityEngine) Analyze(ctx context.Context, content string, rating float64) Analysis {
	safeDefault := Analysis{Sentiment: model.SentimentPositive, IsFlagged: false}

	if strings.TrimSpace(content) == "" {
		return safeDefault
	}

	translated, err := engine.translator.Translate(ctx, content, engine.pivotLang, "")
	if err != nil {
		metrics.AdapterFailures.WithLabelValues("translation").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("translation failed, review left unflagged")
		return safeDefault
	}

	score, err := engine.scorer.Score(ctx, translated)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues("sentiment").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("sentiment scoring failed, review left unflagged")
		return safeDefault
	}

	sentiment := SentimentFromScore(score)
	return Analysis{
		Sentiment: sentiment,
		IsFlagged: IsRatingConflict(rating, sentiment),
	}
}

// CheckDuplicate compares content with the author's recent reviews, first at
// the same restaurant, then at other restaurants. Lookup errors are returned.
func (engine *IntegrityEngine) CheckDuplicate(ctx context.Context, authorID, restaurantID int, content string) (DuplicateCheck, error) {
	normalized := engine.normalizeForComparison(ctx, content)
	if normalized == "" {
		return DuplicateCheck{}, nil
	}

	now := engine.now()
	rules := []struct {
		sameRestaurant bool
		window         time.Duration
		reason         string
	}{
		{true, engine.cfg.SameVenueWindow, model.FlagReasonSpamSameVenue},
		{false, engine.cfg.CrossVenueWindow, model.FlagReasonSpamCrossVenue},
	}

	for _, rule := range rules {
		candidates, err := engine.reviews.GetAuthorReviewsSince(ctx, authorID, restaurantID, rule.sameRestaurant, now.Add(-rule.window), engine.cfg.MaxDuplicateCandidates)
		if err != nil {
			return DuplicateCheck{}, err
		}

		for _, candidate := range candidates {
			other := engine.normalizeForComparison(ctx, candidate.Content)
			if Similarity(normalized, other) >= engine.cfg.SimilarityThreshold {
				return DuplicateCheck{IsSpam: true, Reason: rule.reason}, nil
			}
		}
	}

	return DuplicateCheck{}, nil
}

// normalizeForComparison translates text to the pivot language and normalizes
// it. If translation fails the raw text is compared.
func (engine *IntegrityEngine) normalizeForComparison(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	translated, err := engine.translator.Translate(ctx, text, engine.pivotLang, "")
	if err != nil {
		metrics.AdapterFailures.WithLabelValues("translation").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("translation failed, comparing raw text")
		translated = text
	}

	return NormalizeContent(translated)
}

// Evaluate runs Analyze and CheckDuplicate concurrently and merges them. A
// conflict reason wins over a spam reason.
func (engine *IntegrityEngine) Evaluate(ctx context.Context, authorID, restaurantID int, content string, rating float64) (Verdict, error) {
	var analysis Analysis
	var duplicate DuplicateCheck

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		analysis = engine.Analyze(groupCtx, content, rating)
		return nil
	})
	group.Go(func() error {
		var err error
		duplicate, err = engine.CheckDuplicate(groupCtx, authorID, restaurantID, content)
		return err
	})
	if err := group.Wait(); err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{
		Sentiment: analysis.Sentiment,
		IsFlagged: analysis.IsFlagged || duplicate.IsSpam,
	}
	switch {
	case analysis.IsFlagged:
		reason := model.FlagReasonConflict
		verdict.FlagReason = &reason
	case duplicate.IsSpam:
		reason := duplicate.Reason
		verdict.FlagReason = &reason
	}

	return verdict, nil
}

// ReassessEdit re-runs the consistency check on an edited review. A stale
// conflict flag is cleared; spam flags are kept.
func (engine *IntegrityEngine) ReassessEdit(ctx context.Context, review *model.Review) {
	analysis := engine.Analyze(ctx, review.Content, review.Rating)
	review.Sentiment = analysis.Sentiment

	if analysis.IsFlagged {
		reason := model.FlagReasonConflict
		review.IsFlagged = true
		review.FlagReason = &reason
		return
	}

	if review.FlagReason != nil && *review.FlagReason == model.FlagReasonConflict {
		review.IsFlagged = false
		review.FlagReason = nil
	}
}
