package internals

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-booking-server/config"
	"restaurant-booking-server/model"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(translator *fakeTranslator, scorer *fakeScorer, store *fakeReviewStore) *IntegrityEngine {
	engine := NewIntegrityEngine(translator, scorer, store, config.Default().Integrity, "en")
	engine.now = func() time.Time { return testNow }
	return engine
}

func TestAnalyzeRatingConflict(t *testing.T) {
	scorer := &fakeScorer{scores: map[string]int{
		"loved it":    5,
		"awful place": -4,
		"it was fine": 0,
	}}

	tests := []struct {
		name          string
		content       string
		rating        float64
		wantSentiment string
		wantFlagged   bool
	}{
		{"high rating negative text", "awful place", 4, model.SentimentNegative, true},
		{"top rating negative text", "awful place", 5, model.SentimentNegative, true},
		{"low rating positive text", "loved it", 2, model.SentimentPositive, true},
		{"lowest rating positive text", "loved it", 1, model.SentimentPositive, true},
		{"zero score counts as positive", "it was fine", 1, model.SentimentPositive, true},
		{"mid rating negative text", "awful place", 3, model.SentimentNegative, false},
		{"mid rating positive text", "loved it", 3, model.SentimentPositive, false},
		{"consistent positive", "loved it", 5, model.SentimentPositive, false},
		{"consistent negative", "awful place", 1, model.SentimentNegative, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{})

			got := engine.Analyze(context.Background(), tt.content, tt.rating)
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("sentiment = %q, want %q", got.Sentiment, tt.wantSentiment)
			}
			if got.IsFlagged != tt.wantFlagged {
				t.Errorf("flagged = %v, want %v", got.IsFlagged, tt.wantFlagged)
			}
		})
	}
}

func TestAnalyzeEmptyContentSkipsAdapters(t *testing.T) {
	translator := &fakeTranslator{}
	scorer := &fakeScorer{}
	engine := newTestEngine(translator, scorer, &fakeReviewStore{})

	for _, content := range []string{"", "   ", "\n\t"} {
		got := engine.Analyze(context.Background(), content, 1)
		if got.Sentiment != model.SentimentPositive || got.IsFlagged {
			t.Errorf("Analyze(%q) = %+v, want positive and unflagged", content, got)
		}
	}
	if translator.calls != 0 || scorer.calls != 0 {
		t.Errorf("adapters called: translate=%d score=%d", translator.calls, scorer.calls)
	}
}

func TestAnalyzeAdapterFailureFailsOpen(t *testing.T) {
	t.Run("translation", func(t *testing.T) {
		scorer := &fakeScorer{scores: map[string]int{"awful": -5}}
		engine := newTestEngine(&fakeTranslator{fail: true}, scorer, &fakeReviewStore{})

		got := engine.Analyze(context.Background(), "awful", 5)
		if got.Sentiment != model.SentimentPositive || got.IsFlagged {
			t.Errorf("got %+v, want safe default", got)
		}
		if scorer.calls != 0 {
			t.Errorf("scorer called %d times after translation failure", scorer.calls)
		}
	})

	t.Run("scoring", func(t *testing.T) {
		engine := newTestEngine(&fakeTranslator{}, &fakeScorer{fail: true}, &fakeReviewStore{})

		got := engine.Analyze(context.Background(), "awful", 5)
		if got.Sentiment != model.SentimentPositive || got.IsFlagged {
			t.Errorf("got %+v, want safe default", got)
		}
	})
}

func TestAnalyzeScoresTranslatedText(t *testing.T) {
	translator := &fakeTranslator{translations: map[string]string{"đồ ăn rất tệ": "the food is very bad"}}
	scorer := &fakeScorer{scores: map[string]int{"the food is very bad": -3}}
	engine := newTestEngine(translator, scorer, &fakeReviewStore{})

	got := engine.Analyze(context.Background(), "đồ ăn rất tệ", 5)
	if got.Sentiment != model.SentimentNegative || !got.IsFlagged {
		t.Errorf("got %+v, want negative and flagged", got)
	}
}

func authorReview(id, restaurantID int, content string, age time.Duration) model.Review {
	return model.Review{
		ReviewID:     id,
		RestaurantID: restaurantID,
		UserID:       7,
		Content:      content,
		CreatedAt:    testNow.Add(-age),
	}
}

func TestCheckDuplicate(t *testing.T) {
	const content = "The pho here is really amazing!"

	tests := []struct {
		name       string
		existing   []model.Review
		wantSpam   bool
		wantReason string
	}{
		{
			name:       "same restaurant within window",
			existing:   []model.Review{authorReview(1, 1, "the pho here is REALLY amazing", 5*time.Minute)},
			wantSpam:   true,
			wantReason: model.FlagReasonSpamSameVenue,
		},
		{
			name:       "same restaurant at window boundary",
			existing:   []model.Review{authorReview(1, 1, content, 10*time.Minute)},
			wantSpam:   true,
			wantReason: model.FlagReasonSpamSameVenue,
		},
		{
			name:     "same restaurant outside window",
			existing: []model.Review{authorReview(1, 1, content, 11*time.Minute)},
			wantSpam: false,
		},
		{
			name:       "other restaurant within window",
			existing:   []model.Review{authorReview(1, 2, content, 45*time.Minute)},
			wantSpam:   true,
			wantReason: model.FlagReasonSpamCrossVenue,
		},
		{
			name:     "other restaurant outside window",
			existing: []model.Review{authorReview(1, 2, content, 61*time.Minute)},
			wantSpam: false,
		},
		{
			name:     "different content",
			existing: []model.Review{authorReview(1, 1, "waiters were rude and the soup was cold", time.Minute)},
			wantSpam: false,
		},
		{
			name: "same venue wins over cross venue",
			existing: []model.Review{
				authorReview(1, 2, content, time.Minute),
				authorReview(2, 1, content, 2*time.Minute),
			},
			wantSpam:   true,
			wantReason: model.FlagReasonSpamSameVenue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakeTranslator{}, &fakeScorer{}, &fakeReviewStore{reviews: tt.existing})

			got, err := engine.CheckDuplicate(context.Background(), 7, 1, content)
			if err != nil {
				t.Fatalf("CheckDuplicate: %v", err)
			}
			if got.IsSpam != tt.wantSpam || got.Reason != tt.wantReason {
				t.Errorf("got %+v, want spam=%v reason=%q", got, tt.wantSpam, tt.wantReason)
			}
		})
	}
}

func TestCheckDuplicateOtherAuthorIgnored(t *testing.T) {
	other := authorReview(1, 1, "great pho", time.Minute)
	other.UserID = 8
	engine := newTestEngine(&fakeTranslator{}, &fakeScorer{}, &fakeReviewStore{reviews: []model.Review{other}})

	got, err := engine.CheckDuplicate(context.Background(), 7, 1, "great pho")
	if err != nil {
		t.Fatalf("CheckDuplicate: %v", err)
	}
	if got.IsSpam {
		t.Errorf("review of another author flagged as spam")
	}
}

func TestCheckDuplicateComparesAcrossLanguages(t *testing.T) {
	translator := &fakeTranslator{translations: map[string]string{
		"phở ở đây rất ngon": "the pho here is very good",
	}}
	existing := []model.Review{authorReview(1, 1, "The pho here is very good.", time.Minute)}
	engine := newTestEngine(translator, &fakeScorer{}, &fakeReviewStore{reviews: existing})

	got, err := engine.CheckDuplicate(context.Background(), 7, 1, "phở ở đây rất ngon")
	if err != nil {
		t.Fatalf("CheckDuplicate: %v", err)
	}
	if !got.IsSpam {
		t.Errorf("translated duplicate not detected")
	}
}

func TestCheckDuplicateTranslationFailureComparesRawText(t *testing.T) {
	existing := []model.Review{authorReview(1, 1, "great pho!", time.Minute)}
	engine := newTestEngine(&fakeTranslator{fail: true}, &fakeScorer{}, &fakeReviewStore{reviews: existing})

	got, err := engine.CheckDuplicate(context.Background(), 7, 1, "Great pho")
	if err != nil {
		t.Fatalf("CheckDuplicate: %v", err)
	}
	if !got.IsSpam {
		t.Errorf("duplicate not detected on raw text")
	}
}

func TestCheckDuplicateLookupErrorPropagates(t *testing.T) {
	engine := newTestEngine(&fakeTranslator{}, &fakeScorer{}, &fakeReviewStore{err: errFake})

	_, err := engine.CheckDuplicate(context.Background(), 7, 1, "great pho")
	if !errors.Is(err, errFake) {
		t.Errorf("err = %v, want %v", err, errFake)
	}
}

func TestEvaluate(t *testing.T) {
	const content = "awful place"
	scorer := &fakeScorer{scores: map[string]int{content: -3}}

	t.Run("conflict reason wins over spam", func(t *testing.T) {
		existing := []model.Review{authorReview(1, 1, content, time.Minute)}
		engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{reviews: existing})

		verdict, err := engine.Evaluate(context.Background(), 7, 1, content, 5)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if !verdict.IsFlagged || verdict.FlagReason == nil || *verdict.FlagReason != model.FlagReasonConflict {
			t.Errorf("verdict = %+v, want conflict reason", verdict)
		}
		if verdict.Sentiment != model.SentimentNegative {
			t.Errorf("sentiment = %q", verdict.Sentiment)
		}
	})

	t.Run("spam only", func(t *testing.T) {
		existing := []model.Review{authorReview(1, 2, content, 30*time.Minute)}
		engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{reviews: existing})

		verdict, err := engine.Evaluate(context.Background(), 7, 1, content, 1)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if !verdict.IsFlagged || verdict.FlagReason == nil || *verdict.FlagReason != model.FlagReasonSpamCrossVenue {
			t.Errorf("verdict = %+v, want cross venue spam", verdict)
		}
	})

	t.Run("clean", func(t *testing.T) {
		engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{})

		verdict, err := engine.Evaluate(context.Background(), 7, 1, content, 1)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if verdict.IsFlagged || verdict.FlagReason != nil {
			t.Errorf("verdict = %+v, want unflagged", verdict)
		}
	})

	t.Run("lookup error", func(t *testing.T) {
		engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{err: errFake})

		_, err := engine.Evaluate(context.Background(), 7, 1, content, 5)
		if !errors.Is(err, errFake) {
			t.Errorf("err = %v, want %v", err, errFake)
		}
	})
}

func TestReassessEdit(t *testing.T) {
	scorer := &fakeScorer{scores: map[string]int{"loved it": 4, "awful": -4}}
	engine := newTestEngine(&fakeTranslator{}, scorer, &fakeReviewStore{})

	conflict := model.FlagReasonConflict
	spam := model.FlagReasonSpamSameVenue

	t.Run("clears stale conflict", func(t *testing.T) {
		review := model.Review{Content: "loved it", Rating: 5, IsFlagged: true, FlagReason: &conflict}
		engine.ReassessEdit(context.Background(), &review)
		if review.IsFlagged || review.FlagReason != nil {
			t.Errorf("review = %+v, want unflagged", review)
		}
	})

	t.Run("sets new conflict", func(t *testing.T) {
		review := model.Review{Content: "awful", Rating: 5}
		engine.ReassessEdit(context.Background(), &review)
		if !review.IsFlagged || review.FlagReason == nil || *review.FlagReason != model.FlagReasonConflict {
			t.Errorf("review = %+v, want conflict flag", review)
		}
		if review.Sentiment != model.SentimentNegative {
			t.Errorf("sentiment = %q", review.Sentiment)
		}
	})

	t.Run("keeps spam flag", func(t *testing.T) {
		review := model.Review{Content: "loved it", Rating: 5, IsFlagged: true, FlagReason: &spam}
		engine.ReassessEdit(context.Background(), &review)
		if !review.IsFlagged || *review.FlagReason != spam {
			t.Errorf("review = %+v, want spam flag kept", review)
		}
	})
}
