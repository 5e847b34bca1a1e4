package feedback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/orbsocial/backend/internal/model/emotion"
	feedbackmodel "github.com/orbsocial/backend/internal/model/feedback"
	feedbackservice "github.com/orbsocial/backend/internal/service/feedback"
)

func newService() *feedbackservice.Service {
	return feedbackservice.NewService(feedbackmodel.NewMemoryRepository())
}

func record(t *testing.T, svc *feedbackservice.Service, text string) (string, bool) {
	t.Helper()
	id, newPattern, err := svc.Record(context.Background(), feedbackservice.RecordInput{
		OriginalText:        text,
		Predicted:           emotion.Neutral,
		PredictedConfidence: 0.6,
		Corrected:           "joy",
		UserConfidence:      1.0,
	})
	if err != nil {
		t.Fatalf("Record err: %v", err)
	}
	return id, newPattern
}

func TestRecordReturnsIDAndNewPatternFlag(t *testing.T) {
	svc := newService()

	id, newPattern := record(t, svc, "i won a lottery")
	if id == "" {
		t.Fatal("expected a feedback id")
	}
	if !newPattern {
		t.Fatal("first (predicted, corrected) pair should be flagged as new")
	}

	_, newPattern = record(t, svc, "i got promoted")
	if newPattern {
		t.Fatal("repeated pair should not be flagged as new")
	}
}

func TestRecordRejectsUnknownLabel(t *testing.T) {
	svc := newService()

	_, _, err := svc.Record(context.Background(), feedbackservice.RecordInput{
		OriginalText: "some text",
		Predicted:    emotion.Neutral,
		Corrected:    "euphoria-extreme",
	})
	if err == nil {
		t.Fatal("expected error for unknown corrected label")
	}
}

func TestRecordRejectsUnknownPredictedLabel(t *testing.T) {
	svc := newService()

	_, _, err := svc.Record(context.Background(), feedbackservice.RecordInput{
		OriginalText: "some text",
		Predicted:    emotion.Label("confuzzled"),
		Corrected:    "joy",
	})
	if !errors.Is(err, feedbackservice.ErrInvalidPrediction) {
		t.Fatalf("expected ErrInvalidPrediction, got %v", err)
	}
}

func TestSuggestionEmissionThreshold(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	record(t, svc, "example one")
	record(t, svc, "example two")

	suggestions, err := svc.Suggestions(ctx)
	if err != nil {
		t.Fatalf("Suggestions err: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestion below threshold, got %d", len(suggestions))
	}

	record(t, svc, "example three")
	suggestions, err = svc.Suggestions(ctx)
	if err != nil {
		t.Fatalf("Suggestions err: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected exactly one suggestion at threshold, got %d", len(suggestions))
	}
	if suggestions[0].Priority != feedbackmodel.PriorityMedium {
		t.Fatalf("expected medium priority at 3 entries, got %s", suggestions[0].Priority)
	}

	record(t, svc, "example four")
	record(t, svc, "example five")
	suggestions, err = svc.Suggestions(ctx)
	if err != nil {
		t.Fatalf("Suggestions err: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Priority != feedbackmodel.PriorityHigh {
		t.Fatalf("expected one high priority suggestion at 5 entries, got %+v", suggestions)
	}
	if suggestions[0].Count != 5 {
		t.Fatalf("expected count 5, got %d", suggestions[0].Count)
	}
}

func TestSuggestionsOrderedByCount(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Record(ctx, feedbackservice.RecordInput{
			OriginalText:        "angry text",
			Predicted:           emotion.Neutral,
			PredictedConfidence: 0.6,
			Corrected:           "anger",
		}); err != nil {
			t.Fatalf("Record err: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		record(t, svc, "joyful text")
	}

	suggestions, err := svc.Suggestions(ctx)
	if err != nil {
		t.Fatalf("Suggestions err: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected two suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Corrected != emotion.Joy || suggestions[1].Corrected != emotion.Anger {
		t.Fatalf("expected descending count order, got %+v", suggestions)
	}
}

func TestSuggestionExamplesCapped(t *testing.T) {
	svc := newService()

	for i := 0; i < 8; i++ {
		record(t, svc, "repeated example")
	}

	suggestions, err := svc.Suggestions(context.Background())
	if err != nil {
		t.Fatalf("Suggestions err: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(suggestions))
	}
	if len(suggestions[0].Examples) != 5 {
		t.Fatalf("expected examples capped at 5, got %d", len(suggestions[0].Examples))
	}
}

func TestStats(t *testing.T) {
	svc := newService()

	record(t, svc, "stats example")

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if stats.TotalFeedback != 1 {
		t.Fatalf("expected 1 feedback entry, got %d", stats.TotalFeedback)
	}
	if stats.EmotionDistribution[emotion.Joy] != 1 {
		t.Fatalf("unexpected distribution: %v", stats.EmotionDistribution)
	}
}
