package classifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/orbsocial/backend/internal/model/emotion"
	"github.com/orbsocial/backend/internal/service/classifier"
)

func TestParseScoresExtractsArrayFromNoise(t *testing.T) {
	content := "Here is the result:\n[{\"label\": \"joy\", \"score\": 0.82}, {\"label\": \"neutral\", \"score\": 0.1}]\nDone."
	scores, err := classifier.ParseScores(content)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Label != "joy" || scores[0].Score != 0.82 {
		t.Fatalf("unexpected first score: %+v", scores[0])
	}
}

func TestParseScoresRejectsNonArrayOutput(t *testing.T) {
	for _, content := range []string{"", "I cannot classify that.", "{\"label\": \"joy\"}"} {
		if _, err := classifier.ParseScores(content); err == nil {
			t.Fatalf("expected error for content %q", content)
		}
	}
}

func TestNormalizeMapsOpenVocabularyToClosedSet(t *testing.T) {
	cases := []struct {
		raw  string
		want emotion.Label
	}{
		{"joy", emotion.Joy},
		{"Surprise", emotion.Joy},
		{"disgust", emotion.Anger},
		{"relief", emotion.Peace},
		{"grief", emotion.Sadness},
		{"nervousness", emotion.Fear},
		{"admiration", emotion.Love},
		{"some-made-up-label", emotion.Neutral},
	}
	for _, tc := range cases {
		got := classifier.Normalize([]classifier.LabelScore{{Label: tc.raw, Score: 0.9}})
		if got.Emotion != tc.want {
			t.Errorf("Normalize(%q) = %s, want %s", tc.raw, got.Emotion, tc.want)
		}
	}
}

func TestNormalizePicksHighestScoreAndClampsConfidence(t *testing.T) {
	result := classifier.Normalize([]classifier.LabelScore{
		{Label: "neutral", Score: 0.2},
		{Label: "anger", Score: 1.4},
		{Label: "joy", Score: 0.3},
	})
	if result.Emotion != emotion.Anger {
		t.Fatalf("expected anger to win, got %s", result.Emotion)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence clamped to 1.0, got %f", result.Confidence)
	}
	if result.RawLabel != "anger" {
		t.Fatalf("expected raw label anger, got %q", result.RawLabel)
	}
}

func TestClassifyDisabledReturnsUnavailable(t *testing.T) {
	svc, err := classifier.NewService(context.Background(), nil, classifier.Config{Enabled: true})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service without a chat model must report disabled")
	}
	if _, err := svc.Classify(context.Background(), "hello"); !errors.Is(err, classifier.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
