package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	conversationanalysis "github.com/orbsocial/backend/internal/analysis/conversation"
	scoring "github.com/orbsocial/backend/internal/analysis/emotion"
	"github.com/orbsocial/backend/internal/model/profile"
	analysisService "github.com/orbsocial/backend/internal/service/analysis"
)

func setupRouter() *chi.Mux {
	scorer := scoring.NewScorer(scoring.DefaultWeights())
	profiles := profile.NewMemoryStore()
	conversations := conversationanalysis.NewAnalyzer(5, profiles)
	svc := analysisService.NewService(scorer, nil, conversations, profiles, analysisService.Config{})

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeEmotion(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/analyze-emotion", map[string]string{"text": "I am ecstatic, I just got promoted!"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Emotion    string  `json:"emotion"`
		Confidence float64 `json:"confidence"`
		Method     string  `json:"method"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Emotion != "joy" {
		t.Fatalf("expected joy, got %s", result.Emotion)
	}
	if result.Method != "rule_based" {
		t.Fatalf("expected rule_based method, got %s", result.Method)
	}
}

func TestAnalyzeEmotionRejectsShortText(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/analyze-emotion", map[string]string{"text": " a "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeEmotionRejectsLongText(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/analyze-emotion", map[string]string{"text": strings.Repeat("x", 1001)})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeEmotionRejectsInvalidBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/analyze-emotion", bytes.NewReader([]byte("not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeAdvancedRecordsConversation(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/analyze-emotion/advanced", map[string]string{
		"text":           "I am furious about the delay",
		"userId":         "user-1",
		"conversationId": "conv-http",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		ConversationID string `json:"conversationId"`
		Emotion        string `json:"emotion"`
		Trend          string `json:"trend"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ConversationID != "conv-http" {
		t.Fatalf("expected conversation id to round-trip, got %s", result.ConversationID)
	}
	if result.Emotion != "anger" {
		t.Fatalf("expected anger, got %s", result.Emotion)
	}
	if result.Trend != "new_conversation" {
		t.Fatalf("expected new_conversation trend, got %s", result.Trend)
	}

	summaryReq := httptest.NewRequest(http.MethodGet, "/conversations/conv-http/summary", nil)
	summaryResp := httptest.NewRecorder()
	r.ServeHTTP(summaryResp, summaryReq)

	if summaryResp.Code != http.StatusOK {
		t.Fatalf("expected 200 summary, got %d", summaryResp.Code)
	}

	var summary struct {
		TotalMessages   int    `json:"totalMessages"`
		DominantEmotion string `json:"dominantEmotion"`
	}
	if err := json.Unmarshal(summaryResp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.TotalMessages != 1 {
		t.Fatalf("expected 1 message, got %d", summary.TotalMessages)
	}
	if summary.DominantEmotion != "anger" {
		t.Fatalf("expected anger dominant, got %s", summary.DominantEmotion)
	}
}

func TestSummaryUnknownConversation(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/conversations/no-such-conversation/summary", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCompareWithoutClassifier(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/analyze-emotion/compare", map[string]string{"text": "I am terrified of what comes next"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result struct {
		RuleBased struct {
			Emotion string `json:"emotion"`
		} `json:"ruleBased"`
		AIAnalyzed *json.RawMessage `json:"aiAnalyzed"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.RuleBased.Emotion != "fear" {
		t.Fatalf("expected fear on the rule side, got %s", result.RuleBased.Emotion)
	}
	if result.AIAnalyzed != nil {
		t.Fatal("aiAnalyzed must be omitted without a classifier")
	}
}
