package feedback

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbsocial/backend/internal/model/emotion"
	feedbackService "github.com/orbsocial/backend/internal/service/feedback"
	"github.com/orbsocial/backend/pkg/utils"
)

// Handler 反馈收集的HTTP处理器
type Handler struct {
	svc *feedbackService.Service
}

// New 创建反馈处理器
func New(svc *feedbackService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册反馈相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.handleSubmit)
	r.Get("/feedback/stats", h.handleStats)
	r.Get("/feedback/suggestions", h.handleSuggestions)
}

// handleSubmit 记录一条用户纠错反馈
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalText        string  `json:"originalText"`
		PredictedEmotion    string  `json:"predictedEmotion"`
		PredictedConfidence float64 `json:"predictedConfidence"`
		CorrectedEmotion    string  `json:"correctedEmotion"`
		UserConfidence      float64 `json:"userConfidence"`
		FeedbackType        string  `json:"feedbackType"`
		Notes               string  `json:"notes"`
		DetectionMethod     string  `json:"detectionMethod"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.OriginalText == "" || req.CorrectedEmotion == "" {
		utils.RespondError(w, http.StatusBadRequest, "originalText and correctedEmotion are required")
		return
	}

	id, isNewPattern, err := h.svc.Record(r.Context(), feedbackService.RecordInput{
		OriginalText:        req.OriginalText,
		Predicted:           emotion.Label(req.PredictedEmotion),
		PredictedConfidence: req.PredictedConfidence,
		Corrected:           req.CorrectedEmotion,
		UserConfidence:      req.UserConfidence,
		FeedbackType:        req.FeedbackType,
		Notes:               req.Notes,
		DetectionMethod:     req.DetectionMethod,
	})
	if err != nil {
		if errors.Is(err, feedbackService.ErrInvalidCorrection) || errors.Is(err, feedbackService.ErrInvalidPrediction) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[feedback] record failed: %v", err)
		utils.RespondError(w, http.StatusServiceUnavailable, "feedback storage unavailable")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":           id,
		"isNewPattern": isNewPattern,
		"message":      "feedback recorded",
	})
}

// handleStats 返回反馈语料的统计信息
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		log.Printf("[feedback] stats failed: %v", err)
		utils.RespondError(w, http.StatusServiceUnavailable, "feedback storage unavailable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}

// handleSuggestions 返回聚合出的改进建议
func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.svc.Suggestions(r.Context())
	if err != nil {
		log.Printf("[feedback] suggestions failed: %v", err)
		utils.RespondError(w, http.StatusServiceUnavailable, "feedback storage unavailable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
