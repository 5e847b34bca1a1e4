package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbsocial/backend/internal/analysis/conversation"
	analysisService "github.com/orbsocial/backend/internal/service/analysis"
	"github.com/orbsocial/backend/pkg/utils"
)

// Handler 情绪分析的HTTP处理器
type Handler struct {
	svc *analysisService.Service
}

// New 创建分析处理器
func New(svc *analysisService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze-emotion", h.handleAnalyze)
	r.Post("/analyze-emotion/advanced", h.handleAnalyzeAdvanced)
	r.Post("/analyze-emotion/compare", h.handleCompare)
	r.Get("/conversations/{conversationID}/summary", h.handleSummary)
}

type analyzeRequest struct {
	Text           string `json:"text"`
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
}

// handleAnalyze 单条文本的规则打分
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.Text)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleAnalyzeAdvanced 上下文感知的完整分析通路
func (h *Handler) handleAnalyzeAdvanced(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeAdvanced(r.Context(), req.Text, req.UserID, req.ConversationID)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleCompare 并排返回规则与模型两条通路的结果
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Compare(r.Context(), req.Text)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleSummary 返回会话的情绪汇总
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	summary, err := h.svc.Summarize(conversationID)
	if err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			utils.RespondError(w, http.StatusNotFound, "conversation not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to summarize conversation")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return analyzeRequest{}, false
	}
	return req, true
}

func respondAnalysisError(w http.ResponseWriter, err error) {
	if errors.Is(err, analysisService.ErrTextTooShort) || errors.Is(err, analysisService.ErrTextTooLong) {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, "analysis failed")
}
