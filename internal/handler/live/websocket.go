package live

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	analysisService "github.com/orbsocial/backend/internal/service/analysis"
)

// Handler WebSocket实时分析处理器
type Handler struct {
	svc      *analysisService.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(svc *analysisService.Service) *Handler {
	return &Handler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/analyze", h.handleAnalyzeStream)
}

type inboundFrame struct {
	Text           string `json:"text"`
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
}

type outboundFrame struct {
	Type   string `json:"type"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleAnalyzeStream 在单个连接上循环处理分析请求。
// 每个连接的会话标识在首次分析后保持稳定，客户端无需自己生成。
func (h *Handler) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conversationID := ""
	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[live] unexpected close: %v", err)
			}
			return
		}

		if frame.ConversationID != "" {
			conversationID = frame.ConversationID
		}

		result, err := h.svc.AnalyzeAdvanced(r.Context(), frame.Text, frame.UserID, conversationID)
		if err != nil {
			if writeErr := h.writeError(conn, err); writeErr != nil {
				return
			}
			continue
		}

		conversationID = result.ConversationID
		if err := conn.WriteJSON(outboundFrame{Type: "analysis", Result: result}); err != nil {
			log.Printf("[live] write failed: %v", err)
			return
		}
	}
}

func (h *Handler) writeError(conn *websocket.Conn, err error) error {
	message := "analysis failed"
	if errors.Is(err, analysisService.ErrTextTooShort) || errors.Is(err, analysisService.ErrTextTooLong) {
		message = err.Error()
	}
	return conn.WriteJSON(outboundFrame{Type: "error", Error: message})
}
