package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cardline/internal/game"
	"cardline/internal/shared/logger"
)

type Handler struct {
	registry *game.Registry
	hub      *Hub
	tokens   *TokenManager
}

func NewHandler(registry *game.Registry, hub *Hub, tokens *TokenManager) *Handler {
	return &Handler{registry: registry, hub: hub, tokens: tokens}
}

func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/ws/create", h.CreateRoom)
	engine.GET("/ws/join/:code", h.JoinRoom)
	engine.GET("/ws/resume", h.ResumeSession)
}

// Origin is enforced by the router's allow-list middleware before the
// upgrade; gorilla's same-host default would reject every browser client.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (h *Handler) CreateRoom(ctx *gin.Context) {
	name := displayName(ctx.Query("name"))
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Criticalf("[WS] Upgrade failed: %v", err)
		return
	}

	token := h.tokens.Generate()
	room, player, err := h.registry.CreateRoom(name, token)
	if err != nil {
		closeWith(conn, game.ErrorCode(err))
		return
	}
	h.attach(conn, room, player.ID, token)
}

func (h *Handler) JoinRoom(ctx *gin.Context) {
	name := displayName(ctx.Query("name"))
	code := strings.ToUpper(strings.TrimSpace(ctx.Param("code")))
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Criticalf("[WS] Upgrade failed: %v", err)
		return
	}

	token := h.tokens.Generate()
	room, player, err := h.registry.JoinRoom(ctx.Request.Context(), code, name, token)
	if err != nil {
		// The join was rejected before any state changed; tell the caller
		// which guard fired, then drop the socket.
		if data, encErr := encodeEvent(game.ErrorEvent{Code: game.ErrorCode(err), Message: err.Error()}); encErr == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
		closeWith(conn, game.ErrorCode(err))
		return
	}
	h.attach(conn, room, player.ID, token)
}

// ResumeSession reattaches a token to its live (room, player) pair. Stale
// tokens fail silently per the session contract: the socket just closes and
// the client starts fresh.
func (h *Handler) ResumeSession(ctx *gin.Context) {
	token := ctx.Query("token")
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Criticalf("[WS] Upgrade failed: %v", err)
		return
	}
	if h.tokens.Verify(token) != nil {
		closeWith(conn, "")
		return
	}
	room, player, ok := h.registry.Resume(ctx.Request.Context(), token)
	if !ok {
		closeWith(conn, "")
		return
	}
	h.attach(conn, room, player.ID, "")
}

// attach registers the socket in the hub, flags the player connected and
// starts the pumps. A non-empty token means a fresh session was issued and
// is delivered as the first frame.
func (h *Handler) attach(conn *websocket.Conn, room *game.Room, playerID, token string) {
	c := newClient(conn, h.hub, room, playerID)
	h.hub.register(room.Code(), playerID, c)
	if token != "" {
		h.hub.Unicast(playerID, game.SessionTokenIssued{Token: token})
	}
	room.Do(game.CommandEnvelope{From: playerID, Cmd: game.SetConnected{Connected: true}})
	go c.writePump()
	go c.readPump()
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Player"
	}
	if runes := []rune(name); len(runes) > 24 {
		name = string(runes[:24])
	}
	return name
}

func closeWith(conn *websocket.Conn, reason string) {
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
	conn.Close()
}
