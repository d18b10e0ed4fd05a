package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"matchpoint/internal/api/controller"
	"matchpoint/internal/api/service"
	"matchpoint/internal/hub"
	"matchpoint/internal/validator"
	"matchpoint/pkg/proto"
)

var tracer = otel.Tracer("server")

// Server wires the gin router: the REST surface, the websocket state
// stream, and the static hot-seat UI.
type Server struct {
	router      *gin.Engine
	hub         *hub.Hub
	gameService service.GameService
	upgrader    websocket.Upgrader
}

// NewServer builds the router.
func NewServer(h *hub.Hub, gc *controller.GameController, gameService service.GameService, webDir string) *Server {
	s := &Server{
		hub:         h,
		gameService: gameService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/sessions", gc.CreateSession)
	api.GET("/sessions/:id", gc.State)
	api.POST("/sessions/:id/move", gc.SubmitMove)
	api.POST("/sessions/:id/new-round", gc.NewRound)
	api.POST("/sessions/:id/new-match", gc.NewMatch)
	api.GET("/sessions/:id/results", gc.Results)

	router.GET("/ws", s.handleWebSocket)

	if webDir != "" {
		router.StaticFile("/", filepath.Join(webDir, "index.html"))
	}

	s.router = router
	return s
}

// Engine exposes the router for the HTTP server.
func (s *Server) Engine() *gin.Engine {
	return s.router
}

// handleWebSocket attaches a screen to a session's state stream. The
// socket receives a snapshot immediately and after every state change, and
// may submit move/new_round/new_match commands.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	sessionID := c.Query("sessionId")
	span.SetAttributes(attribute.String("session.id", sessionID))

	if _, err := s.gameService.State(ctx, sessionID); err != nil {
		span.SetStatus(codes.Error, "unknown session")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upgrade connection")
		return
	}

	client := hub.NewClient(sessionID)
	s.hub.Register(client)

	go s.writePump(conn, client)
	go s.readPump(conn, client)

	// Initial snapshot so the screen can render without a separate fetch.
	if snap, err := s.gameService.State(ctx, sessionID); err == nil {
		s.hub.Publish(sessionID, snap)
	}
}

// writePump drains the client's send channel into the socket.
func (s *Server) writePump(conn *websocket.Conn, client *hub.Client) {
	defer conn.Close()

	for data := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("failed to write to stream client", "session.id", client.SessionID, "error", err)
			return
		}
	}
}

// readPump applies incoming commands until the socket closes.
func (s *Server) readPump(conn *websocket.Conn, client *hub.Client) {
	defer func() {
		s.hub.Unregister(client)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleStreamMessage(client, raw)
	}
}

func (s *Server) handleStreamMessage(client *hub.Client, raw []byte) {
	ctx, span := tracer.Start(context.Background(), "server.handleStreamMessage", trace.WithAttributes(
		attribute.String("session.id", client.SessionID),
	))
	defer span.End()

	var msg proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.WarnContext(ctx, "malformed stream message", "session.id", client.SessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed stream message")
		s.sendError(client, "malformed message")
		return
	}

	if err := validator.Get().Struct(msg); err != nil {
		slog.WarnContext(ctx, "invalid stream message", "session.id", client.SessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid stream message")
		s.sendError(client, "invalid message")
		return
	}
	span.SetAttributes(attribute.String("message.type", msg.Type))

	switch msg.Type {
	case proto.TypeMove:
		if msg.Index == nil {
			slog.WarnContext(ctx, "move message without index", "session.id", client.SessionID)
			span.SetStatus(codes.Error, "move message without index")
			s.sendError(client, "move requires an index")
			return
		}
		// Rejected moves change nothing and publish nothing; the screen
		// keeps its current render.
		if _, _, err := s.gameService.SubmitMove(ctx, client.SessionID, *msg.Index); err != nil {
			slog.WarnContext(ctx, "stream move failed", "session.id", client.SessionID, "error", err)
			span.RecordError(err)
		}

	case proto.TypeNewRound:
		if _, err := s.gameService.StartNewRound(ctx, client.SessionID); err != nil {
			slog.WarnContext(ctx, "stream new round failed", "session.id", client.SessionID, "error", err)
			span.RecordError(err)
		}

	case proto.TypeNewMatch:
		if _, err := s.gameService.StartNewMatch(ctx, client.SessionID); err != nil {
			slog.WarnContext(ctx, "stream new match failed", "session.id", client.SessionID, "error", err)
			span.RecordError(err)
		}
	}
}

// sendError replies to the offending socket only. Called from the socket's
// read goroutine, so the Send channel is still owned by this connection.
func (s *Server) sendError(client *hub.Client, message string) {
	data, err := json.Marshal(proto.ServerToClientMessage{Type: proto.TypeError, Error: message})
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
