package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/auth"
)

// Message types understood on the client-to-server leg.
const msgAuthenticate = "authenticate"

// clientMessage is the envelope read from the socket. The token is either a
// raw JSON string or an object {"token": "..."}; both client generations are
// accepted.
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// session tracks the per-connection handshake state machine: a connection
// starts unauthenticated, is mutated at most once by a successful
// authenticate message, and carries no privileges otherwise.
type session struct {
	id            string
	sender        Sender
	authenticated bool
	subjectID     string
	isAdmin       bool
}

// Gateway accepts persistent connections, runs the credential handshake and
// registers authenticated sessions in the registry.
type Gateway struct {
	registry *Registry
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// NewGateway builds the gateway.
func NewGateway(registry *Registry, tokens *auth.TokenManager, logger *zap.Logger) *Gateway {
	return &Gateway{registry: registry, tokens: tokens, logger: logger}
}

// UpgradeRequired gates the websocket route on a proper upgrade request.
func UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler returns the websocket endpoint handler.
func (g *Gateway) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		g.serve(conn)
	})
}

func (g *Gateway) serve(conn *websocket.Conn) {
	sess := &session{id: uuid.New().String(), sender: &wsSender{conn: conn}}
	g.registry.Register(sess.id, sess.sender)
	g.logger.Info("client connected", zap.String("conn_id", sess.id))

	defer func() {
		g.registry.Leave(sess.id)
		_ = conn.Close()
		g.logger.Info("client disconnected", zap.String("conn_id", sess.id))
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		g.handleMessage(sess, raw)
	}
}

// handleMessage advances the session state machine for one inbound message.
// Unknown message types are ignored.
func (g *Gateway) handleMessage(sess *session, raw []byte) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		g.logger.Warn("malformed client message", zap.String("conn_id", sess.id), zap.Error(err))
		return
	}

	switch msg.Type {
	case msgAuthenticate:
		g.authenticate(sess, msg.Data)
	}
}

// authenticate verifies the supplied credential and, on success, joins the
// session to its per-subject group and, for admins, the admin channel. A
// failed attempt leaves the connection open and unprivileged; it is not
// closed. Repeat attempts on an authenticated session are ignored.
func (g *Gateway) authenticate(sess *session, data json.RawMessage) {
	if sess.authenticated {
		g.logger.Debug("ignoring repeat authenticate", zap.String("conn_id", sess.id))
		return
	}

	token := extractToken(data)
	if token == "" {
		g.logger.Warn("authenticate without token", zap.String("conn_id", sess.id))
		return
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Warn("socket authentication failed",
			zap.String("conn_id", sess.id), zap.Error(err))
		return
	}

	sess.authenticated = true
	sess.subjectID = claims.SubjectID
	sess.isAdmin = claims.IsAdmin

	g.registry.Join(sess.id, UserGroup(claims.SubjectID))
	g.logger.Info("session joined user group",
		zap.String("conn_id", sess.id), zap.String("user_id", claims.SubjectID))

	if claims.IsAdmin {
		g.registry.Join(sess.id, AdminGroup)
		g.logger.Info("admin session joined admin channel",
			zap.String("conn_id", sess.id), zap.String("user_id", claims.SubjectID))
	}
}

// extractToken accepts either a bare JSON string or {"token": "..."}.
func extractToken(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain
	}
	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return wrapped.Token
	}
	return ""
}

// wsSender serializes writes to a single websocket connection.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
