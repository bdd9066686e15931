package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/rewrite"
)

const (
	requestWait = 10 * time.Second
	writeWait   = 5 * time.Second
)

// Stream message types
const (
	MessageIteration = "iteration"
	MessageResult    = "result"
	MessageError     = "error"
)

// StreamMessage is one frame sent by the stream endpoint. Exactly one of
// the payload fields is set, matching Type.
type StreamMessage struct {
	Type      string             `json:"type"`
	Iteration *rewrite.Iteration `json:"iteration,omitempty"`
	Result    *optimizer.Result  `json:"result,omitempty"`
	Error     *ErrorResponse     `json:"error,omitempty"`
}

// handleStream reads one OptimizeRequest, then sends an iteration frame
// per saturation step followed by a single result or error frame. Closing
// the socket early cancels the run.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := GetRequestID(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, http.Header{RequestIDHeader: []string{id}})
	if err != nil {
		// Upgrade has already replied
		return
	}
	defer conn.Close()

	log := s.logger.With(zap.String("request_id", id), zap.String("subject", GetSubject(r.Context())))

	conn.SetReadLimit(MaxRequestBytes)
	_ = conn.SetReadDeadline(time.Now().Add(requestWait))
	var req OptimizeRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Debug("stream request unreadable", zap.Error(err))
		closeWith(conn, websocket.CloseUnsupportedData, "expected an optimize request")
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	opt, err := s.opt.Derive(req.Groups...)
	if err != nil {
		s.sendError(conn, log, err)
		return
	}

	res, err := opt.Stream(ctx, req.Expr, func(it rewrite.Iteration) {
		if err := send(conn, StreamMessage{Type: MessageIteration, Iteration: &it}); err != nil {
			log.Debug("dropping stream client", zap.Error(err))
			cancel()
		}
	})
	if err != nil {
		s.sendError(conn, log, err)
		return
	}
	if res.StopReason == rewrite.Canceled && ctx.Err() != nil {
		return
	}

	if err := send(conn, StreamMessage{Type: MessageResult, Result: res}); err != nil {
		log.Debug("failed to send stream result", zap.Error(err))
		return
	}
	closeWith(conn, websocket.CloseNormalClosure, "")
}

func (s *Server) sendError(conn *websocket.Conn, log *zap.Logger, err error) {
	_, body := describe(err)
	if sendErr := send(conn, StreamMessage{Type: MessageError, Error: body}); sendErr != nil {
		log.Debug("failed to send stream error", zap.Error(sendErr))
		return
	}
	closeWith(conn, websocket.CloseNormalClosure, "")
}

func send(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(writeWait))
}
