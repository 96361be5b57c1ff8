package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// WSHandler runs one game per WebSocket connection.
type WSHandler struct {
	categories app.CategoryRepository
	source     app.QuestionSource
	opts       app.Options
	logger     *zap.Logger
	upgrader   websocket.Upgrader
}

// NewWSHandler builds a handler. opts.Rand must be nil: every game gets its own source.
func NewWSHandler(categories app.CategoryRepository, source app.QuestionSource, opts app.Options, logger *zap.Logger) *WSHandler {
	opts.Rand = nil
	return &WSHandler{
		categories: categories,
		source:     source,
		opts:       opts,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type categoryPayload struct {
	ID int `json:"id"`
}

type answerPayload struct {
	Index int `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// wsView queues game output for the connection writer.
type wsView struct {
	send chan<- outboundMessage[any]
	stop <-chan struct{}
}

func (v *wsView) Render(s domain.Snapshot) {
	v.push(outboundMessage[any]{Type: "snapshot", Payload: s})
}

func (v *wsView) Alert(message string) {
	v.push(outboundMessage[any]{Type: "alert", Payload: messagePayload{Message: message}})
}

func (v *wsView) push(msg outboundMessage[any]) {
	select {
	case v.send <- msg:
	case <-v.stop:
	}
}

// ServeWS upgrades HTTP requests to websockets and turns inbound messages into game events.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	stop := make(chan struct{})
	var stopOnce sync.Once
	halt := func() { stopOnce.Do(func() { close(stop) }) }

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-send:
				if err := conn.WriteJSON(msg); err != nil {
					h.logger.Debug("ws write error", zap.Error(err))
					halt()
					_ = conn.Close()
					return
				}
			case <-stop:
				return
			}
		}
	}()

	view := &wsView{send: send, stop: stop}
	ctx, cancel := context.WithCancel(r.Context())
	game := app.NewGame(h.categories, h.source, view, h.logger, h.opts)
	gameDone := make(chan struct{})
	go func() {
		defer close(gameDone)
		_ = game.Run(ctx)
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		ev, errMsg := decodeEvent(inbound)
		if errMsg != "" {
			view.push(outboundMessage[any]{Type: "error", Payload: messagePayload{Message: errMsg}})
			continue
		}
		game.Post(ev)
	}

	halt()
	cancel()
	<-gameDone
	<-writerDone
}

func decodeEvent(inbound inboundMessage) (app.Event, string) {
	switch inbound.Type {
	case "selectCategory":
		var payload categoryPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return nil, "invalid category payload"
		}
		return app.SelectCategory{ID: payload.ID}, ""
	case "start":
		return app.Start{}, ""
	case "selectAnswer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return nil, "invalid answer payload"
		}
		return app.SelectAnswer{Index: payload.Index}, ""
	case "submit":
		return app.Submit{}, ""
	case "playAgain":
		return app.PlayAgain{}, ""
	default:
		return nil, "unsupported message type"
	}
}
