package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
)

func TestWebSocketRoundFlow(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	conn := dial(t, server)
	defer conn.Close()

	first := readSnapshot(t, conn, func(s domain.Snapshot) bool { return true })
	if first.Screen != domain.ScreenCategories || len(first.Categories) != 2 {
		t.Fatalf("expected category screen with 2 categories, got %+v", first)
	}

	send(t, conn, "start", nil)
	msg := readMessage(t, conn)
	if msg.Type != "alert" {
		t.Fatalf("expected alert, got %s", msg.Type)
	}
	var alert messagePayload
	if err := json.Unmarshal(msg.Payload, &alert); err != nil {
		t.Fatalf("decode alert: %v", err)
	}
	if alert.Message != app.AlertSelectCategory {
		t.Fatalf("unexpected alert %q", alert.Message)
	}

	send(t, conn, "selectCategory", map[string]any{"id": 9})
	readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.SelectedCategory == 9 })

	send(t, conn, "start", nil)
	question := readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.Screen == domain.ScreenQuestion })
	if question.Question.Number != 1 || question.Question.Total != 1 {
		t.Fatalf("unexpected question header %+v", question.Question)
	}

	answer := -1
	for i, a := range question.Question.Answers {
		if a == "4" {
			answer = i
		}
	}
	if answer < 0 {
		t.Fatalf("correct answer missing from %v", question.Question.Answers)
	}
	send(t, conn, "selectAnswer", map[string]any{"index": answer})
	readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.Question != nil && s.Question.Selected == answer })

	send(t, conn, "submit", nil)
	revealed := readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.Question != nil && !s.Question.SubmitEnabled })
	if revealed.Question.CorrectAnswer != answer || revealed.Question.WrongAnswer != -1 {
		t.Fatalf("expected correct tile %d highlighted, got %+v", answer, revealed.Question)
	}

	score := readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.Screen == domain.ScreenScore })
	if score.Score != 10 || score.Correct != 1 || score.Total != 1 {
		t.Fatalf("expected 10 points and 1 correct, got %+v", score)
	}

	send(t, conn, "playAgain", nil)
	again := readSnapshot(t, conn, func(s domain.Snapshot) bool { return s.Screen == domain.ScreenCategories })
	if again.SelectedCategory != 0 {
		t.Fatalf("expected selection cleared, got %d", again.SelectedCategory)
	}
}

func TestWebSocketRejectsUnknownMessages(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	conn := dial(t, server)
	defer conn.Close()

	readSnapshot(t, conn, func(s domain.Snapshot) bool { return true })

	send(t, conn, "cheat", nil)
	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"selectAnswer","payload":"x"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readMessage(t, conn)
	var payload messagePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != "error" || payload.Message != "invalid answer payload" {
		t.Fatalf("expected invalid answer payload error, got %s %q", msg.Type, payload.Message)
	}
}

type wireMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	categories := memory.NewCategoryRepository(memory.NewStaticCategoryLoader([]domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 18, Name: "Science: Computers"},
	}), time.Minute)
	ws := NewWSHandler(categories, fakeSource{}, app.Options{Amount: 1, RevealDelay: 20 * time.Millisecond}, zap.NewNop())
	return httptest.NewServer(NewRouter(ws, categories, nil, zap.NewNop()))
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	var msg wireMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg
}

// readSnapshot skips messages until a snapshot satisfies match.
func readSnapshot(t *testing.T, conn *websocket.Conn, match func(domain.Snapshot) bool) domain.Snapshot {
	t.Helper()
	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type != "snapshot" {
			continue
		}
		var s domain.Snapshot
		if err := json.Unmarshal(msg.Payload, &s); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if match(s) {
			return s
		}
	}
	t.Fatalf("expected snapshot not received")
	return domain.Snapshot{}
}

type fakeSource struct{}

func (fakeSource) FetchQuestions(_ context.Context, _, amount int) ([]opentdb.RawQuestion, error) {
	out := make([]opentdb.RawQuestion, 0, amount)
	for i := 0; i < amount; i++ {
		out = append(out, opentdb.RawQuestion{
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What is 2 &#43; 2?",
			CorrectAnswer:    "4",
			IncorrectAnswers: []string{"3", "5", "22"},
		})
	}
	return out, nil
}
