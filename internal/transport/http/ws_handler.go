package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"journey-quiz-service/internal/app"
)

// WSHandler serves practice sessions: the learner answers the questions of one
// of their quizzes and receives a verdict and running score after each answer.
type WSHandler struct {
	auth      *app.AuthService
	quizzes   *app.QuizService
	questions *app.QuestionService
	upgrader  websocket.Upgrader
}

func NewWSHandler(auth *app.AuthService, quizzes *app.QuizService, questions *app.QuestionService) *WSHandler {
	return &WSHandler{
		auth:      auth,
		quizzes:   quizzes,
		questions: questions,
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

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type joinedPayload struct {
	QuizID         string             `json:"quizId"`
	Title          string             `json:"title"`
	TotalQuestions int                `json:"totalQuestions"`
	Questions      []questionResponse `json:"questions"`
}

type answerResult struct {
	QuestionID    string  `json:"questionId"`
	Correct       bool    `json:"correct"`
	CorrectAnswer *string `json:"correctAnswer,omitempty"`
	Score         int     `json:"score"`
	Answered      int     `json:"answered"`
	Total         int     `json:"total"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// practiceScore counts each question once; the first answer decides it.
type practiceScore struct {
	total    int
	verdicts map[string]bool
}

// record reports whether this was the first answer to questionID.
func (s *practiceScore) record(questionID string, correct bool) bool {
	if _, seen := s.verdicts[questionID]; seen {
		return false
	}
	s.verdicts[questionID] = correct
	return true
}

func (s *practiceScore) score() int {
	n := 0
	for _, ok := range s.verdicts {
		if ok {
			n++
		}
	}
	return n
}

// ServeWS authenticates and authorizes before upgrading so failures surface as plain HTTP errors.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	user, _, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := h.quizzes.Get(r.Context(), user.ID, quizID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	emit := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	progress := &practiceScore{total: len(detail.Questions), verdicts: make(map[string]bool)}
	emit(outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		QuizID:         detail.Quiz.ID,
		Title:          detail.Quiz.Title,
		TotalQuestions: progress.total,
		Questions:      toQuestionResponses(detail.Questions, false),
	}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" {
				emit(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			result, err := h.questions.CheckQuizAnswer(r.Context(), user.ID, quizID, payload.QuestionID, payload.Answer)
			if err != nil {
				emit(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			first := progress.record(payload.QuestionID, result.Correct)
			out := answerResult{
				QuestionID: payload.QuestionID,
				Correct:    result.Correct,
				Score:      progress.score(),
				Answered:   len(progress.verdicts),
				Total:      progress.total,
			}
			if result.CorrectAnswer != "" {
				answer := result.CorrectAnswer
				out.CorrectAnswer = &answer
			}
			emit(outboundMessage[any]{Type: "answerResult", Payload: out})
			if first && out.Answered == out.Total {
				emit(outboundMessage[any]{Type: "completed", Payload: out})
			}
		default:
			emit(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(send)
	<-writerDone
}
