package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/infra/memory"
	"journey-quiz-service/internal/infra/security"
)

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newServices() Services {
	store := memory.NewStore()
	hasher := security.NewBcryptHasher(4)
	issuer := security.NewJWTIssuer("test-secret-test-secret", "test", time.Hour)
	blocklist := memory.NewTokenBlocklist()
	owners := app.NewOwnershipResolver(store.Journeys(), store.Quizzes(), store.Questions())
	return Services{
		Auth:      app.NewAuthService(store.Users(), hasher, issuer, blocklist),
		Users:     app.NewUserService(store.Users(), hasher, blocklist),
		Journeys:  app.NewJourneyService(store.Journeys(), owners),
		Quizzes:   app.NewQuizService(store.Quizzes(), store.Questions(), owners),
		Questions: app.NewQuestionService(store.Questions(), owners),
	}
}

func newTestServer(t *testing.T, opts RouterOptions) *testServer {
	t.Helper()
	srv := httptest.NewServer(NewRouter(newServices(), opts))
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

// do sends a JSON request and decodes a JSON response body, if any, into out.
func (s *testServer) do(method, path, token string, body any, out any) *http.Response {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	if err != nil {
		s.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("read body: %v", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			s.t.Fatalf("decode %s %s response %q: %v", method, path, raw, err)
		}
	}
	return resp
}

func (s *testServer) status(method, path, token string, body any) int {
	s.t.Helper()
	return s.do(method, path, token, body, nil).StatusCode
}

// signup registers and logs in, returning the access token and user id.
func (s *testServer) signup(username string) (string, string) {
	s.t.Helper()
	var user userResponse
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, &user)
	if resp.StatusCode != http.StatusCreated {
		s.t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
	var tok tokenResponse
	resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	}, &tok)
	if resp.StatusCode != http.StatusOK || tok.AccessToken == "" {
		s.t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	return tok.AccessToken, user.ID
}

func (s *testServer) createJourney(token, title string) journeyResponse {
	s.t.Helper()
	var j journeyResponse
	resp := s.do(http.MethodPost, "/api/journeys", token, map[string]string{"title": title, "description": "d"}, &j)
	if resp.StatusCode != http.StatusCreated {
		s.t.Fatalf("create journey: status %d", resp.StatusCode)
	}
	return j
}

func (s *testServer) createQuiz(token string, journeyID *string, title string) quizResponse {
	s.t.Helper()
	var q quizResponse
	resp := s.do(http.MethodPost, "/api/quizzes", token, map[string]any{
		"title":       title,
		"description": "d",
		"journey_id":  journeyID,
	}, &q)
	if resp.StatusCode != http.StatusCreated {
		s.t.Fatalf("create quiz: status %d", resp.StatusCode)
	}
	return q
}

func (s *testServer) createQuestion(token, quizID, text string, options []string, answer string) questionResponse {
	s.t.Helper()
	var q questionResponse
	resp := s.do(http.MethodPost, "/api/questions", token, map[string]any{
		"quiz_id":        quizID,
		"text":           text,
		"options":        options,
		"correct_answer": answer,
	}, &q)
	if resp.StatusCode != http.StatusCreated {
		s.t.Fatalf("create question: status %d", resp.StatusCode)
	}
	return q
}
