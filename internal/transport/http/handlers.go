package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"journey-quiz-service/internal/app"
)

// users

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := a.users.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := a.users.Update(r.Context(), currentActor(r.Context()), chi.URLParam(r, "userID"), app.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := a.users.Delete(r.Context(), currentActor(r.Context()), chi.URLParam(r, "userID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// journeys

func (a *API) createJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	journey, err := a.journeys.Create(r.Context(), currentUser(r.Context()).ID, app.JourneyInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJourneyResponse(journey))
}

func (a *API) listJourneys(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	journeys, err := a.journeys.ListForUser(r.Context(), currentUser(r.Context()).ID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]journeyResponse, len(journeys))
	for i, j := range journeys {
		out[i] = toJourneyResponse(j)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getJourney(w http.ResponseWriter, r *http.Request) {
	journey, err := a.journeys.Get(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "journeyID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJourneyResponse(journey))
}

func (a *API) updateJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyUpdateRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	journey, err := a.journeys.Update(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "journeyID"), app.JourneyPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJourneyResponse(journey))
}

func (a *API) deleteJourney(w http.ResponseWriter, r *http.Request) {
	if err := a.journeys.Delete(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "journeyID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// quizzes

func (a *API) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := a.quizzes.Create(r.Context(), currentUser(r.Context()).ID, req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuizResponse(detail.Quiz, toQuestionResponses(detail.Questions, true)))
}

func (a *API) listQuizzesByJourney(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	quizzes, err := a.quizzes.ListByJourney(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "journeyID"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]quizResponse, len(quizzes))
	for i, q := range quizzes {
		out[i] = toQuizResponse(q, nil)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getQuiz(w http.ResponseWriter, r *http.Request) {
	detail, err := a.quizzes.Get(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizResponse(detail.Quiz, toQuestionResponses(detail.Questions, false)))
}

func (a *API) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizUpdateRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	quiz, err := a.quizzes.Update(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "quizID"), app.QuizPatch{
		Title:       req.Title,
		Description: req.Description,
		JourneyID:   req.JourneyID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizResponse(quiz, nil))
}

func (a *API) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := a.quizzes.Delete(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "quizID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// questions

func (a *API) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	question, err := a.questions.Create(r.Context(), currentUser(r.Context()).ID, app.QuestionInput{
		QuizID:        req.QuizID,
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuestionResponse(question, true))
}

func (a *API) listQuestionsByQuiz(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	questions, err := a.questions.ListByQuiz(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "quizID"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponses(questions, false))
}

func (a *API) getQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := a.questions.Get(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "questionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(question, false))
}

func (a *API) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionUpdateRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	question, err := a.questions.Update(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "questionID"), app.QuestionPatch{
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		QuizID:        req.QuizID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(question, true))
}

func (a *API) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := a.questions.Delete(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "questionID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := a.questions.CheckAnswer(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "questionID"), req.Answer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnswerResponse(result))
}
