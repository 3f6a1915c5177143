package http

import (
	"context"
	"net/http"
	"strings"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/domain"
)

type ctxKey string

const (
	ctxKeyUser   ctxKey = "user"
	ctxKeyClaims ctxKey = "claims"
)

func withPrincipal(ctx context.Context, user domain.User, claims domain.Claims) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUser, user)
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// currentUser returns the user attached by requireUser.
func currentUser(ctx context.Context) domain.User {
	user, _ := ctx.Value(ctxKeyUser).(domain.User)
	return user
}

func currentClaims(ctx context.Context) domain.Claims {
	claims, _ := ctx.Value(ctxKeyClaims).(domain.Claims)
	return claims
}

func currentActor(ctx context.Context) app.Actor {
	return app.Actor{UserID: currentUser(ctx).ID, Token: currentClaims(ctx)}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// requireUser resolves the bearer token to an active user or rejects the request.
func (a *API) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, claims, err := a.auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), user, claims)))
	})
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := a.auth.Register(r.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, domain.NewValidationError("body", "invalid form body"))
			return
		}
		req = loginRequest{Username: r.PostForm.Get("username"), Password: r.PostForm.Get("password")}
		if err := a.validator.check(&req); err != nil {
			writeError(w, r, err)
			return
		}
	} else if err := a.validator.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := a.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresAt:   session.ExpiresAt,
	})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Logout(r.Context(), currentClaims(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) whoami(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(currentUser(r.Context())))
}
