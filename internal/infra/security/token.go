package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"journey-quiz-service/internal/domain"
)

// JWTIssuer signs HS256 access tokens whose subject is the username.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type accessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewJWTIssuer(secret, issuer string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(subject, userID string) (string, domain.Claims, error) {
	now := j.now()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", domain.Claims{}, err
	}
	return signed, toDomainClaims(claims), nil
}

func (j *JWTIssuer) Verify(token string) (domain.Claims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return domain.Claims{}, domain.ErrUnauthenticated
	}
	if claims.Subject == "" || claims.UserID == "" {
		return domain.Claims{}, fmt.Errorf("%w: missing subject", domain.ErrUnauthenticated)
	}
	if claims.IssuedAt == nil {
		return domain.Claims{}, fmt.Errorf("%w: missing issued-at", domain.ErrUnauthenticated)
	}
	return toDomainClaims(claims), nil
}

func toDomainClaims(c accessClaims) domain.Claims {
	out := domain.Claims{Subject: c.Subject, UserID: c.UserID, TokenID: c.ID}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
