package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		Authenticate(ctx context.Context, token string) (*UserClaims, error)
		Revoke(ctx context.Context, claims *UserClaims) error
	}

	UserClaims struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		denylist  Denylist
	}
)

func NewJWTService(secretKey string, ttl time.Duration, denylist Denylist) JWTService {
	if denylist == nil {
		denylist = NewMemoryDenylist()
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "FITTRACK",
		ttl:       ttl,
		denylist:  denylist,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		userID,
		role,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &UserClaims{}, j.parseToken)
}

func (j *jwtService) claims(token string) (*UserClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return t_Token.Claims.(*UserClaims), nil
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	claims, err := j.claims(token)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

// Authenticate validates the token and rejects revoked ones.
func (j *jwtService) Authenticate(ctx context.Context, token string) (*UserClaims, error) {
	claims, err := j.claims(token)
	if err != nil {
		return nil, err
	}

	revoked, err := j.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Revoke denylists the token until it would have expired anyway.
func (j *jwtService) Revoke(ctx context.Context, claims *UserClaims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrTokenInvalid
	}
	expiresAt := time.Now().Add(j.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return j.denylist.Revoke(ctx, claims.ID, expiresAt)
}
