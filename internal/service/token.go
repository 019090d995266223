package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-calc-service/internal/pkg/log"
)

// Типы токенов в claim "typ".
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// tokenClaims — фиксированная форма полезной нагрузки токена:
// {sub, iat, exp, iss, jti} + пользовательский "typ".
// Оба вида токенов несут jti: logout отзывает оба идентификатора.
type tokenClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// issueToken выпускает подписанный токен заданного типа со сроком ttl.
// Возвращает строку токена и момент истечения.
func (s *Service) issueToken(ctx context.Context, userID uuid.UUID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	const op = "service.token.issueToken"

	lg := log.From(ctx)

	now := s.now()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(s.signingMethod, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("token_sign_failed",
			slog.String("op", op),
			slog.String("typ", tokenType),
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, expiresAt, nil
}

// validateToken валидирует токен: подпись -> срок -> тип -> отзыв,
// с остановкой на первой неудачной проверке.
// Ошибки кэша пробрасываются как есть и не маскируются под auth-ошибки.
func (s *Service) validateToken(ctx context.Context, tokenStr, expectedType string) (*tokenClaims, error) {
	const op = "service.token.validateToken"

	claims, err := s.parseToken(tokenStr, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	return claims, nil
}

// parseToken разбирает токен и проверяет подпись.
// При checkExpiry=false срок не проверяется (нужно на logout), подпись — всегда.
func (s *Service) parseToken(tokenStr string, checkExpiry bool) (*tokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.signingMethod.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
	}
	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// remainingTTL — остаточное время жизни токена на текущий момент.
// Для уже истёкшего токена возвращает 0: отзывать нечего.
func (s *Service) remainingTTL(claims *tokenClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl < 0 {
		return 0
	}

	return ttl
}
