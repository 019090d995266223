package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/pkg/log"
	"github.com/pribylovaa/go-calc-service/internal/pkg/redact"
	"github.com/pribylovaa/go-calc-service/internal/storage"
)

// RegisterUser регистрирует нового пользователя и возвращает его запись.
func (s *Service) RegisterUser(ctx context.Context, username, email, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	normUsername, err := validateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     normUsername,
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// LoginUser выполняет вход по username-или-email и паролю.
// Переход Unauthenticated -> Active: выпускается пара access+refresh.
func (s *Service) LoginUser(ctx context.Context, identifier, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.LoginUser"

	identifier = normalizeIdentifier(identifier)
	if identifier == "" || password == "" {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	accessToken, accessExp, err := s.issueToken(ctx, user.ID, TokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, _, err := s.issueToken(ctx, user.ID, TokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_logged_in",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: accessExp,
	}, user.ID, nil
}

// RefreshToken выпускает новый access-токен по действующему refresh-токену.
// Refresh-токен при этом не меняется (переход Active -> AccessExpiredRefreshed).
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RefreshToken"

	claims, err := s.validateToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	// Subject проверен на парсинге.
	userID := uuid.MustParse(claims.Subject)

	accessToken, accessExp, err := s.issueToken(ctx, userID, TokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: accessExp,
	}, userID, nil
}

// Logout отзывает оба токена сессии (переход * -> Revoked).
//
// Истечение токена на logout не считается ошибкой: отзыв истёкшего токена —
// no-op (он уже недействителен по сроку). Отзывы независимы: если запись в
// кэш удалась только для части идентификаторов, возвращается
// ErrPartialRevocation с перечислением неотозванных jti — отката нет,
// кросс-хранилищной транзакции здесь не существует.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	const op = "service.auth.Logout"

	lg := log.From(ctx)

	access, err := s.parseToken(accessToken, false)
	if err != nil {
		return fmt.Errorf("%s: access: %w", op, err)
	}
	if access.TokenType != TokenTypeAccess {
		return fmt.Errorf("%s: access: %w", op, ErrWrongTokenType)
	}

	refresh, err := s.parseToken(refreshToken, false)
	if err != nil {
		return fmt.Errorf("%s: refresh: %w", op, err)
	}
	if refresh.TokenType != TokenTypeRefresh {
		return fmt.Errorf("%s: refresh: %w", op, ErrWrongTokenType)
	}

	var failed []string
	for _, claims := range []*tokenClaims{access, refresh} {
		if err := s.revoked.Revoke(ctx, claims.ID, s.remainingTTL(claims)); err != nil {
			lg.Error("token_revoke_failed",
				slog.String("op", op),
				slog.String("typ", claims.TokenType),
				slog.String("jti", claims.ID),
				slog.String("err", err.Error()),
			)
			failed = append(failed, claims.ID)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrPartialRevocation, strings.Join(failed, ", "))
	}

	lg.Info("user_logged_out",
		slog.String("op", op),
		slog.String("user_id", access.Subject),
	)

	return nil
}

// ValidateAccessToken проверяет access-токен и возвращает ID пользователя.
// Используется транспортным слоем для авторизации запросов.
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	const op = "service.auth.ValidateAccessToken"

	claims, err := s.validateToken(ctx, accessToken, TokenTypeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return uuid.MustParse(claims.Subject), nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
// Некорректный формат хэша даёт false, а не ошибку.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// validateUsername проверяет формат username: 3-32 символа [a-zA-Z0-9_].
func validateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if !usernameRe.MatchString(username) {
		return "", ErrInvalidUsername
	}

	return username, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}

// Минимальная длина пароля в рунах.
const minPasswordLen = 5

// validatePassword проверяет минимальные требования к паролю:
// непустой и длина >= minPasswordLen. Классы символов не требуются —
// стойкость обеспечивает bcrypt, а не состав пароля.
func validatePassword(pw string) error {
	if len(pw) == 0 {
		return ErrEmptyPassword
	}

	if len([]rune(pw)) < minPasswordLen {
		return ErrWeakPassword
	}

	return nil
}

// normalizeIdentifier приводит идентификатор логина к виду хранения:
// email — в нижний регистр, username — как есть.
func normalizeIdentifier(raw string) string {
	identifier := strings.TrimSpace(raw)
	if strings.Contains(identifier, "@") {
		return strings.ToLower(identifier)
	}

	return identifier
}
