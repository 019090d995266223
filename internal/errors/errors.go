// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает доменную ошибку сервиса, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Транспорт сидит в одном процессе с сервисом, поэтому маппинг идёт
// напрямую по sentinel-ошибкам пакета service (без промежуточных кодов).
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-calc-service/internal/service"
)

// Нестандартный код, часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrInvalidArgument — локальная ошибка транспортного слоя:
// битый JSON/параметры запроса, до сервиса дело не дошло.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - инфраструктурные ошибки (БД/кэш) не перечислены — любые неизвестные
//     ошибки дают 500/internal без утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, envelope("internal", "internal error")
	}

	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, envelope("invalid_argument", "invalid argument")

	case errors.Is(err, service.ErrUnsupportedOperation),
		errors.Is(err, service.ErrNotEnoughInputs):
		return http.StatusBadRequest, envelope("invalid_argument", "invalid argument")

	case errors.Is(err, service.ErrDivisionByZero):
		return http.StatusBadRequest, envelope("division_by_zero", "division by zero")

	// UserNotFound не отличим снаружи от неверного пароля:
	// не раскрываем существование аккаунта.
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, envelope("invalid_credentials", "invalid credentials")

	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, envelope("invalid_token", "invalid token")

	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, envelope("token_expired", "token expired")

	case errors.Is(err, service.ErrWrongTokenType):
		return http.StatusUnauthorized, envelope("wrong_token_type", "wrong token type")

	case errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, envelope("token_revoked", "token revoked")

	case errors.Is(err, service.ErrUserExists):
		return http.StatusConflict, envelope("already_exists", "already exists")

	case errors.Is(err, service.ErrCalculationNotFound):
		return http.StatusNotFound, envelope("not_found", "not found")

	case errors.Is(err, service.ErrPartialRevocation):
		// Частичный отказ отзыва: не успех и не полный провал.
		return http.StatusBadGateway, envelope("partial_revocation", "partial revocation failure")

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, envelope("deadline_exceeded", "deadline exceeded")

	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, envelope("canceled", "request canceled")
	}

	return http.StatusInternalServerError, envelope("internal", "internal error")
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id, чтобы клиент мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func envelope(code, message string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: message}}
}
