// service содержит бизнес-логику calc-сервиса:
// регистрацию/аутентификацию пользователей, выпуск/проверку/отзыв токенов
// и CRUD записей вычислений. Хранилище и кэш отозванных токенов подключаются
// через интерфейсы из пакетов storage и cache.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные хранилище и кэш потокобезопасны.
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
//   - Время берётся из поля now, чтобы тесты могли детерминированно
//     моделировать истечение токенов без ожидания.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-calc-service/internal/cache"
	"github.com/pribylovaa/go-calc-service/internal/config"
	"github.com/pribylovaa/go-calc-service/internal/storage"
)

var (
	// ErrUserNotFound — пользователь с таким идентификатором не существует.
	// Транспорт: 401 на логине (не раскрываем существование аккаунта).
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials — пара идентификатор/пароль неверна.
	// Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists — username или e-mail уже занят другим пользователем.
	// Транспорт: 409.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи.
	// Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongTokenType — предъявлен токен не того типа
	// (например, access вместо refresh). Транспорт: 401.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrTokenRevoked — токен отозван (logout) и недействителен
	// независимо от срока. Транспорт: 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrPartialRevocation — при logout отозвана только часть токенов:
	// запись в кэш для одного из идентификаторов не удалась.
	// Ошибка именует неотозванный jti. Транспорт: 502.
	ErrPartialRevocation = errors.New("partial revocation failure")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidUsername — username не проходит политику валидации.
	// Транспорт: 400.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrWeakPassword — пароль короче минимальной длины.
	// Транспорт: 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrUnsupportedOperation — неизвестный тип арифметической операции.
	// Транспорт: 400.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrNotEnoughInputs — для операции нужно минимум два операнда.
	// Транспорт: 400.
	ErrNotEnoughInputs = errors.New("not enough inputs")

	// ErrDivisionByZero — деление на ноль. Транспорт: 400.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrCalculationNotFound — запись вычисления не найдена
	// или принадлежит другому пользователю. Транспорт: 404.
	ErrCalculationNotFound = errors.New("calculation not found")
)

// Service описывает бизнес-логику calc-сервиса.
type Service struct {
	storage storage.Storage
	revoked cache.RevocationCache
	cfg     config.AuthConfig

	signingMethod jwt.SigningMethod

	// now — источник текущего времени (UTC); в тестах подменяется.
	now func() time.Time
}

// New создаёт новый экземпляр Service.
// Возвращает ошибку, если настроенный алгоритм подписи не является HMAC.
func New(storage storage.Storage, revoked cache.RevocationCache, cfg config.AuthConfig) (*Service, error) {
	const op = "service.New"

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%s: unsupported signing algorithm %q", op, cfg.Algorithm)
	}

	return &Service{
		storage:       storage,
		revoked:       revoked,
		cfg:           cfg,
		signingMethod: method,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}
