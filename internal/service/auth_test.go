package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-calc-service/internal/config"
	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/storage"
	"github.com/pribylovaa/go-calc-service/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "calc-service",
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockRevocationCache, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	rc := mocks.NewMockRevocationCache(ctrl)
	svc, err := New(st, rc, testCfg())
	require.NoError(t, err)
	return svc, st, rc, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	user, err := svc.RegisterUser(ctx, "alice", "Alice@Example.com", "Password1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "alice", user.Username)
	// email нормализуется в нижний регистр.
	require.Equal(t, "alice@example.com", user.Email)
	// в БД уходит хэш, а не пароль.
	require.NotEqual(t, "Password1", saved.PasswordHash)
	require.True(t, checkPassword(saved.PasswordHash, "Password1"))
}

func TestRegisterUser_InvalidUsername(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	for _, username := range []string{"", "ab", "with space", "кириллица", "bad!char"} {
		_, err := svc.RegisterUser(context.Background(), username, "u@e.com", "Password1")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidUsername, "username=%q", username)
	}
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "alice", "not-an-email", "Password1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakOrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "alice", "u@e.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, err = svc.RegisterUser(context.Background(), "alice", "u@e.com", "pw12")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)
}

// TestRegisterAndLogin_MinimalPassword — пароль минимальной длины (5 рун)
// принимается на регистрации, вход работает и по username, и по email.
func TestRegisterAndLogin_MinimalPassword(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	user, err := svc.RegisterUser(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	st.EXPECT().UserByIdentifier(gomock.Any(), "alice").Return(saved, nil)
	st.EXPECT().UserByIdentifier(gomock.Any(), "alice@x.com").Return(saved, nil)

	for _, identifier := range []string{"alice", "alice@x.com"} {
		pair, gotUID, err := svc.LoginUser(ctx, identifier, "pw123")
		require.NoError(t, err, "identifier=%q", identifier)
		require.Equal(t, user.ID, gotUID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
	}
}

func TestRegisterUser_Duplicate_MapsToUserExists(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "alice", "alice@x.com", "Password1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterUser_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	_, err := svc.RegisterUser(context.Background(), "alice", "alice@x.com", "Password1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUserExists)
}

func TestLoginUser_OK_ByUsernameAndEmail(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uid := uuid.New()
	user := &models.User{
		ID:           uid,
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: mustHashPW(t, "pw123PW!"),
	}

	st.EXPECT().UserByIdentifier(gomock.Any(), "alice").Return(user, nil)
	st.EXPECT().UserByIdentifier(gomock.Any(), "alice@x.com").Return(user, nil)

	for _, identifier := range []string{"alice", "Alice@X.com"} {
		pair, gotUID, err := svc.LoginUser(ctx, identifier, "pw123PW!")
		require.NoError(t, err)
		require.Equal(t, uid, gotUID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)

		// Выпущенные токены сразу валидны и несут правильный subject.
		rc.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

		accessClaims, err := svc.validateToken(ctx, pair.AccessToken, TokenTypeAccess)
		require.NoError(t, err)
		require.Equal(t, uid.String(), accessClaims.Subject)

		refreshClaims, err := svc.validateToken(ctx, pair.RefreshToken, TokenTypeRefresh)
		require.NoError(t, err)
		require.Equal(t, uid.String(), refreshClaims.Subject)
		require.NotEqual(t, accessClaims.ID, refreshClaims.ID)
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: mustHashPW(t, "pw123PW!"),
	}

	st.EXPECT().UserByIdentifier(gomock.Any(), "alice").Return(user, nil)

	_, _, err := svc.LoginUser(context.Background(), "alice", "wrong")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByIdentifier(gomock.Any(), "ghost").
		Return(nil, storage.ErrNotFound)

	_, _, err := svc.LoginUser(context.Background(), "ghost", "pw123PW!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginUser_EmptyInput(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.LoginUser(context.Background(), "", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginUser(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByIdentifier(gomock.Any(), "alice").
		Return(nil, errors.New("db down"))

	_, _, err := svc.LoginUser(context.Background(), "alice", "pw123PW!")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
	require.NotErrorIs(t, err, ErrUserNotFound)
}

// loginPair — хелпер: логин с замоканным хранилищем, возвращает пару токенов.
func loginPair(t *testing.T, svc *Service, st *mocks.MockStorage, uid uuid.UUID) *models.TokenPair {
	t.Helper()

	user := &models.User{
		ID:           uid,
		Username:     "alice",
		PasswordHash: mustHashPW(t, "pw123PW!"),
	}
	st.EXPECT().UserByIdentifier(gomock.Any(), "alice").Return(user, nil)

	pair, _, err := svc.LoginUser(context.Background(), "alice", "pw123PW!")
	require.NoError(t, err)
	return pair
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uid := uuid.New()
	pair := loginPair(t, svc, st, uid)

	access, err := svc.parseToken(pair.AccessToken, false)
	require.NoError(t, err)
	refresh, err := svc.parseToken(pair.RefreshToken, false)
	require.NoError(t, err)

	rc.EXPECT().Revoke(gomock.Any(), access.ID, gomock.Any()).Return(nil)
	rc.EXPECT().Revoke(gomock.Any(), refresh.ID, gomock.Any()).Return(nil)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken, pair.RefreshToken))

	// После logout access-токен считается отозванным.
	rc.EXPECT().IsRevoked(gomock.Any(), access.ID).Return(true, nil)

	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogout_ExpiredAccessTolerated(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	base := time.Now().UTC()
	svc.now = func() time.Time { return base }

	uid := uuid.New()
	pair := loginPair(t, svc, st, uid)

	access, err := svc.parseToken(pair.AccessToken, false)
	require.NoError(t, err)
	refresh, err := svc.parseToken(pair.RefreshToken, false)
	require.NoError(t, err)

	// Access уже истёк; отзыв истёкшего токена — no-op с нулевым TTL.
	svc.now = func() time.Time { return base.Add(svc.cfg.AccessTokenTTL + time.Minute) }

	rc.EXPECT().Revoke(gomock.Any(), access.ID, time.Duration(0)).Return(nil)
	rc.EXPECT().Revoke(gomock.Any(), refresh.ID, gomock.Any()).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), pair.AccessToken, pair.RefreshToken))
}

func TestLogout_PartialFailure_NamesFailedToken(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	pair := loginPair(t, svc, st, uid)

	access, err := svc.parseToken(pair.AccessToken, false)
	require.NoError(t, err)
	refresh, err := svc.parseToken(pair.RefreshToken, false)
	require.NoError(t, err)

	// Отзыв access удался, refresh — нет: частичный отказ, не успех.
	rc.EXPECT().Revoke(gomock.Any(), access.ID, gomock.Any()).Return(nil)
	rc.EXPECT().Revoke(gomock.Any(), refresh.ID, gomock.Any()).Return(errors.New("redis down"))

	err = svc.Logout(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPartialRevocation)
	require.Contains(t, err.Error(), refresh.ID)
	require.NotContains(t, err.Error(), access.ID)
}

func TestLogout_BadSignature(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	err := svc.Logout(context.Background(), "garbage", "garbage")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_SwappedTokens(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	pair := loginPair(t, svc, st, uuid.New())

	// refresh на месте access — неверный тип токена.
	err := svc.Logout(context.Background(), pair.RefreshToken, pair.AccessToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefreshToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uid := uuid.New()
	pair := loginPair(t, svc, st, uid)

	rc.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, nil)

	newPair, gotUID, err := svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, uid, gotUID)
	require.NotEmpty(t, newPair.AccessToken)
	// Refresh-токен не ротируется.
	require.Equal(t, pair.RefreshToken, newPair.RefreshToken)

	// Новый access валиден и привязан к тому же пользователю.
	rc.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, nil)
	checkUID, err := svc.ValidateAccessToken(ctx, newPair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, uid, checkUID)
}

func TestRefreshToken_WithAccessToken_WrongType(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	pair := loginPair(t, svc, st, uuid.New())

	_, _, err := svc.RefreshToken(context.Background(), pair.AccessToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefreshToken_Revoked(t *testing.T) {
	t.Parallel()

	svc, st, rc, ctrl := newSvc(t)
	defer ctrl.Finish()

	pair := loginPair(t, svc, st, uuid.New())

	rc.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(true, nil)

	_, _, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	digest := mustHashPW(t, "pw123PW!")
	require.True(t, checkPassword(digest, "pw123PW!"))
	require.False(t, checkPassword(digest, "other"))

	// Разные вызовы дают разные дайджесты (случайная соль).
	other := mustHashPW(t, "pw123PW!")
	require.NotEqual(t, digest, other)

	// Некорректный формат хэша — false, не паника и не ошибка.
	require.False(t, checkPassword("not-a-bcrypt-digest", "pw123PW!"))
}
