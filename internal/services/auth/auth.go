// Package auth содержит логику бизнес-уровня для регистрации, входа
// и сессионной привязки пользователей через JWT.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	jwtlib "github.com/renzmontano/grade-tracker/internal/lib/jwt"
	"github.com/renzmontano/grade-tracker/internal/lib/password"
	"github.com/renzmontano/grade-tracker/internal/models"
)

// Ошибки уровня сервиса, по которым ветвятся обработчики.
var (
	// ErrUserExists — имя пользователя или почта уже заняты.
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidCredentials — пользователь не найден или пароль не совпал.
	// Оба случая снаружи неразличимы.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked — токен отозван через logout.
	ErrTokenRevoked = errors.New("token revoked")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByLogin возвращает пользователя по имени или почте.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// TokenCache описывает кэш для чёрного списка отозванных токенов.
type TokenCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwtlib.Maker
	tokens   TokenCache
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwtlib.Maker, tokens TokenCache) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		tokens:   tokens,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его UID.
// Дубликат имени или почты возвращается как ErrUserExists: уникальность
// гарантирует ограничение в базе, отдельной проверки перед вставкой нет.
func (s *Service) Register(ctx context.Context, username, email, rawPassword, fullName string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", ErrUserExists
		}
		return "", err
	}
	return uid, nil
}

// Login проверяет пароль пользователя по имени или почте и генерирует JWT.
// Возвращает токен и пользователя, чьи данные попадают в claims.
func (s *Service) Login(ctx context.Context, login, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout отзывает токен: кладёт его в чёрный список до момента истечения.
// Повторный logout того же токена безвреден.
func (s *Service) Logout(_ context.Context, tokenStr string) error {
	const op = "auth.Logout"
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Set(blacklistKey(tokenStr), true, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет подпись токена и его отсутствие в чёрном списке,
// возвращает claims с данными пользователя.
func (s *Service) ValidateToken(_ context.Context, tokenStr string) (*jwtlib.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	var revoked bool
	found, err := s.tokens.Get(blacklistKey(tokenStr), &revoked)
	if err != nil {
		return nil, err
	}
	if found && revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func blacklistKey(tokenStr string) string {
	return "blacklist:" + tokenStr
}
