// Package store - состояние клиента витрины: сессия, корзина, каталог, избранное.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"storefront/internal/apiclient"
	"storefront/internal/domain"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/storage"
	"storefront/pkg/logger"
)

// Ключи локального хранилища
const (
	KeyUser  = "user"
	KeyToken = "token"
)

const (
	msgRegisterOK     = "Регистрация прошла успешно!"
	msgRegisterFailed = "Ошибка регистрации"
	msgLoginOK        = "Вход выполнен успешно!"
	msgLoginFailed    = "Ошибка входа"
	msgLogout         = "Вы вышли из системы"
	msgNotPersisted   = "Сессия не сохранена: после перезапуска потребуется повторный вход"
)

// AuthService - вызовы API авторизации
type AuthService interface {
	Register(ctx context.Context, data models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
}

// Session - текущий пользователь и его токен
type Session struct {
	svc      AuthService
	storage  storage.Storage
	notifier notify.Notifier
	log      *zap.Logger

	mu      sync.RWMutex
	user    *domain.User
	token   string
	loading atomic.Int32
}

// NewSession - восстанавливает сессию из локального хранилища.
// Поврежденные данные не считаются ошибкой: сессия начинается пустой.
func NewSession(ctx context.Context, svc AuthService, st storage.Storage, n notify.Notifier, log *zap.Logger) *Session {
	s := &Session{
		svc:      svc,
		storage:  st,
		notifier: n,
		log:      logger.OrNop(log),
	}
	s.restore(ctx)
	return s
}

func (s *Session) restore(ctx context.Context) {
	token, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("не удалось прочитать токен из хранилища", zap.Error(err))
		}
		token = ""
	}

	var user *domain.User
	raw, err := s.storage.Get(ctx, KeyUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		s.log.Warn("не удалось прочитать пользователя из хранилища", zap.Error(err))
	case raw == "" || raw == "null":
	default:
		user = &domain.User{}
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			s.log.Warn("сохраненная сессия повреждена, начинаем без сессии", zap.Error(err))
			if err := s.storage.Remove(ctx, KeyUser, KeyToken); err != nil {
				s.log.Warn("не удалось очистить хранилище", zap.Error(err))
			}
			return
		}
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if token != "" {
		s.log.Debug("сессия восстановлена", zap.String("user", user.DisplayName()))
	}
}

// Register - регистрация нового пользователя
func (s *Session) Register(ctx context.Context, data models.RegisterRequest) (models.AuthResponse, error) {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	resp, err := s.svc.Register(ctx, data)
	if err != nil {
		s.notifier.Error(failureMessage(err, msgRegisterFailed))
		return models.AuthResponse{}, err
	}

	persistErr := s.establish(ctx, resp)
	s.notifier.Success(msgRegisterOK)
	if persistErr != nil {
		s.notifier.Error(msgNotPersisted)
	}
	return resp, nil
}

// Login - вход по email и паролю
func (s *Session) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	resp, err := s.svc.Login(ctx, credentials)
	if err != nil {
		s.notifier.Error(failureMessage(err, msgLoginFailed))
		return models.AuthResponse{}, err
	}

	persistErr := s.establish(ctx, resp)
	s.notifier.Success(msgLoginOK)
	if persistErr != nil {
		s.notifier.Error(msgNotPersisted)
	}
	return resp, nil
}

// establish - сохраняет пользователя и токен в памяти и одной записью в хранилище.
// Ошибка хранилища не отменяет вход: сессия остается в памяти.
func (s *Session) establish(ctx context.Context, resp models.AuthResponse) error {
	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.token = resp.Token
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Error("не удалось сериализовать пользователя", zap.Error(err))
		return err
	}
	err = s.storage.SetMany(ctx, map[string]string{
		KeyUser:  string(raw),
		KeyToken: resp.Token,
	})
	if err != nil {
		s.log.Warn("сессия не сохранена в хранилище", zap.Error(err))
	}
	return err
}

// Logout - локальный выход: память и хранилище очищаются, сервер не вызывается
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	err := s.storage.Remove(ctx, KeyUser, KeyToken)
	if err != nil {
		s.log.Warn("не удалось очистить хранилище", zap.Error(err))
	}
	s.notifier.Success(msgLogout)
	return err
}

// User - копия текущего пользователя или nil
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token - текущий токен; безопасно вызывать на nil
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

func (s *Session) Loading() bool {
	return s.loading.Load() > 0
}

// failureMessage - текст ошибки от сервера или стандартный
func failureMessage(err error, fallback string) string {
	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	return fallback
}
