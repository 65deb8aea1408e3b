package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"synergym-api/internal/domain"
	"synergym-api/pkg/utils"
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Goal     string
}

type UserService struct {
	store domain.Store
	log   *zap.Logger
}

func NewUserService(store domain.Store, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{store: store, log: l.Named("user")}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*UserView, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalid)
	}
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Email: email, Name: name, PasswordHash: hash, Goal: strings.TrimSpace(in.Goal)}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	v := toUserView(u)
	return &v, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*UserView, error) {
	u, err := findUser(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	v := toUserView(u)
	return &v, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int, q string) ([]UserView, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	us, total, err := s.store.Users().List(ctx, offset, limit, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserView, 0, len(us))
	for i := range us {
		out = append(out, toUserView(&us[i]))
	}
	return out, total, nil
}
