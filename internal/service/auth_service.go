package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/token"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// bcrypt 只接受 72 bytes 以內的密碼
const maxPasswordBytes = 72

type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type IAuthService interface {
	// Signup 建立帳號
	//
	// 錯誤:
	//   - ErrMissingCredentials: email 或 password 為空
	//   - ErrUserAlreadyExists: email 已註冊
	//   - ErrPasswordTooLong: 密碼超過 72 bytes
	Signup(ctx context.Context, email, password, name string) (*model.User, error)
	// Login 驗證密碼並簽發 token
	//
	// 錯誤:
	//   - ErrMissingCredentials
	//   - ErrUserNotFound
	//   - ErrInvalidPassword
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Me 由 token 取得目前使用者
	//
	// 錯誤:
	//   - ErrUnauthenticated: token 無效或過期，或使用者已不存在
	Me(ctx context.Context, accessToken string) (*model.User, error)
}

type AuthService struct {
	userRepo   repository.IUserRepository
	tokenMaker token.Maker
	tokenTTL   time.Duration
	bcryptCost int
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(userRepo repository.IUserRepository, tokenMaker token.Maker, tokenTTL time.Duration) *AuthService {
	if util.IsNil(userRepo) {
		panic("NewAuthService: userRepo is nil")
	}
	if util.IsNil(tokenMaker) {
		panic("NewAuthService: tokenMaker is nil")
	}
	return &AuthService{
		userRepo:   userRepo,
		tokenMaker: tokenMaker,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		UserID:       uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	log.Info().Str("user_id", user.UserID).Msg("user signed up")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.UserID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &LoginResult{
		User:      user,
		Token:     accessToken,
		ExpiresAt: payload.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, accessToken string) (*model.User, error) {
	payload, err := s.tokenMaker.VerifyToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
