package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"gorm.io/gorm"
)

// 帳號存在 postgres
type UserRepo struct {
	dbDao *DbDao
}

var _ repository.IUserRepository = (*UserRepo)(nil)

func NewUserRepo(dbDao *DbDao) *UserRepo {
	return &UserRepo{dbDao: dbDao}
}

// Create - 創建用戶
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	err := s.dbDao.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("user %s: %w", user.Email, repository.ErrAlreadyExists)
	}
	return err
}

// Read - 根據ID查詢用戶
func (s *UserRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.dbDao.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, translateErr(err, userID)
	}
	return &user, nil
}

// Read - 根據Email查詢用戶
func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.dbDao.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateErr(err, email)
	}
	return &user, nil
}

// Delete - 硬刪除用戶
func (s *UserRepo) HardDeleteUser(ctx context.Context, userID string) error {
	return s.dbDao.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.User{}).Error
}

func translateErr(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %s: %w", key, repository.ErrNotFound)
	}
	return err
}
