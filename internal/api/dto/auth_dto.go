package dto

import "github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"

type SignupDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
	Name     string `json:"name"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse 表示登入響應的完整結構
type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}

func NewUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:    user.UserID,
		Email: user.Email,
		Name:  user.Name,
	}
}
