package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/dto"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Signup POST /auth/signup
func (a *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	user, err := a.authService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.NewUserDTO(user))
}

// Login POST /auth/login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	res, err := a.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     res.Token,
			ExpiresIn: int(time.Until(res.ExpiresAt).Seconds()),
		},
		User: dto.NewUserDTO(res.User),
	})
}

// Me GET /auth/me
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.authService.Me(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.NewUserDTO(user))
}

func bearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get(string(constants.AuthorizationHeaderKey)))
	if len(fields) < 2 || strings.ToLower(fields[0]) != string(constants.AuthorizationTypeBearer) {
		return ""
	}
	return fields[1]
}
