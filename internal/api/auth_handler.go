package api

import (
	"errors"
	"net/http"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler holds the auth service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- DTOs ---

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is the public view of an account. CreatedAt feeds the
// client's "day N" counter.
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Nickname          string    `json:"nickname"`
	ExerciseStartDate time.Time `json:"exerciseStartDate"`
	GoalWeight        *float64  `json:"goalWeight"`
	FavoriteExercises []string  `json:"favoriteExercises"`
	CreatedAt         time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func mapUserToResponse(u *domain.User) UserResponse {
	favorites := u.FavoriteExercises
	if favorites == nil {
		favorites = []string{}
	}
	return UserResponse{
		ID:                u.ID.Hex(),
		Email:             u.Email,
		Nickname:          u.Nickname,
		ExerciseStartDate: u.ExerciseStartDate,
		GoalWeight:        u.GoalWeight,
		FavoriteExercises: favorites,
		CreatedAt:         u.CreatedAt,
	}
}

// --- Handler Methods ---

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			logrus.Errorf("register failed: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to register.")
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: mapUserToResponse(user)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			logrus.Errorf("login failed: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to log in.")
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: mapUserToResponse(user)})
}

// ForgotPassword handles POST /auth/forgot. The response is identical whether
// or not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		logrus.Errorf("forgot-password failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to start password reset.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset mail was sent."})
}

// ResetPassword handles POST /auth/reset.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			logrus.Errorf("reset-password failed: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to reset password.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated."})
}
