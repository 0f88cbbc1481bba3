package handler

import (
	"context"  // context with cancellation for DB calls
	"net/http" // HTTP status codes
	"net/mail" // email address shape validation
	"strings"  // string trimming
	"time"     // birth date comparison

	"github.com/google/uuid"      // user identifiers
	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
	"github.com/kinoteka/movie-catalog/internal/utils"
)

// AccountHandler bundles dependencies for registration, login, logout and
// profile endpoints.
type AccountHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAccountHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AccountHandler {
	return &AccountHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	UserName  string  `json:"userName"`
	Name      string  `json:"name"`
	Password  string  `json:"password"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birthDate"`
	Gender    *int    `json:"gender"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

type profileReq struct {
	NickName   string  `json:"nickName"` // accepted but immutable
	Email      string  `json:"email"`
	AvatarLink *string `json:"avatarLink"`
	Name       string  `json:"name"`
	BirthDate  *string `json:"birthDate"`
	Gender     *int    `json:"gender"`
}

type profileResp struct {
	ID         uuid.UUID    `json:"id"`
	NickName   string       `json:"nickName"`
	Email      string       `json:"email"`
	AvatarLink *string      `json:"avatarLink"`
	Name       string       `json:"name"`
	BirthDate  *time.Time   `json:"birthDate"`
	Gender     model.Gender `json:"gender"`
}

func profileOf(u *model.User) profileResp {
	return profileResp{
		ID:         u.ID,
		NickName:   u.Username,
		Email:      u.Email,
		AvatarLink: u.AvatarLink,
		Name:       u.Name,
		BirthDate:  u.BirthDate,
		Gender:     u.Gender,
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Register creates a user and returns an access token immediately. The
// username conflict is checked before the email conflict so a request
// violating both reports the username one, matching the documented API.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.UserName == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userName and name are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}
	if req.Gender == nil || !model.Gender(*req.Gender).Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gender"})
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if birthDate != nil && birthDate.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Birth date cannot be in the future"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Users.GetByUsername(ctx, req.UserName); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Username already registered"})
	} else if err != repository.ErrUserNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
	} else if err != repository.ErrUserNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	u := model.User{
		ID:           uuid.New(),
		Username:     req.UserName,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		BirthDate:    birthDate,
		Gender:       model.Gender(*req.Gender),
	}
	if err := h.Users.Create(ctx, u); err != nil {
		// Unique indexes backstop the pre-checks under concurrency.
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already registered"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := h.issueTokens(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: token})
}

// Login verifies credentials and returns a fresh access token. Unknown
// username and wrong password are indistinguishable to the caller, and
// prior sessions stay valid.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token, err := h.issueTokens(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: token})
}

// issueTokens mints an access/refresh pair and persists the refresh token
// hash. Only the access token goes back to the client.
func (h *AccountHandler) issueTokens(ctx context.Context, userID uuid.UUID) (string, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return "", err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, userID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return "", err
	}
	if err := h.Tokens.Store(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return "", err
	}
	return access.Token, nil
}

// Logout deletes every refresh token of the current user, revoking all of
// their sessions regardless of device. Logging out with no stored tokens
// succeeds as well.
func (h *AccountHandler) Logout(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Tokens.DeleteAllForUser(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully logged out"})
}

// GetProfile returns the authenticated user's profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, profileOf(u))
}

// UpdateProfile overwrites the mutable profile fields. The nickName field
// is accepted in the body for symmetry with GET but never changes the
// username.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}
	if req.Gender == nil || !model.Gender(*req.Gender).Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gender"})
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if birthDate != nil && birthDate.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Birth date cannot be in the future"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	gender := model.Gender(*req.Gender)
	if err := h.Users.UpdateProfile(ctx, u.ID, req.Email, req.Name, birthDate, gender, req.AvatarLink); err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}

	updated := *u
	updated.Email = req.Email
	updated.Name = req.Name
	updated.BirthDate = birthDate
	updated.Gender = gender
	updated.AvatarLink = req.AvatarLink
	return c.JSON(http.StatusOK, profileOf(&updated))
}
