package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/config"
	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/middleware"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  Sign-up is a
// two-step flow: Register parks the phone and hashed PIN in the
// verification store and issues a 6-digit code; Verify proves phone
// ownership and only then creates the account row.
type AuthHandler struct {
	Cfg           config.Config
	Users         *repository.UserRepo
	Tokens        *repository.TokenRepo
	Verifications *repository.VerificationRepo
	Metrics       *metrics.PlatformMetrics
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, v *repository.VerificationRepo, m *metrics.PlatformMetrics) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Verifications: v, Metrics: m}
}

// ----- DTOs -----

type registerReq struct {
	Phone      string `json:"phone"`
	PIN        string `json:"pin"`
	ConfirmPIN string `json:"confirm_pin"`
}
type verifyReq struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}
type loginReq struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register: validate phone/PIN, park a pending registration and send the
// verification code.  No account row exists until Verify succeeds.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	phone := utils.DigitsOnly(req.Phone)
	if len(phone) < 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid phone number required"})
	}
	if !isPIN(req.PIN) || !isPIN(req.ConfirmPIN) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "PIN must be exactly 4 digits"})
	}
	if req.PIN != req.ConfirmPIN {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "PINs do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByPhone(ctx, phone); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "phone already registered"})
	} else if err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	pinHash, err := utils.HashPIN(req.PIN, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	code, err := h.Verifications.CreatePending(ctx, phone, pinHash)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not issue verification code"})
	}
	// Stand-in for an SMS gateway: the code goes to the server log.
	log.Printf("sms to %s: your SellerApp verification code is %s", phone, code)
	if h.Metrics != nil {
		h.Metrics.VerificationCodesTotal.Inc()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent", "phone": phone})
}

// Verify: exchange the 6-digit code for an account and a token pair.
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	phone := utils.DigitsOnly(req.Phone)
	code := strings.TrimSpace(req.Code)
	if len(phone) < 10 || len(code) != 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone and 6-digit code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pinHash, err := h.Verifications.Consume(ctx, phone, code)
	if err != nil {
		switch err {
		case repository.ErrVerificationNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "verification expired, register again"})
		case repository.ErrCodeMismatch:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "incorrect verification code"})
		default:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "verification unavailable"})
		}
	}

	uid, err := h.Users.Create(ctx, phone, pinHash, middleware.RoleSeller)
	if err != nil {
		if err == repository.ErrPhoneExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}

	resp, err := h.issueTokens(ctx, uid, phone, middleware.RoleSeller)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login: verify phone + PIN and return a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	phone := utils.DigitsOnly(req.Phone)
	if phone == "" || req.PIN == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone/PIN required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByPhone(ctx, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPIN(u.PINHash, req.PIN) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
	}

	resp, err := h.issueTokens(ctx, u.ID, u.Phone, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh: validate by hash, revoke old, issue new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	resp, err := h.issueTokens(ctx, u.ID, u.Phone, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout: revoke one session by refresh token.  With a valid bearer and no
// body token, revoke every session for the user instead.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// No body token: fall back to the authenticated principal, set by
	// JWTAuth on the protected route registration.
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide refresh_token or Authorization header"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: simple protected endpoint returning the token's identity claims.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

// issueTokens creates and persists an access/refresh pair for a user.
func (h *AuthHandler) issueTokens(ctx context.Context, uid uint64, phone, role string) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, errIssueAccess
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, errIssueRefresh
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, errSaveRefresh
	}
	return authResp{
		User:    userPart{ID: uid, Phone: phone, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

var (
	errIssueAccess  = errors.New("issue access failed")
	errIssueRefresh = errors.New("issue refresh failed")
	errSaveRefresh  = errors.New("save refresh failed")
)

// isPIN reports whether s is exactly four ASCII digits.
func isPIN(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
