package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"reimburse-api/internal/domain/audit"
	reqdto "reimburse-api/internal/handler/dto/request"
	resdto "reimburse-api/internal/handler/dto/response"
	"reimburse-api/internal/handler/httperr"
	"reimburse-api/internal/handler/middleware"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/pkg/cookie"
	"reimburse-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	audit     commands.AuditCommands
	jwtCfg    config.JWTConfig
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, auditCmds commands.AuditCommands, jwtCfg config.JWTConfig, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{cmds: cmds, audit: auditCmds, jwtCfg: jwtCfg, cookieCfg: cookieCfg}
}

// @Summary Operator login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLogin(c, "auth.login", req.Email, err)
		h.abortAuthError(c, err)
		return
	}
	h.recordLogin(c, "auth.login", req.Email, nil)
	h.respondLogin(c, result)
}

// @Summary Token exchange login
// @Description Exchange an identity-provider token for an operator session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.ExchangeRequest true "Exchange request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/exchange [post]
func (h *AuthHandler) Exchange(c *gin.Context) {
	var req reqdto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Exchange(c.Request.Context(), req.Token)
	if err != nil {
		h.recordLogin(c, "auth.exchange", "", err)
		h.abortAuthError(c, err)
		return
	}
	h.recordLogin(c, "auth.exchange", result.Operator.Email, nil)
	h.respondLogin(c, result)
}

// @Summary Operator logout
// @Description Clear the session cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current operator
// @Description Get the authenticated operator's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.OperatorView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	view, err := h.cmds.GetOperator(c.Request.Context(), operatorID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Operator not found", nil)
		case errors.Is(err, commands.ErrOperatorInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load operator", nil)
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) respondLogin(c *gin.Context, result *commands.LoginResult) {
	cookie.SetTokenCookie(c, h.cookieCfg, result.AccessToken, h.jwtCfg.TokenDuration)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		Operator:    result.Operator,
	})
}

func (h *AuthHandler) abortAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidCredentials),
		errors.Is(err, commands.ErrAuthenticationFailed):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
	case errors.Is(err, commands.ErrOperatorInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Authentication failed", nil)
	}
}

func (h *AuthHandler) recordLogin(c *gin.Context, action, email string, loginErr error) {
	entry := &audit.Entry{
		ActionType: action,
		ActorType:  audit.ActorOperator,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Status:     audit.StatusSuccess,
		RequestID:  middleware.GetRequestID(c),
	}
	if email != "" {
		entry.RequestPayload, _ = json.Marshal(gin.H{"email": email})
	}
	if loginErr != nil {
		entry.Status = audit.StatusError
		msg := loginErr.Error()
		entry.ErrorMessage = &msg
	}
	h.audit.RecordDeferred(entry)
}
