//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"reimburse-api/internal/handler/api"
	resdto "reimburse-api/internal/handler/dto/response"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"
	"reimburse-api/tests/common/httptest"
	commandsmock "reimburse-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockCmds   *commandsmock.MockAuthCommands
	mockAudit  *commandsmock.MockAuditCommands
	operatorID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockAudit = commandsmock.NewMockAuditCommands(s.mockCtrl)
	s.mockAudit.EXPECT().RecordDeferred(gomock.Any()).AnyTimes()
	s.operatorID = uuid.New()

	handler := api.NewAuthHandler(s.mockCmds, s.mockAudit,
		config.JWTConfig{Secret: "test-secret", TokenDuration: time.Hour},
		config.CookieConfig{SameSite: "Lax"},
	)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("operator_id", s.operatorID)
		c.Next()
	}

	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/exchange", handler.Exchange)
	s.router.POST("/auth/logout", authMiddleware, handler.Logout)
	s.router.GET("/auth/me", authMiddleware, handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) operatorView() *queries.OperatorView {
	return &queries.OperatorView{
		ID:    s.operatorID,
		Email: "operator@example.com",
		Name:  "Test Operator",
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := map[string]any{"email": "operator@example.com", "password": "secret-password"}

	s.Run("success: returns 200 OK with token and session cookie", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), "operator@example.com", "secret-password").
			Return(&commands.LoginResult{Operator: s.operatorView(), AccessToken: "jwt-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("jwt-token", body.AccessToken)
		s.Equal(s.operatorID, body.Operator.ID)

		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Equal("jwt-token", cookie.Value)
		s.True(cookie.HttpOnly)
	})

	s.Run("error: 401 Unauthorized for invalid credentials", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid credentials")
	})

	s.Run("error: 403 Forbidden for inactive operator", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrOperatorInactive).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})

	s.Run("error: 400 Bad Request for short password", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"email": "operator@example.com", "password": "short"}, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestExchange() {
	url := "/auth/exchange"
	reqBody := map[string]any{"token": "idp-token"}

	s.Run("success: returns 200 OK for a verified operator", func() {
		s.mockCmds.EXPECT().Exchange(gomock.Any(), "idp-token").
			Return(&commands.LoginResult{Operator: s.operatorView(), AccessToken: "jwt-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("jwt-token", body.AccessToken)
	})

	s.Run("error: 401 Unauthorized when verification fails", func() {
		s.mockCmds.EXPECT().Exchange(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrAuthenticationFailed).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid credentials")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the authenticated operator", func() {
		s.mockCmds.EXPECT().GetOperator(gomock.Any(), s.operatorID).
			Return(s.operatorView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "bearer-token")

		var body queries.OperatorView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.operatorID, body.ID)
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears the session cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Empty(cookie.Value)
	})
}
