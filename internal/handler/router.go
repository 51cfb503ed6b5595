package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"reimburse-api/internal/handler/api"
	"reimburse-api/internal/handler/middleware"
	"reimburse-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Form           *api.FormHandler
	DocumentAccess *api.DocumentAccessHandler
	Auth           *api.AuthHandler
	Audit          *api.AuditHandler
	ACL            *api.ACLHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMw *middleware.AuthMiddleware, apiKeyMw *middleware.APIKeyMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMw, apiKeyMw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.NewCSRFMiddleware(cfg.CSRF, cfg.Cookie))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMw *middleware.AuthMiddleware, apiKeyMw *middleware.APIKeyMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := engine.Group("/api/v1")
	{
		forms := v1.Group("/forms")
		{
			addRoutes(forms, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Form.Create, Mw: []gin.HandlerFunc{apiKeyMw.RequireAPIKey()}},
				{Method: http.MethodGet, Path: "/:token", Handler: h.Form.Get},
				{Method: http.MethodGet, Path: "/:token/status", Handler: h.Form.GetStatus},
				{Method: http.MethodPost, Path: "/:token/submit", Handler: h.Form.Submit},
			})
		}

		docAccess := v1.Group("/document-access")
		docAccess.Use(authMw.RequireAuth())
		{
			addRoutes(docAccess, []route{
				{Method: http.MethodGet, Path: "/:token", Handler: h.DocumentAccess.GetSubmission},
				{Method: http.MethodGet, Path: "/:token/documents/:id/invoice/download", Handler: h.DocumentAccess.Download},
				{Method: http.MethodGet, Path: "/:token/documents/:id/view", Handler: h.DocumentAccess.View},
			})
		}

		auth := v1.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/exchange", Handler: h.Auth.Exchange},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		auditLogs := v1.Group("/audit-logs")
		auditLogs.Use(authMw.RequireAuth(), authMw.RequireSuperuser())
		{
			addRoutes(auditLogs, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Audit.Search},
			})
		}

		acl := v1.Group("/acl")
		acl.Use(authMw.RequireAuth())
		{
			addRoutes(acl, []route{
				{Method: http.MethodPost, Path: "/roles", Handler: h.ACL.CreateRole},
				{Method: http.MethodPost, Path: "/permissions", Handler: h.ACL.CreatePermission},
				{Method: http.MethodPost, Path: "/role-permissions", Handler: h.ACL.AddPermissionToRole},
				{Method: http.MethodPost, Path: "/role-assignments", Handler: h.ACL.AssignRole},
				{Method: http.MethodPost, Path: "/resource-grants", Handler: h.ACL.GrantResourcePermission},
				{Method: http.MethodPost, Path: "/resource-grants/revoke", Handler: h.ACL.RevokeResourcePermission},
				{Method: http.MethodGet, Path: "/operators/:operator_id/resource-grants", Handler: h.ACL.ListResourceGrants},
				{Method: http.MethodDelete, Path: "/access-links/:id", Handler: h.ACL.DeactivateAccessLink},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
