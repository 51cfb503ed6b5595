package api

import (
	"net/http"
	"strconv"
	"time"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/handler/httperr"
	"reimburse-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	q queries.AuditQueries
}

func NewAuditHandler(q queries.AuditQueries) *AuditHandler {
	return &AuditHandler{q: q}
}

// @Summary Search audit logs
// @Description Search the audit trail with optional filters
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param action_type query string false "Action type"
// @Param actor_type query string false "Actor type (operator|api_key|system)"
// @Param actor_id query string false "Actor ID"
// @Param resource_type query string false "Resource type"
// @Param resource_id query string false "Resource ID"
// @Param status query string false "Status (success|error)"
// @Param request_id query string false "Request ID"
// @Param from query string false "Lower bound (RFC3339)"
// @Param to query string false "Upper bound (RFC3339)"
// @Param limit query int false "Max items (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {array} queries.AuditLogView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /audit-logs [get]
func (h *AuditHandler) Search(c *gin.Context) {
	filter := audit.SearchFilter{
		ActionType:   c.Query("action_type"),
		ActorType:    c.Query("actor_type"),
		ActorID:      c.Query("actor_id"),
		ResourceType: c.Query("resource_type"),
		ResourceID:   c.Query("resource_id"),
		Status:       c.Query("status"),
		RequestID:    c.Query("request_id"),
	}
	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if v := c.Query(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+" timestamp", nil)
				return
			}
			*dst = &t
		}
	}
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			filter.Limit = iv
		}
	}
	if v := c.Query("offset"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			filter.Offset = iv
		}
	}

	logs, err := h.q.Search(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Audit search failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
