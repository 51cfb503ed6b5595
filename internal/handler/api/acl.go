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
	"reimburse-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const permManageACL = "manage_acl"

type ACLHandler struct {
	cmds  commands.ACLCommands
	links commands.AccessLinkCommands
	audit commands.AuditCommands
}

func NewACLHandler(cmds commands.ACLCommands, links commands.AccessLinkCommands, auditCmds commands.AuditCommands) *ACLHandler {
	return &ACLHandler{cmds: cmds, links: links, audit: auditCmds}
}

// requireManage gates every admin endpoint on the manage_acl permission.
func (h *ACLHandler) requireManage(c *gin.Context) (uuid.UUID, bool) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, false
	}
	if err := h.cmds.RequireEndpointPermission(c.Request.Context(), operatorID, permManageACL); err != nil {
		if errors.Is(err, commands.ErrPermissionDenied) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
			return uuid.Nil, false
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Permission check failed", nil)
		return uuid.Nil, false
	}
	return operatorID, true
}

// @Summary Create role
// @Tags acl
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoleRequest true "Create role request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /acl/roles [post]
func (h *ACLHandler) CreateRole(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	var req reqdto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		h.abortACLError(c, err, "Create role failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.role.create", "role", id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Create permission
// @Tags acl
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePermissionRequest true "Create permission request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /acl/permissions [post]
func (h *ACLHandler) CreatePermission(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	var req reqdto.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.CreatePermission(c.Request.Context(), req.Name)
	if err != nil {
		h.abortACLError(c, err, "Create permission failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.permission.create", "permission", id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Add permission to role
// @Tags acl
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.RolePermissionRequest true "Role permission request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /acl/role-permissions [post]
func (h *ACLHandler) AddPermissionToRole(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	var req reqdto.RolePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.AddPermissionToRole(c.Request.Context(), req.RoleName, req.PermissionName); err != nil {
		h.abortACLError(c, err, "Add permission to role failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.role.add_permission", "role", req.RoleName)
	c.Status(http.StatusNoContent)
}

// @Summary Assign role to operator
// @Tags acl
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.AssignRoleRequest true "Assign role request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /acl/role-assignments [post]
func (h *ACLHandler) AssignRole(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	var req reqdto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	operatorID, err := uuid.Parse(req.OperatorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid operator id", nil)
		return
	}
	if err := h.cmds.AssignRole(c.Request.Context(), operatorID, req.RoleName); err != nil {
		h.abortACLError(c, err, "Assign role failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.role.assign", "operator", req.OperatorID)
	c.Status(http.StatusNoContent)
}

// @Summary Grant resource permission
// @Tags acl
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.ResourceGrantRequest true "Resource grant request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /acl/resource-grants [post]
func (h *ACLHandler) GrantResourcePermission(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	req, operatorID, ok := h.bindGrant(c)
	if !ok {
		return
	}
	if err := h.cmds.GrantResourcePermission(c.Request.Context(), operatorID, req.Permission, req.ResourceType, req.ResourceID); err != nil {
		h.abortACLError(c, err, "Grant failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.grant", req.ResourceType, req.ResourceID)
	c.Status(http.StatusNoContent)
}

// @Summary Revoke resource permission
// @Tags acl
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.ResourceGrantRequest true "Resource grant request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /acl/resource-grants/revoke [post]
func (h *ACLHandler) RevokeResourcePermission(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	req, operatorID, ok := h.bindGrant(c)
	if !ok {
		return
	}
	if err := h.cmds.RevokeResourcePermission(c.Request.Context(), operatorID, req.Permission, req.ResourceType, req.ResourceID); err != nil {
		h.abortACLError(c, err, "Revoke failed")
		return
	}
	h.recordAdmin(c, actorID, "acl.revoke", req.ResourceType, req.ResourceID)
	c.Status(http.StatusNoContent)
}

// @Summary List resource grants
// @Tags acl
// @Produce json
// @Security BearerAuth
// @Param operator_id path string true "Operator ID"
// @Success 200 {array} resdto.ResourceGrantResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /acl/operators/{operator_id}/resource-grants [get]
func (h *ACLHandler) ListResourceGrants(c *gin.Context) {
	if _, ok := h.requireManage(c); !ok {
		return
	}
	operatorID, err := uuid.Parse(c.Param("operator_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid operator id", nil)
		return
	}
	grants, err := h.cmds.ListResourceGrants(c.Request.Context(), operatorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "List grants failed", nil)
		return
	}
	resp := make([]resdto.ResourceGrantResponse, 0, len(grants))
	for _, g := range grants {
		resp = append(resp, resdto.ResourceGrantResponse{
			Permission:   g.Permission,
			ResourceType: g.ResourceType,
			ResourceID:   g.ResourceID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"grants": resp})
}

// @Summary Deactivate access link
// @Tags acl
// @Security BearerAuth
// @Param id path string true "Access link ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /acl/access-links/{id} [delete]
func (h *ACLHandler) DeactivateAccessLink(c *gin.Context) {
	actorID, ok := h.requireManage(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.links.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrLinkInvalid) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Access link not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Deactivate failed", nil)
		return
	}
	h.recordAdmin(c, actorID, "access_link.deactivate", "access_link", id.String())
	c.Status(http.StatusNoContent)
}

func (h *ACLHandler) bindGrant(c *gin.Context) (*reqdto.ResourceGrantRequest, uuid.UUID, bool) {
	var req reqdto.ResourceGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return nil, uuid.Nil, false
	}
	operatorID, err := uuid.Parse(req.OperatorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid operator id", nil)
		return nil, uuid.Nil, false
	}
	return &req, operatorID, true
}

func (h *ACLHandler) abortACLError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrACLConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Already exists", nil)
	case errors.Is(err, commands.ErrRoleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func (h *ACLHandler) recordAdmin(c *gin.Context, actorID uuid.UUID, action, resourceType, resourceID string) {
	s := actorID.String()
	entry := &audit.Entry{
		ActionType:   action,
		ActorType:    audit.ActorOperator,
		ActorID:      &s,
		ResourceType: &resourceType,
		ResourceID:   &resourceID,
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		Status:       audit.StatusSuccess,
		RequestID:    middleware.GetRequestID(c),
	}
	entry.RequestPayload, _ = json.Marshal(gin.H{"path": c.FullPath()})
	h.audit.RecordDeferred(entry)
}
