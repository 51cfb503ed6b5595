package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/handler/httperr"
	"reimburse-api/internal/handler/middleware"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	permViewSubmission = "view_submission"
	resourceSubmission = "submission"
)

type DocumentAccessHandler struct {
	links commands.AccessLinkCommands
	acl   commands.ACLCommands
	q     queries.SubmissionQueries
	audit commands.AuditCommands
}

func NewDocumentAccessHandler(links commands.AccessLinkCommands, acl commands.ACLCommands, q queries.SubmissionQueries, auditCmds commands.AuditCommands) *DocumentAccessHandler {
	return &DocumentAccessHandler{links: links, acl: acl, q: q, audit: auditCmds}
}

// resolve validates the access link and the operator's permission on the
// linked submission. Every endpoint in this handler goes through it.
func (h *DocumentAccessHandler) resolve(c *gin.Context) (uuid.UUID, bool) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, false
	}
	link, err := h.links.Validate(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLinkExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Access link expired", nil)
		case errors.Is(err, commands.ErrLinkInvalid):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Access link not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to validate access link", nil)
		}
		return uuid.Nil, false
	}
	if err := h.acl.RequireResourcePermission(c.Request.Context(), operatorID, permViewSubmission, resourceSubmission, link.SubmissionID.String()); err != nil {
		if errors.Is(err, commands.ErrPermissionDenied) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
			return uuid.Nil, false
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Permission check failed", nil)
		return uuid.Nil, false
	}
	return link.SubmissionID, true
}

// @Summary Get submission
// @Description Get the submission and its documents behind an access link
// @Tags document-access
// @Produce json
// @Security BearerAuth
// @Param token path string true "Access link token"
// @Success 200 {object} queries.SubmissionView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /document-access/{token} [get]
func (h *DocumentAccessHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := h.resolve(c)
	if !ok {
		return
	}
	view, err := h.q.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		if errors.Is(err, queries.ErrDocumentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Submission not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load submission", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Download document
// @Description Download a document as an attachment
// @Tags document-access
// @Produce octet-stream
// @Security BearerAuth
// @Param token path string true "Access link token"
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /document-access/{token}/documents/{id}/invoice/download [get]
func (h *DocumentAccessHandler) Download(c *gin.Context) {
	h.serveDocument(c, true)
}

// @Summary View document
// @Description Stream a document for inline viewing
// @Tags document-access
// @Produce octet-stream
// @Security BearerAuth
// @Param token path string true "Access link token"
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /document-access/{token}/documents/{id}/view [get]
func (h *DocumentAccessHandler) View(c *gin.Context) {
	h.serveDocument(c, false)
}

func (h *DocumentAccessHandler) serveDocument(c *gin.Context, asAttachment bool) {
	submissionID, ok := h.resolve(c)
	if !ok {
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid document id", nil)
		return
	}
	content, err := h.q.OpenDocument(c.Request.Context(), submissionID, documentID)
	if err != nil {
		if errors.Is(err, queries.ErrDocumentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Document not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to open document", nil)
		return
	}
	defer content.Body.Close()

	disposition := "inline"
	if asAttachment {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, content.Document.DisplayName))
	c.Header("Content-Type", content.Document.MIMEType)
	http.ServeContent(c.Writer, c.Request, content.Document.DisplayName, time.Time{}, content.Body)

	h.recordAccess(c, submissionID, documentID, disposition)
}

func (h *DocumentAccessHandler) recordAccess(c *gin.Context, submissionID, documentID uuid.UUID, disposition string) {
	entry := &audit.Entry{
		ActionType: "document.access",
		ActorType:  audit.ActorOperator,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Status:     audit.StatusSuccess,
		RequestID:  middleware.GetRequestID(c),
	}
	if operatorID, ok := middleware.GetOperatorID(c); ok {
		s := operatorID.String()
		entry.ActorID = &s
	}
	rt, rid := "document", documentID.String()
	entry.ResourceType = &rt
	entry.ResourceID = &rid
	entry.RequestPayload, _ = json.Marshal(gin.H{"submission_id": submissionID, "disposition": disposition})
	h.audit.RecordDeferred(entry)
}
