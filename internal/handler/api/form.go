package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/domain/document"
	reqdto "reimburse-api/internal/handler/dto/request"
	resdto "reimburse-api/internal/handler/dto/response"
	"reimburse-api/internal/handler/httperr"
	"reimburse-api/internal/handler/middleware"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type FormHandler struct {
	cmds        commands.FormCommands
	q           queries.FormQueries
	audit       commands.AuditCommands
	maxFileSize int64
}

func NewFormHandler(cmds commands.FormCommands, q queries.FormQueries, auditCmds commands.AuditCommands, maxFileSize int64) *FormHandler {
	return &FormHandler{cmds: cmds, q: q, audit: auditCmds, maxFileSize: maxFileSize}
}

// @Summary Create reimbursement form
// @Description Create a pre-filled form and return its public token
// @Tags forms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateFormRequest true "Create form request"
// @Success 201 {object} resdto.CreateFormResponse
// @Success 200 {object} resdto.CreateFormResponse "Replay of an existing form"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /forms [post]
func (h *FormHandler) Create(c *gin.Context) {
	var req reqdto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in := commands.CreateFormInput{
		ClientID:  req.ClientID,
		PolicyID:  req.PolicyID,
		ServiceID: req.ServiceID,
		Name:      req.Name,
		DNI:       req.DNI,
		CBU:       req.CBU,
		CUIT:      req.CUIT,
		Email:     req.Email,
	}
	// Header wins over the body field when both are present.
	rawKey := c.GetHeader(idempotencyKeyHeader)
	if rawKey == "" && req.IdempotencyKey != nil {
		rawKey = *req.IdempotencyKey
	}
	if rawKey != "" {
		key, err := uuid.Parse(rawKey)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key", nil)
			return
		}
		in.IdempotencyKey = &key
	}

	result, err := h.cmds.CreateForm(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid form data", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create form failed", nil)
		return
	}

	h.recordCreate(c, result)

	status := http.StatusCreated
	if !result.WasCreated {
		status = http.StatusOK
	}
	c.JSON(status, resdto.CreateFormResponse{Form: result.Form})
}

// @Summary Get form
// @Description Get form details by public token
// @Tags forms
// @Produce json
// @Param token path string true "Form token"
// @Success 200 {object} queries.FormView
// @Failure 404 {object} map[string]string
// @Router /forms/{token} [get]
func (h *FormHandler) Get(c *gin.Context) {
	view, err := h.q.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, queries.ErrFormNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Form not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load form", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get form status
// @Description Get form status by public token
// @Tags forms
// @Produce json
// @Param token path string true "Form token"
// @Success 200 {object} queries.FormStatusView
// @Failure 404 {object} map[string]string
// @Router /forms/{token}/status [get]
func (h *FormHandler) GetStatus(c *gin.Context) {
	view, err := h.q.GetStatusByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, queries.ErrFormNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Form not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load form", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Submit form
// @Description Submit a form with its documents (multipart)
// @Tags forms
// @Accept multipart/form-data
// @Produce json
// @Param token path string true "Form token"
// @Param invoice formData file true "Invoice document"
// @Param prescription formData file true "Prescription document"
// @Param diagnosis formData file false "Diagnosis documents (up to 3)"
// @Param cbu formData string false "Bank account override"
// @Param cuit formData string false "Tax ID override"
// @Param email formData string false "Contact email override"
// @Success 200 {object} resdto.SubmitFormResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /forms/{token}/submit [post]
func (h *FormHandler) Submit(c *gin.Context) {
	token := c.Param("token")

	mf, err := c.MultipartForm()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid multipart request", nil)
		return
	}

	var req reqdto.SubmitFormRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in := commands.SubmitInput{CBU: req.CBU, CUIT: req.CUIT, Email: req.Email}
	fileFields := []struct {
		field   string
		docType document.Type
	}{
		{"invoice", document.TypeInvoice},
		{"prescription", document.TypePrescription},
		{"diagnosis", document.TypeDiagnosis},
	}
	for _, ff := range fileFields {
		for _, fh := range mf.File[ff.field] {
			upload, err := h.readUpload(fh, ff.docType)
			if err != nil {
				h.abortSubmitError(c, token, err)
				return
			}
			in.Files = append(in.Files, *upload)
		}
	}

	result, err := h.cmds.Submit(c.Request.Context(), token, in)
	if err != nil {
		h.abortSubmitError(c, token, err)
		return
	}

	h.recordSubmit(c, token, result)
	c.JSON(http.StatusOK, resdto.SubmitFormResponse{
		SubmissionID: result.SubmissionID,
		AccessToken:  result.AccessToken,
		OrderID:      result.OrderID,
	})
}

func (h *FormHandler) readUpload(fh *multipart.FileHeader, docType document.Type) (*commands.FileUpload, error) {
	if fh.Size > h.maxFileSize {
		return nil, commands.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > h.maxFileSize {
		return nil, commands.ErrFileTooLarge
	}
	return &commands.FileUpload{
		Type:         docType,
		OriginalName: fh.Filename,
		MIMEType:     fh.Header.Get("Content-Type"),
		Content:      content,
	}, nil
}

func (h *FormHandler) abortSubmitError(c *gin.Context, token string, err error) {
	h.recordSubmitError(c, token, err)
	switch {
	case errors.Is(err, queries.ErrFormNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Form not found", nil)
	case errors.Is(err, commands.ErrFormExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Form expired", nil)
	case errors.Is(err, commands.ErrFormAlreadySubmitted):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Form already submitted", nil)
	case errors.Is(err, commands.ErrFileTooLarge):
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "File too large", nil)
	case errors.Is(err, commands.ErrMissingDocument),
		errors.Is(err, commands.ErrTooManyDocuments),
		errors.Is(err, commands.ErrUnsupportedFileType),
		errors.Is(err, commands.ErrEmptyFile),
		errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid submission", gin.H{"reason": err.Error()})
	case errors.Is(err, commands.ErrServiceUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "External service unavailable", nil)
	case errors.Is(err, commands.ErrExternalAPI):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "External service error", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Submit failed", nil)
	}
}

func (h *FormHandler) recordCreate(c *gin.Context, result *commands.CreateFormResult) {
	entry := h.baseEntry(c, "form.create", audit.StatusSuccess)
	if keyID, ok := middleware.GetAPIKeyID(c); ok {
		s := keyID.String()
		entry.ActorType = audit.ActorAPIKey
		entry.ActorID = &s
	}
	rt, rid := "form", result.Form.ID.String()
	entry.ResourceType = &rt
	entry.ResourceID = &rid
	entry.ResponsePayload, _ = json.Marshal(gin.H{"form_id": result.Form.ID, "was_created": result.WasCreated})
	h.audit.RecordDeferred(entry)
}

func (h *FormHandler) recordSubmit(c *gin.Context, token string, result *commands.SubmitResult) {
	entry := h.baseEntry(c, "form.submit", audit.StatusSuccess)
	rt, rid := "submission", result.SubmissionID.String()
	entry.ResourceType = &rt
	entry.ResourceID = &rid
	entry.RequestPayload, _ = json.Marshal(gin.H{"token": token})
	entry.ResponsePayload, _ = json.Marshal(gin.H{"submission_id": result.SubmissionID, "order_id": result.OrderID})
	h.audit.RecordDeferred(entry)
}

func (h *FormHandler) recordSubmitError(c *gin.Context, token string, err error) {
	entry := h.baseEntry(c, "form.submit", audit.StatusError)
	msg := err.Error()
	entry.ErrorMessage = &msg
	entry.RequestPayload, _ = json.Marshal(gin.H{"token": token})
	h.audit.RecordDeferred(entry)
}

func (h *FormHandler) baseEntry(c *gin.Context, action string, status audit.Status) *audit.Entry {
	return &audit.Entry{
		ActionType: action,
		ActorType:  audit.ActorSystem,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Status:     status,
		RequestID:  middleware.GetRequestID(c),
	}
}
