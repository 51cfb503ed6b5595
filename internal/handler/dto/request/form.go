package request

type CreateFormRequest struct {
	ClientID       string  `json:"client_id" binding:"required"`
	PolicyID       string  `json:"policy_id" binding:"required"`
	ServiceID      int     `json:"service_id"`
	Name           string  `json:"name" binding:"required"`
	DNI            string  `json:"dni" binding:"required"`
	CBU            *string `json:"cbu,omitempty"`
	CUIT           *string `json:"cuit,omitempty"`
	Email          string  `json:"email" binding:"required,email"`
	IdempotencyKey *string `json:"idempotency_key,omitempty"`
}

// SubmitFormRequest carries the non-file fields of the multipart submission.
type SubmitFormRequest struct {
	CBU   *string `form:"cbu"`
	CUIT  *string `form:"cuit"`
	Email *string `form:"email"`
}
