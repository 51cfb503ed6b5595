package response

import (
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateFormResponse struct {
	Form *queries.FormView `json:"form"`
}

type SubmitFormResponse struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	AccessToken  string    `json:"access_token"`
	OrderID      string    `json:"order_id,omitempty"`
}
