package response

import "reimburse-api/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string                `json:"access_token"`
	Operator    *queries.OperatorView `json:"operator"`
}
