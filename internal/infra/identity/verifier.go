package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"reimburse-api/internal/pkg/errs"
)

var ErrVerificationFailed = errs.New("identity verification failed")

// HTTPVerifier exchanges an identity-provider token for a verified email by
// calling the provider's verification endpoint. The provider is a black box;
// only the returned email is trusted.
type HTTPVerifier struct {
	verifyURL  string
	httpClient *http.Client
}

func NewHTTPVerifier(verifyURL string) *HTTPVerifier {
	return &HTTPVerifier{
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", errs.Wrap(err, "failed to marshal verification request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", errs.Wrap(err, "failed to build verification request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "verification request failed"), ErrVerificationFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.Mark(errs.New("identity provider rejected token"), ErrVerificationFailed)
	}

	var decoded struct {
		Email string `json:"email"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to read verification response"), ErrVerificationFailed)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", errs.Mark(errs.Wrap(err, "malformed verification response"), ErrVerificationFailed)
	}
	if decoded.Email == "" {
		return "", errs.Mark(errs.New("verification response missing email"), ErrVerificationFailed)
	}
	return decoded.Email, nil
}
