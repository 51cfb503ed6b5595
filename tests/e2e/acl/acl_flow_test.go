//go:build e2e

package acl_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	resdto "reimburse-api/internal/handler/dto/response"
	"reimburse-api/tests/common/builder"
	"reimburse-api/tests/common/dbtest"
	"reimburse-api/tests/common/httptest"
	"reimburse-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	rolesURL           = "/api/v1/acl/roles"
	rolePermissionsURL = "/api/v1/acl/role-permissions"
	roleAssignmentsURL = "/api/v1/acl/role-assignments"
	resourceGrantsURL  = "/api/v1/acl/resource-grants"
	loginURL           = "/api/v1/auth/login"
)

type ACLSuite struct {
	e2e.SharedSuite
}

func (s *ACLSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestACLSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ACLSuite))
}

func (s *ACLSuite) login(t *testing.T, email, password string) string {
	t.Helper()

	body := map[string]string{"email": email, "password": password}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, body, "")
	require.Equal(t, http.StatusOK, w.Code, "Login should succeed: %s", w.Body.String())

	var result resdto.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &result))
	return result.AccessToken
}

// =============================================================================
// TestRoleManagement - roles, permissions and assignments
// =============================================================================

func (s *ACLSuite) TestRoleManagement() {
	s.Run("Normal case: delegated admin can manage roles after assignment", func() {
		t := s.T()
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)
		operatorToken := s.login(t, dbtest.OperatorEmail, dbtest.OperatorPassword)

		// Plain operator starts without manage_acl
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rolesURL,
			map[string]string{"name": "auditor"}, operatorToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		// Superuser builds a role that carries manage_acl and hands it over
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, rolesURL,
			map[string]string{"name": "acl-admin"}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, "Role creation should succeed: %s", w.Body.String())

		var created resdto.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, rolePermissionsURL,
			map[string]string{"role_name": "acl-admin", "permission_name": "manage_acl"}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, roleAssignmentsURL,
			map[string]string{"operator_id": dbtest.OperatorID.String(), "role_name": "acl-admin"}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		// The same operator can now manage roles
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, rolesURL,
			map[string]string{"name": "auditor"}, operatorToken)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("Error case: duplicate role name conflicts", func() {
		t := s.T()
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rolesURL,
			map[string]string{"name": "reviewer"}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: assigning an unknown role fails", func() {
		t := s.T()
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roleAssignmentsURL,
			map[string]string{"operator_id": dbtest.OperatorID.String(), "role_name": "no-such-role"}, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: unauthenticated access is rejected", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rolesURL,
			map[string]string{"name": "auditor"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestResourceGrants - per-resource permissions
// =============================================================================

func (s *ACLSuite) TestResourceGrants() {
	s.Run("Normal case: grant, list and revoke a resource permission", func() {
		t := s.T()
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)
		resourceID := uuid.New().String()

		grant := map[string]string{
			"operator_id":   dbtest.OperatorID.String(),
			"permission":    "view_submission",
			"resource_type": "submission",
			"resource_id":   resourceID,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, resourceGrantsURL, grant, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, "Grant should succeed: %s", w.Body.String())

		listURL := "/api/v1/acl/operators/" + dbtest.OperatorID.String() + "/resource-grants"
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var listing struct {
			Grants []resdto.ResourceGrantResponse `json:"grants"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listing))
		require.Len(t, listing.Grants, 1)
		require.Equal(t, resourceID, listing.Grants[0].ResourceID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, resourceGrantsURL+"/revoke", grant, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listing))
		require.Empty(t, listing.Grants)
	})
}

// submitForm drives the public flow end to end and returns a live submission
// with its access token.
func (s *ACLSuite) submitForm(t *testing.T) resdto.SubmitFormResponse {
	t.Helper()

	reqBody := builder.NewFormBuilder().BuildCreateRequestDTO()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/v1/forms", reqBody,
		map[string]string{"X-API-Key": dbtest.ServiceAPIKey})
	require.Equal(t, http.StatusCreated, w.Code)

	var createdForm resdto.CreateFormResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &createdForm))

	files := []httptest.MultipartFile{
		{Field: "invoice", Filename: "factura.pdf", Content: []byte("pdf")},
		{Field: "prescription", Filename: "receta.jpg", Content: []byte("jpg")},
	}
	w = httptest.PerformMultipartRequest(t, s.Router, http.MethodPost,
		"/api/v1/forms/"+createdForm.Form.Token+"/submit", files, nil)
	require.Equal(t, http.StatusOK, w.Code, "Submit should succeed: %s", w.Body.String())

	var submitted resdto.SubmitFormResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &submitted))
	return submitted
}

// =============================================================================
// TestAccessLinkDeactivation - revoking issued links
// =============================================================================

func (s *ACLSuite) TestAccessLinkDeactivation() {
	s.Run("Normal case: deactivated link stops resolving", func() {
		t := s.T()
		submitted := s.submitForm(t)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var linkID uuid.UUID
		require.NoError(t, s.DB.QueryRow(ctx,
			`SELECT id FROM access_links WHERE token = $1`, submitted.AccessToken).Scan(&linkID))

		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			"/api/v1/acl/access-links/"+linkID.String(), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		operatorToken := s.login(t, dbtest.OperatorEmail, dbtest.OperatorPassword)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/v1/document-access/"+submitted.AccessToken, nil, operatorToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: unknown link id returns 404", func() {
		t := s.T()
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			"/api/v1/acl/access-links/"+uuid.New().String(), nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestGrantDeactivation - inactive roles and permissions grant nothing
// =============================================================================

func (s *ACLSuite) TestGrantDeactivation() {
	s.Run("Normal case: deactivated role stops granting", func() {
		t := s.T()
		submitted := s.submitForm(t)
		operatorToken := s.login(t, dbtest.OperatorEmail, dbtest.OperatorPassword)
		accessURL := "/api/v1/document-access/" + submitted.AccessToken

		// Reviewer role carries view_submission
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, accessURL, nil, operatorToken)
		require.Equal(t, http.StatusOK, w.Code, "Reviewer should see the submission: %s", w.Body.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := s.DB.Exec(ctx, `UPDATE roles SET is_active = false WHERE name = 'reviewer'`)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, accessURL, nil, operatorToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Normal case: deactivated permission voids a resource grant", func() {
		t := s.T()
		submitted := s.submitForm(t)
		adminToken := s.login(t, dbtest.SuperuserEmail, dbtest.AdminPassword)
		operatorToken := s.login(t, dbtest.OperatorEmail, dbtest.OperatorPassword)
		accessURL := "/api/v1/document-access/" + submitted.AccessToken

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Take the role path away so only the direct grant can authorize
		_, err := s.DB.Exec(ctx, `UPDATE roles SET is_active = false WHERE name = 'reviewer'`)
		require.NoError(t, err)

		grant := map[string]string{
			"operator_id":   dbtest.OperatorID.String(),
			"permission":    "view_submission",
			"resource_type": "submission",
			"resource_id":   submitted.SubmissionID.String(),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, resourceGrantsURL, grant, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, accessURL, nil, operatorToken)
		require.Equal(t, http.StatusOK, w.Code, "Direct grant should authorize: %s", w.Body.String())

		_, err = s.DB.Exec(ctx, `UPDATE permissions SET is_active = false WHERE name = 'view_submission'`)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, accessURL, nil, operatorToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
