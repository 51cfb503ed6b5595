package request

type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreatePermissionRequest struct {
	Name string `json:"name" binding:"required"`
}

type RolePermissionRequest struct {
	RoleName       string `json:"role_name" binding:"required"`
	PermissionName string `json:"permission_name" binding:"required"`
}

type AssignRoleRequest struct {
	OperatorID string `json:"operator_id" binding:"required,uuid"`
	RoleName   string `json:"role_name" binding:"required"`
}

type ResourceGrantRequest struct {
	OperatorID   string `json:"operator_id" binding:"required,uuid"`
	Permission   string `json:"permission" binding:"required"`
	ResourceType string `json:"resource_type" binding:"required"`
	ResourceID   string `json:"resource_id" binding:"required"`
}
