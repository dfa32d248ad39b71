package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleViewer, PermMaterialRead, true},
		{RoleViewer, PermMaterialCreate, false},
		{RoleViewer, PermRequisitionApprove, false},

		{RoleBuyer, PermMaterialCreate, true},
		{RoleBuyer, PermRequisitionCreate, true},
		{RoleBuyer, PermRequisitionApprove, false},
		{RoleBuyer, PermMaterialDelete, false},

		{RoleApprover, PermRequisitionApprove, true},
		{RoleApprover, PermRequisitionReject, true},
		{RoleApprover, PermRequisitionCreate, false},
		{RoleApprover, PermMaterialCreate, false},

		{RoleAdmin, PermMaterialDelete, true},
		{RoleAdmin, PermAuditRead, true},

		{"nonexistent", PermMaterialRead, false},
		{RoleViewer, "nonexistent", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestAuditReadIsAdminOnly(t *testing.T) {
	for role := range RolePermissions {
		if role == RoleAdmin {
			continue
		}
		if HasPermission(role, PermAuditRead) {
			t.Errorf("role %q can read audit logs", role)
		}
	}
}
