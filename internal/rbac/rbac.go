package rbac

// Role constants
const (
	RoleViewer   = "viewer"
	RoleBuyer    = "buyer"
	RoleApprover = "approver"
	RoleAdmin    = "admin"
)

// Permission constants, "resource:action"
const (
	PermMaterialRead        = "material:read"
	PermMaterialCreate      = "material:create"
	PermMaterialUpdate      = "material:update"
	PermMaterialDelete      = "material:delete"
	PermRequisitionCreate   = "requisition:create"
	PermRequisitionSubmit   = "requisition:submit"
	PermRequisitionApprove  = "requisition:approve"
	PermRequisitionReject   = "requisition:reject"
	PermPurchaseOrderCreate = "purchase_order:create"
	PermShipmentUpdate      = "shipment:update"
	PermAuditRead           = "audit:read"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleViewer: {
		PermMaterialRead,
	},
	RoleBuyer: {
		PermMaterialRead, PermMaterialCreate, PermMaterialUpdate,
		PermRequisitionCreate, PermRequisitionSubmit, PermPurchaseOrderCreate,
	},
	RoleApprover: {
		PermMaterialRead,
		PermRequisitionApprove, PermRequisitionReject, PermShipmentUpdate,
	},
	RoleAdmin: {
		PermMaterialRead, PermMaterialCreate, PermMaterialUpdate, PermMaterialDelete,
		PermRequisitionCreate, PermRequisitionSubmit, PermRequisitionApprove, PermRequisitionReject,
		PermPurchaseOrderCreate, PermShipmentUpdate, PermAuditRead,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
