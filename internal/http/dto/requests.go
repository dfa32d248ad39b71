package dto

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetAdminStatusRequest struct {
	IsAdmin bool `json:"is_admin"`
}

type MaterialRequest struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	VendorID  string  `json:"vendor_id,omitempty"`
}

type CreateRequisitionRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   int64  `json:"quantity"`
	Reason     string `json:"reason,omitempty"`
}

type RejectRequisitionRequest struct {
	Reason string `json:"reason"`
}
