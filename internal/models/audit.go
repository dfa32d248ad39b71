package models

import (
	"time"

	"github.com/procurehub/backend/internal/docstore"
)

// Entity types referenced by audit events and filters.
const (
	EntityMaterial          = "material"
	EntityRequisition       = "requisition"
	EntityPurchaseOrder     = "purchase_order"
	EntityShipment          = "shipment"
	EntityInventoryMovement = "inventory_movement"
)

// Lifecycle actions attached to entity mutations.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionStatusChange = "status_change"
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionSubmit       = "submit"
	ActionCancel       = "cancel"
)

// Security and permission audit actions.
const (
	AuditUserLogin               = "USER_LOGIN"
	AuditUserLogout              = "USER_LOGOUT"
	AuditUserRegistered          = "USER_REGISTERED"
	AuditUserCreated             = "USER_CREATED"
	AuditRoleChanged             = "ROLE_CHANGED"
	AuditRoleAssigned            = "ROLE_ASSIGNED"
	AuditPermissionDenied        = "PERMISSION_DENIED"
	AuditPermissionGranted       = "PERMISSION_GRANTED"
	AuditMaterialCreated         = "MATERIAL_CREATED"
	AuditMaterialUpdated         = "MATERIAL_UPDATED"
	AuditMaterialDeleted         = "MATERIAL_DELETED"
	AuditMaterialRequestCreated  = "MATERIAL_REQUEST_CREATED"
	AuditMaterialRequestApproved = "MATERIAL_REQUEST_APPROVED"
	AuditMaterialRequestRejected = "MATERIAL_REQUEST_REJECTED"
	AuditInventoryUpdated        = "INVENTORY_UPDATED"
	AuditInventoryTransfer       = "INVENTORY_TRANSFER"
	AuditSuspiciousActivity      = "SECURITY_SUSPICIOUS_ACTIVITY"
	AuditFailedLogin             = "SECURITY_FAILED_LOGIN"
	AuditAccountLocked           = "SECURITY_ACCOUNT_LOCKED"
	AuditPasswordReset           = "SECURITY_PASSWORD_RESET"
)

// AuditEvent is one recorded occurrence. Immutable once appended; ID is
// assigned by the store on append and is empty before that.
type AuditEvent struct {
	ID           string         `json:"id,omitempty"`
	Action       string         `json:"action"`
	UserID       string         `json:"userId"`
	TargetUserID string         `json:"targetUserId,omitempty"`
	Resource     string         `json:"resource,omitempty"`
	ResourceID   string         `json:"resourceId,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
}

// AuditLogFilter selects events by AND of its set fields. Absent fields
// impose no constraint; date bounds are inclusive.
type AuditLogFilter struct {
	UserID    string
	Action    string
	Resource  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int64
}

func (e AuditEvent) Document() docstore.Document {
	doc := docstore.Document{
		"action":    e.Action,
		"userId":    e.UserID,
		"timestamp": e.Timestamp,
	}
	if e.TargetUserID != "" {
		doc["targetUserId"] = e.TargetUserID
	}
	if e.Resource != "" {
		doc["resource"] = e.Resource
	}
	if e.ResourceID != "" {
		doc["resourceId"] = e.ResourceID
	}
	if len(e.Details) > 0 {
		doc["details"] = map[string]any(e.Details)
	}
	if e.IPAddress != "" {
		doc["ipAddress"] = e.IPAddress
	}
	if e.UserAgent != "" {
		doc["userAgent"] = e.UserAgent
	}
	return doc
}

func AuditEventFromDocument(doc docstore.Document) AuditEvent {
	return AuditEvent{
		ID:           docString(doc, "_id"),
		Action:       docString(doc, "action"),
		UserID:       docString(doc, "userId"),
		TargetUserID: docString(doc, "targetUserId"),
		Resource:     docString(doc, "resource"),
		ResourceID:   docString(doc, "resourceId"),
		Details:      docMap(doc, "details"),
		Timestamp:    docTime(doc, "timestamp"),
		IPAddress:    docString(doc, "ipAddress"),
		UserAgent:    docString(doc, "userAgent"),
	}
}
