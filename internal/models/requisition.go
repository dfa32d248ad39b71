package models

import (
	"time"

	"github.com/procurehub/backend/internal/docstore"
)

// Requisition statuses.
const (
	RequisitionStatusDraft     = "draft"
	RequisitionStatusSubmitted = "submitted"
	RequisitionStatusApproved  = "approved"
	RequisitionStatusRejected  = "rejected"
	RequisitionStatusCancelled = "cancelled"
)

// ValidRequisitionTransitions maps each status to the statuses it may
// move to. Terminal statuses map to an empty list.
var ValidRequisitionTransitions = map[string][]string{
	RequisitionStatusDraft:     {RequisitionStatusSubmitted, RequisitionStatusCancelled},
	RequisitionStatusSubmitted: {RequisitionStatusApproved, RequisitionStatusRejected, RequisitionStatusCancelled},
	RequisitionStatusApproved:  {},
	RequisitionStatusRejected:  {},
	RequisitionStatusCancelled: {},
}

func IsValidRequisitionTransition(from, to string) bool {
	for _, allowed := range ValidRequisitionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Requisition is a material request, keyed by id in the requisitions
// collection.
type Requisition struct {
	ID          string    `json:"id"`
	MaterialID  string    `json:"material_id"`
	Quantity    int64     `json:"quantity"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	RequestedBy string    `json:"requested_by"`
	DecidedBy   string    `json:"decided_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r Requisition) Document() docstore.Document {
	doc := docstore.Document{
		"materialId":  r.MaterialID,
		"quantity":    r.Quantity,
		"status":      r.Status,
		"requestedBy": r.RequestedBy,
		"createdAt":   r.CreatedAt,
		"updatedAt":   r.UpdatedAt,
	}
	if r.Reason != "" {
		doc["reason"] = r.Reason
	}
	if r.DecidedBy != "" {
		doc["decidedBy"] = r.DecidedBy
	}
	return doc
}

func RequisitionFromDocument(id string, doc docstore.Document) Requisition {
	return Requisition{
		ID:          id,
		MaterialID:  docString(doc, "materialId"),
		Quantity:    docInt(doc, "quantity"),
		Status:      docString(doc, "status"),
		Reason:      docString(doc, "reason"),
		RequestedBy: docString(doc, "requestedBy"),
		DecidedBy:   docString(doc, "decidedBy"),
		CreatedAt:   docTime(doc, "createdAt"),
		UpdatedAt:   docTime(doc, "updatedAt"),
	}
}
