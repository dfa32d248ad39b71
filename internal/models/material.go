package models

import (
	"time"

	"github.com/procurehub/backend/internal/docstore"
)

// Material is a catalog entry, keyed by id in the materials collection.
type Material struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	VendorID  string    `json:"vendor_id,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m Material) Document() docstore.Document {
	doc := docstore.Document{
		"sku":       m.SKU,
		"name":      m.Name,
		"unitPrice": m.UnitPrice,
		"createdBy": m.CreatedBy,
		"createdAt": m.CreatedAt,
		"updatedAt": m.UpdatedAt,
	}
	if m.Category != "" {
		doc["category"] = m.Category
	}
	if m.Unit != "" {
		doc["unit"] = m.Unit
	}
	if m.VendorID != "" {
		doc["vendorId"] = m.VendorID
	}
	return doc
}

func MaterialFromDocument(id string, doc docstore.Document) Material {
	return Material{
		ID:        id,
		SKU:       docString(doc, "sku"),
		Name:      docString(doc, "name"),
		Category:  docString(doc, "category"),
		Unit:      docString(doc, "unit"),
		UnitPrice: docFloat(doc, "unitPrice"),
		VendorID:  docString(doc, "vendorId"),
		CreatedBy: docString(doc, "createdBy"),
		CreatedAt: docTime(doc, "createdAt"),
		UpdatedAt: docTime(doc, "updatedAt"),
	}
}
