package quotation

import "time"

// CreateQuotationRequest prepares a new quotation upstream.
type CreateQuotationRequest struct {
	EnquiryID     string     `json:"enquiryId,omitempty"`
	CustomerName  string     `json:"customerName" validate:"required,max=200"`
	CustomerPhone string     `json:"customerPhone,omitempty" validate:"omitempty,max=20"`
	Model         string     `json:"model,omitempty" validate:"omitempty,max=100"`
	Variant       string     `json:"variant" validate:"required,max=100"`
	Color         string     `json:"color,omitempty" validate:"omitempty,max=50"`
	Discount      float64    `json:"discount,omitempty" validate:"omitempty,gte=0"`
	ValidUntil    *time.Time `json:"validUntil,omitempty"`
}

// ListFilter narrows a quotation list fetch.
type ListFilter struct {
	Status    Status
	EnquiryID string
}
