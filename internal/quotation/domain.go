package quotation

import "time"

// Status is the lifecycle state of a quotation.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Quotation is a priced offer prepared for a customer, usually tied to an
// enquiry. Pricing is computed upstream; this client only relays it.
type Quotation struct {
	ID            string    `json:"id"`
	EnquiryID     string    `json:"enquiryId,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Model         string    `json:"model,omitempty"`
	Variant       string    `json:"variant"`
	Color         string    `json:"color,omitempty"`
	ExShowroom    float64   `json:"exShowroomPrice,omitempty"`
	OnRoad        float64   `json:"onRoadPrice,omitempty"`
	Discount      float64   `json:"discount,omitempty"`
	Status        Status    `json:"status"`
	ValidUntil    time.Time `json:"validUntil,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
