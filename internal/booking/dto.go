package booking

import "time"

// CreateBookingRequest enters a booking directly, outside the enquiry
// conversion path.
type CreateBookingRequest struct {
	CustomerName         string     `json:"customerName" validate:"required,max=200"`
	CustomerPhone        string     `json:"customerPhone" validate:"required,max=20"`
	Variant              string     `json:"variant" validate:"required,max=100"`
	Color                string     `json:"color,omitempty" validate:"omitempty,max=50"`
	FuelType             string     `json:"fuelType,omitempty" validate:"omitempty,max=30"`
	Transmission         string     `json:"transmission,omitempty" validate:"omitempty,max=30"`
	EnquiryID            string     `json:"enquiryId,omitempty"`
	BookingDate          time.Time  `json:"bookingDate" validate:"required"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	FinanceRequired      bool       `json:"financeRequired"`
	FinanceProvider      string     `json:"financeProvider,omitempty" validate:"omitempty,max=100"`
	LoanAmount           float64    `json:"loanAmount,omitempty" validate:"omitempty,gte=0"`
}

// UpdateBookingRequest carries partial edits; nil fields are untouched.
type UpdateBookingRequest struct {
	Variant              *string    `json:"variant,omitempty" validate:"omitempty,max=100"`
	Color                *string    `json:"color,omitempty" validate:"omitempty,max=50"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	FinanceRequired      *bool      `json:"financeRequired,omitempty"`
	FinanceProvider      *string    `json:"financeProvider,omitempty" validate:"omitempty,max=100"`
	LoanAmount           *float64   `json:"loanAmount,omitempty" validate:"omitempty,gte=0"`
}

// UpdateStatusRequest advances the booking lifecycle.
type UpdateStatusRequest struct {
	Status  Status `json:"status" validate:"required"`
	Remarks string `json:"remarks,omitempty"`
}

// RemarksRequest writes the caller's own remark tier.
type RemarksRequest struct {
	Remarks string `json:"remarks" validate:"required"`
}

// ListFilter narrows a list fetch. OverdueOnly is evaluated client-side
// because overdue is a derived property the backend does not store.
type ListFilter struct {
	Status      Status
	Timeline    string
	OverdueOnly bool
}
