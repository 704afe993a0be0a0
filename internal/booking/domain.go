// Package booking covers confirmed-or-pending vehicle orders derived from
// converted enquiries or entered directly.
package booking

import (
	"time"
)

// Status represents the lifecycle of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAssigned  Status = "ASSIGNED"
	StatusConfirmed Status = "CONFIRMED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal checks if the booking has left the active pipeline.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Booking is a vehicle order. AdvisorID is the assignment key and the single
// source of truth for whose booking this is; the backend occasionally returns
// records without one, and those must never reach a front-line advisor.
type Booking struct {
	ID                   string     `json:"id"`
	CustomerName         string     `json:"customerName"`
	CustomerPhone        string     `json:"customerPhone"`
	Variant              string     `json:"variant"`
	Color                string     `json:"color,omitempty"`
	FuelType             string     `json:"fuelType,omitempty"`
	Transmission         string     `json:"transmission,omitempty"`
	Status               Status     `json:"status"`
	AdvisorID            string     `json:"advisorId"`
	EnquiryID            string     `json:"enquiryId,omitempty"`
	BookingDate          time.Time  `json:"bookingDate"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	FinanceRequired      bool       `json:"financeRequired"`
	FinanceProvider      string     `json:"financeProvider,omitempty"`
	LoanAmount           float64    `json:"loanAmount,omitempty"`
	InStock              bool       `json:"inStock"`
	AdvisorRemarks       string     `json:"advisorRemarks,omitempty"`
	TeamLeadRemarks      string     `json:"teamLeadRemarks,omitempty"`
	SalesManagerRemarks  string     `json:"salesManagerRemarks,omitempty"`
	GMRemarks            string     `json:"gmRemarks,omitempty"`
	AdminRemarks         string     `json:"adminRemarks,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// RecordID implements access.Record.
func (b Booking) RecordID() string { return b.ID }

// CreatorID implements access.Record. Bookings carry no creator identity;
// ownership is advisor assignment alone.
func (b Booking) CreatorID() string { return "" }

// OwnerID implements access.Record.
func (b Booking) OwnerID() string { return b.AdvisorID }

// IsOverdue reports whether delivery was expected before now and the booking
// is still in the active pipeline. Derived, never persisted.
func (b Booking) IsOverdue(now time.Time) bool {
	if b.ExpectedDeliveryDate == nil {
		return false
	}
	return b.ExpectedDeliveryDate.Before(now) && !b.Status.IsTerminal()
}
