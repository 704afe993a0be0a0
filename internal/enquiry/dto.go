package enquiry

// CreateEnquiryRequest is the intake payload from the app.
type CreateEnquiryRequest struct {
	CustomerName  string `json:"customerName" validate:"required,max=200"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=20"`
	CustomerEmail string `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Model         string `json:"model" validate:"required,max=100"`
	Variant       string `json:"variant,omitempty" validate:"omitempty,max=100"`
	Color         string `json:"color,omitempty" validate:"omitempty,max=50"`
	Source        Source `json:"source" validate:"required"`
	Remarks       string `json:"remarks,omitempty"`
}

// UpdateEnquiryRequest carries partial edits; nil fields are untouched.
type UpdateEnquiryRequest struct {
	CustomerName  *string `json:"customerName,omitempty" validate:"omitempty,max=200"`
	CustomerPhone *string `json:"customerPhone,omitempty" validate:"omitempty,max=20"`
	CustomerEmail *string `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Model         *string `json:"model,omitempty" validate:"omitempty,max=100"`
	Variant       *string `json:"variant,omitempty" validate:"omitempty,max=100"`
	Color         *string `json:"color,omitempty" validate:"omitempty,max=50"`
	Remarks       *string `json:"remarks,omitempty"`
}

// AssignRequest moves an enquiry to another advisor.
type AssignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

// UpdateStatusRequest advances the workflow status.
type UpdateStatusRequest struct {
	Status  Status `json:"status" validate:"required"`
	Remarks string `json:"remarks,omitempty"`
}

// UpdateCategoryRequest moves an enquiry between funnel buckets.
type UpdateCategoryRequest struct {
	Category Category `json:"category" validate:"required"`
	Reason   string   `json:"reason,omitempty"`
}

// ConvertRequest triggers conversion of a HOT enquiry into a booking.
type ConvertRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ListFilter narrows a list fetch. All filtering beyond these query hints
// (visibility, dedupe) happens client-side after the fetch.
type ListFilter struct {
	Category Category
	Status   Status
	Timeline string
	Search   string
}
