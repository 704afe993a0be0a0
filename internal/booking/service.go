package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

// Backend is the slice of the CRM client this service consumes.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Download(ctx context.Context, path string, query url.Values) ([]byte, string, error)
}

// Service provides booking business logic over the remote backend.
type Service struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a booking service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger, now: time.Now}
}

// List fetches bookings, applies visibility filtering and deduplication, and
// optionally keeps only overdue records.
func (s *Service) List(ctx context.Context, sess *shared.Session, filter ListFilter) ([]Booking, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Timeline != "" {
		query.Set("timeline", filter.Timeline)
	}

	raw, err := s.backend.Get(ctx, "/api/bookings", query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	items := s.decode(upstream.Records(raw, "bookings"))
	items = access.Visible(sess.Role, sess.UserID, items)
	items = access.Dedupe(items)

	if filter.OverdueOnly {
		now := s.now()
		overdue := items[:0:0]
		for _, b := range items {
			if b.IsOverdue(now) {
				overdue = append(overdue, b)
			}
		}
		items = overdue
	}
	return items, nil
}

// Get fetches a single booking and enforces visibility.
func (s *Service) Get(ctx context.Context, sess *shared.Session, id string) (*Booking, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	raw, err := s.backend.Get(ctx, "/api/bookings/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, ok := s.decodeOne(raw)
	if !ok {
		return nil, shared.ErrNotFound
	}
	if !access.CanSee(sess.Role, b, sess.UserID, sess.Scope()) {
		return nil, shared.ErrForbidden
	}
	return &b, nil
}

// Create enters a booking directly. Only advisors create bookings; the new
// record is assigned to its creator.
func (s *Service) Create(ctx context.Context, sess *shared.Session, req CreateBookingRequest) (*Booking, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}
	if !access.CanCreate(sess.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create bookings", shared.ErrForbidden, sess.Role)
	}

	payload := struct {
		CreateBookingRequest
		AdvisorID string `json:"advisorId"`
	}{CreateBookingRequest: req, AdvisorID: sess.UserID}

	raw, err := s.backend.Post(ctx, "/api/bookings", payload)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if b, ok := s.decodeOne(raw); ok {
		return &b, nil
	}
	return nil, shared.ErrNotFound
}

// Update edits a booking owned by the calling advisor.
func (s *Service) Update(ctx context.Context, sess *shared.Session, id string, req UpdateBookingRequest) (*Booking, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: booking belongs to another advisor", shared.ErrForbidden)
	}

	raw, err := s.backend.Put(ctx, "/api/bookings/"+id, req)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if b, ok := s.decodeOne(raw); ok {
		return &b, nil
	}
	return existing, nil
}

// UpdateStatus advances the booking lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, sess *shared.Session, id string, req UpdateStatusRequest) (*Booking, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", shared.ErrForbidden, req.Status)
	}
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: booking belongs to another advisor", shared.ErrForbidden)
	}
	if existing.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking is %s", shared.ErrForbidden, existing.Status)
	}

	raw, err := s.backend.Patch(ctx, "/api/bookings/"+id+"/status", req)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if b, ok := s.decodeOne(raw); ok {
		return &b, nil
	}
	return existing, nil
}

// UpdateRemarks writes the remark tier matching the caller's role. This is the
// one supervisory write the policy allows: managers annotate, they do not edit
// the record proper.
func (s *Service) UpdateRemarks(ctx context.Context, sess *shared.Session, id string, req RemarksRequest) (*Booking, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	field, ok := remarksField(sess.Role)
	if !ok {
		return nil, fmt.Errorf("%w: role %s has no remark tier", shared.ErrForbidden, sess.Role)
	}
	if sess.Role == access.RoleCustomerAdvisor && !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: booking belongs to another advisor", shared.ErrForbidden)
	}

	raw, err := s.backend.Patch(ctx, "/api/bookings/"+id+"/remarks", map[string]string{field: req.Remarks})
	if err != nil {
		return nil, fmt.Errorf("update booking remarks: %w", err)
	}
	if b, ok := s.decodeOne(raw); ok {
		return &b, nil
	}
	return existing, nil
}

// Export streams the backend-produced booking export blob.
func (s *Service) Export(ctx context.Context, sess *shared.Session, format string) ([]byte, string, error) {
	if sess == nil {
		return nil, "", shared.ErrNoSession
	}
	query := url.Values{}
	if format != "" {
		query.Set("format", format)
	}
	blob, contentType, err := s.backend.Download(ctx, "/api/bookings/export", query)
	if err != nil {
		return nil, "", fmt.Errorf("export bookings: %w", err)
	}
	return blob, contentType, nil
}

// remarksField maps a role to the remark tier it owns.
func remarksField(r access.Role) (string, bool) {
	switch r {
	case access.RoleCustomerAdvisor:
		return "advisorRemarks", true
	case access.RoleTeamLead:
		return "teamLeadRemarks", true
	case access.RoleSalesManager:
		return "salesManagerRemarks", true
	case access.RoleGeneralManager:
		return "gmRemarks", true
	case access.RoleAdmin:
		return "adminRemarks", true
	default:
		return "", false
	}
}

func (s *Service) decode(raws []json.RawMessage) []Booking {
	out := make([]Booking, 0, len(raws))
	for _, r := range raws {
		var b Booking
		if err := json.Unmarshal(r, &b); err != nil {
			if s.logger != nil {
				s.logger.Warn("skip malformed booking record", slog.Any("error", err))
			}
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *Service) decodeOne(raw json.RawMessage) (Booking, bool) {
	node := upstream.Object(raw, "booking")
	if node == nil {
		return Booking{}, false
	}
	var b Booking
	if err := json.Unmarshal(node, &b); err != nil || b.ID == "" {
		return Booking{}, false
	}
	return b, true
}
