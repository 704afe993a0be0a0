package enquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

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
	Delete(ctx context.Context, path string) (json.RawMessage, error)
	Download(ctx context.Context, path string, query url.Values) ([]byte, string, error)
}

// Service provides enquiry business logic over the remote backend. It holds no
// state of its own; every call works on a fresh snapshot.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// NewService constructs an enquiry service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

var nameCaser = cases.Title(language.English)

// List fetches enquiries and applies visibility filtering and deduplication,
// preserving backend order.
func (s *Service) List(ctx context.Context, sess *shared.Session, filter ListFilter) ([]Enquiry, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Timeline != "" {
		query.Set("timeline", filter.Timeline)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	raw, err := s.backend.Get(ctx, "/api/enquiries", query)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}

	items := s.decode(upstream.Records(raw, "enquiries"))
	items = access.Visible(sess.Role, sess.UserID, items)
	return access.Dedupe(items), nil
}

// Get fetches a single enquiry and enforces visibility.
func (s *Service) Get(ctx context.Context, sess *shared.Session, id string) (*Enquiry, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	raw, err := s.backend.Get(ctx, "/api/enquiries/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("get enquiry: %w", err)
	}

	enq, ok := s.decodeOne(raw)
	if !ok {
		return nil, shared.ErrNotFound
	}
	if !access.CanSee(sess.Role, enq, sess.UserID, sess.Scope()) {
		return nil, shared.ErrForbidden
	}
	return &enq, nil
}

// Create registers a new lead. Only advisors originate leads.
func (s *Service) Create(ctx context.Context, sess *shared.Session, req CreateEnquiryRequest) (*Enquiry, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}
	if !access.CanCreate(sess.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create enquiries", shared.ErrForbidden, sess.Role)
	}

	req.CustomerName = nameCaser.String(req.CustomerName)
	raw, err := s.backend.Post(ctx, "/api/enquiries", req)
	if err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}
	if enq, ok := s.decodeOne(raw); ok {
		return &enq, nil
	}
	return nil, shared.ErrNotFound
}

// Update edits an enquiry the caller owns.
func (s *Service) Update(ctx context.Context, sess *shared.Session, id string, req UpdateEnquiryRequest) (*Enquiry, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: not the creator or assignee", shared.ErrForbidden)
	}

	raw, err := s.backend.Put(ctx, "/api/enquiries/"+id, req)
	if err != nil {
		return nil, fmt.Errorf("update enquiry: %w", err)
	}
	if enq, ok := s.decodeOne(raw); ok {
		return &enq, nil
	}
	return existing, nil
}

// Delete removes an enquiry the caller created. The role check alone is not
// enough here; ownership is verified before the upstream call goes out.
func (s *Service) Delete(ctx context.Context, sess *shared.Session, id string) error {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return err
	}
	if !access.CanDelete(sess.Role) || existing.CreatedBy != sess.UserID {
		return fmt.Errorf("%w: only the creating advisor may delete", shared.ErrForbidden)
	}

	if _, err := s.backend.Delete(ctx, "/api/enquiries/"+id); err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	return nil
}

// Assign hands an enquiry to another advisor.
func (s *Service) Assign(ctx context.Context, sess *shared.Session, id string, req AssignRequest) (*Enquiry, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAssign(sess.Role) {
		return nil, fmt.Errorf("%w: role %s cannot assign", shared.ErrForbidden, sess.Role)
	}

	raw, err := s.backend.Patch(ctx, "/api/enquiries/"+id+"/assign", req)
	if err != nil {
		return nil, fmt.Errorf("assign enquiry: %w", err)
	}
	if enq, ok := s.decodeOne(raw); ok {
		return &enq, nil
	}
	return existing, nil
}

// UpdateStatus advances the workflow status.
func (s *Service) UpdateStatus(ctx context.Context, sess *shared.Session, id string, req UpdateStatusRequest) (*Enquiry, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", shared.ErrForbidden, req.Status)
	}
	return s.mutateOwned(ctx, sess, id, "/status", req)
}

// UpdateCategory moves an enquiry between funnel buckets. BOOKED enquiries are
// locked; use ConvertToBooking for the HOT→BOOKED transition.
func (s *Service) UpdateCategory(ctx context.Context, sess *shared.Session, id string, req UpdateCategoryRequest) (*Enquiry, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", shared.ErrForbidden, req.Category)
	}
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if existing.Category == CategoryBooked {
		return nil, fmt.Errorf("%w: enquiry already converted", shared.ErrForbidden)
	}
	if !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: not the creator or assignee", shared.ErrForbidden)
	}

	raw, err := s.backend.Patch(ctx, "/api/enquiries/"+id+"/category", req)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if enq, ok := s.decodeOne(raw); ok {
		return &enq, nil
	}
	return existing, nil
}

// ConvertToBooking flips a HOT enquiry into BOOKED through the backend's
// category-update endpoint. Success is determined solely by that call
// succeeding; stock validation detail rides along for display only. No
// retries: a failure waits for the user to try again.
func (s *Service) ConvertToBooking(ctx context.Context, sess *shared.Session, id, reason string) (*ConversionResult, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanConvertToBooking(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: enquiry is not convertible by this user", shared.ErrForbidden)
	}

	if reason == "" {
		reason = "Converted to booking"
	}
	body := UpdateCategoryRequest{Category: CategoryBooked, Reason: reason}
	raw, err := s.backend.Patch(ctx, "/api/enquiries/"+id+"/category", body)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && upstream.MentionsStock(apiErr.Message) {
			return nil, fmt.Errorf("%w: %s", upstream.ErrOutOfStock, apiErr.Message)
		}
		return nil, fmt.Errorf("convert enquiry: %w", err)
	}

	result := &ConversionResult{}
	if updated, ok := s.decodeOne(raw); ok {
		result.Enquiry = updated
	} else {
		result.Enquiry = *existing
		result.Enquiry.Category = CategoryBooked
	}

	// Stock detail is informational; its absence is not a failure.
	for _, path := range [][]string{{"data", "stockValidation"}, {"stockValidation"}} {
		node, ok := upstream.Lookup(raw, path...)
		if !ok {
			continue
		}
		var stock StockValidation
		if err := json.Unmarshal(node, &stock); err == nil {
			result.Stock = &stock
			break
		}
	}
	return result, nil
}

// Export streams the backend-produced enquiry export blob.
func (s *Service) Export(ctx context.Context, sess *shared.Session, format string) ([]byte, string, error) {
	if sess == nil {
		return nil, "", shared.ErrNoSession
	}
	query := url.Values{}
	if format != "" {
		query.Set("format", format)
	}
	blob, contentType, err := s.backend.Download(ctx, "/api/enquiries/export", query)
	if err != nil {
		return nil, "", fmt.Errorf("export enquiries: %w", err)
	}
	return blob, contentType, nil
}

// mutateOwned is the shared gate for single-record mutations: fetch, ownership
// check, then the upstream patch.
func (s *Service) mutateOwned(ctx context.Context, sess *shared.Session, id, suffix string, body any) (*Enquiry, error) {
	existing, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(sess.Role, *existing, sess.UserID) {
		return nil, fmt.Errorf("%w: not the creator or assignee", shared.ErrForbidden)
	}

	raw, err := s.backend.Patch(ctx, "/api/enquiries/"+id+suffix, body)
	if err != nil {
		return nil, fmt.Errorf("update enquiry: %w", err)
	}
	if enq, ok := s.decodeOne(raw); ok {
		return &enq, nil
	}
	return existing, nil
}

func (s *Service) decode(raws []json.RawMessage) []Enquiry {
	out := make([]Enquiry, 0, len(raws))
	for _, r := range raws {
		var e Enquiry
		if err := json.Unmarshal(r, &e); err != nil {
			if s.logger != nil {
				s.logger.Warn("skip malformed enquiry record", slog.Any("error", err))
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Service) decodeOne(raw json.RawMessage) (Enquiry, bool) {
	node := upstream.Object(raw, "enquiry")
	if node == nil {
		return Enquiry{}, false
	}
	var e Enquiry
	if err := json.Unmarshal(node, &e); err != nil || e.ID == "" {
		return Enquiry{}, false
	}
	return e, true
}
