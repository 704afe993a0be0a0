package quotation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

// Backend is the slice of the CRM client this service consumes.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

// Service relays quotations to and from the remote backend. Quotations are
// shared sales collateral, so no visibility filtering applies; the backend
// scopes the list itself.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// NewService constructs a quotation service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// List fetches quotations, optionally narrowed by status or enquiry.
func (s *Service) List(ctx context.Context, sess *shared.Session, filter ListFilter) ([]Quotation, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.EnquiryID != "" {
		query.Set("enquiryId", filter.EnquiryID)
	}

	raw, err := s.backend.Get(ctx, "/api/quotations", query)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}

	raws := upstream.Records(raw, "quotations")
	out := make([]Quotation, 0, len(raws))
	for _, r := range raws {
		var q Quotation
		if err := json.Unmarshal(r, &q); err != nil {
			if s.logger != nil {
				s.logger.Warn("skip malformed quotation record", slog.Any("error", err))
			}
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// Get fetches a single quotation.
func (s *Service) Get(ctx context.Context, sess *shared.Session, id string) (*Quotation, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	raw, err := s.backend.Get(ctx, "/api/quotations/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	node := upstream.Object(raw, "quotation")
	if node == nil {
		return nil, shared.ErrNotFound
	}
	var q Quotation
	if err := json.Unmarshal(node, &q); err != nil || q.ID == "" {
		return nil, shared.ErrNotFound
	}
	return &q, nil
}

// Create prepares a quotation upstream. Only advisors prepare quotations.
func (s *Service) Create(ctx context.Context, sess *shared.Session, req CreateQuotationRequest) (*Quotation, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}
	if !access.CanCreate(sess.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create quotations", shared.ErrForbidden, sess.Role)
	}

	raw, err := s.backend.Post(ctx, "/api/quotations", req)
	if err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}

	node := upstream.Object(raw, "quotation")
	if node == nil {
		return nil, shared.ErrNotFound
	}
	var q Quotation
	if err := json.Unmarshal(node, &q); err != nil || q.ID == "" {
		return nil, shared.ErrNotFound
	}
	return &q, nil
}
