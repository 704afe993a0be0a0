package stats

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nrng2025001/motorsync-sub002/internal/enquiry"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
)

// Timelines are the dashboard windows, fetched in a fixed order.
var Timelines = []string{"today", "week", "month", "quarter", "year"}

// EnquiryLister is the slice of the enquiry service the dashboard consumes.
// Visibility filtering and deduplication already happened by the time counts
// are taken.
type EnquiryLister interface {
	List(ctx context.Context, sess *shared.Session, filter enquiry.ListFilter) ([]enquiry.Enquiry, error)
}

// WindowStats are the per-timeline counts shown on the dashboard.
type WindowStats struct {
	Timeline string `json:"timeline"`
	Total    int    `json:"total"`
	Hot      int    `json:"hot"`
	Booked   int    `json:"booked"`
	Lost     int    `json:"lost"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Windows []WindowStats `json:"windows"`
}

// Service computes dashboard statistics by fanning out one enquiry fetch per
// timeline window.
type Service struct {
	enquiries EnquiryLister
	logger    *slog.Logger
}

// NewService constructs a stats service.
func NewService(enquiries EnquiryLister, logger *slog.Logger) *Service {
	return &Service{enquiries: enquiries, logger: logger}
}

// Dashboard fetches all timeline windows in parallel. The join is
// all-or-nothing: one failing window fails the whole summary, so the caller
// never renders a dashboard mixing fresh and missing numbers.
func (s *Service) Dashboard(ctx context.Context, sess *shared.Session) (*Summary, error) {
	if sess == nil {
		return nil, shared.ErrNoSession
	}

	windows := make([]WindowStats, len(Timelines))
	g, ctx := errgroup.WithContext(ctx)

	for i, timeline := range Timelines {
		i, timeline := i, timeline
		g.Go(func() error {
			items, err := s.enquiries.List(ctx, sess, enquiry.ListFilter{Timeline: timeline})
			if err != nil {
				return fmt.Errorf("stats window %s: %w", timeline, err)
			}
			windows[i] = count(timeline, items)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if s.logger != nil {
			s.logger.Error("dashboard aggregate failed", slog.Any("error", err))
		}
		return nil, err
	}
	return &Summary{Windows: windows}, nil
}

func count(timeline string, items []enquiry.Enquiry) WindowStats {
	w := WindowStats{Timeline: timeline, Total: len(items)}
	for _, e := range items {
		switch e.Category {
		case enquiry.CategoryHot:
			w.Hot++
		case enquiry.CategoryBooked:
			w.Booked++
		case enquiry.CategoryLost:
			w.Lost++
		}
	}
	return w
}
