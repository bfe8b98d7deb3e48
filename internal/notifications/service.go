package notifications

import (
	"context"
	"fmt"

	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// Service ties the persisted feed to live hub delivery. It satisfies the
// order flow's alert publisher: failures here are logged and swallowed, an
// alert must never fail an order.
type Service struct {
	feed *Feed
	hub  *Hub
	logg *logger.Logger
}

// NewService wires the feed and hub together.
func NewService(feed *Feed, hub *Hub, logg *logger.Logger) *Service {
	return &Service{feed: feed, hub: hub, logg: logg}
}

// Feed exposes the persisted log for the admin endpoints.
func (s *Service) Feed() *Feed {
	return s.feed
}

// Hub exposes the live subscriber registry for the push endpoint.
func (s *Service) Hub() *Hub {
	return s.hub
}

// PublishOrderAlert records the alert and fans it out to live subscribers.
func (s *Service) PublishOrderAlert(ctx context.Context, message string) {
	defer func() {
		if r := recover(); r != nil && s.logg != nil {
			s.logg.Error(ctx, "order alert publish panicked", fmt.Errorf("panic: %v", r))
		}
	}()
	s.feed.Record(ctx, message)
	s.hub.Broadcast(ctx, message)
}
