package controllers

import (
	"fmt"
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	notificationsvc "github.com/nvteo/bakeshop-backend/internal/notifications"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// ListNotifications handles GET /api/Notifications: the persisted feed plus
// the unread badge count. Reading the feed opens the panel, so the unread
// counter resets without touching the entries.
func ListNotifications(svc *notificationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed := svc.Feed()
		entries := feed.List(r.Context())
		unread := feed.Unread()
		feed.MarkSeen()

		responses.WriteJSON(w, map[string]any{
			"entries":     entries,
			"unreadCount": unread,
		})
	}
}

// ClearNotifications handles DELETE /api/Notifications.
func ClearNotifications(svc *notificationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Feed().Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear notifications"))
			return
		}
		responses.WriteNoContent(w)
	}
}

// NotificationStream handles GET /hub/notification: a server-sent-event
// stream emitting one ReceiveOrder event per new order. The subscription is
// torn down when the client disconnects; teardown is idempotent.
func NotificationStream(svc *notificationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		sub := svc.Hub().Subscribe()
		defer sub.Close()

		if logg != nil {
			logg.Info(r.Context(), "notification stream opened")
		}

		for {
			select {
			case <-r.Context().Done():
				if logg != nil {
					logg.Info(r.Context(), "notification stream closed")
				}
				return
			case message, ok := <-sub.C:
				if !ok {
					return
				}
				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", notificationsvc.EventReceiveOrder, message); err != nil {
					if logg != nil {
						logg.Warn(r.Context(), "notification stream write failed")
					}
					return
				}
				flusher.Flush()
			}
		}
	}
}
