package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/api/validators"
	cartstore "github.com/nvteo/bakeshop-backend/internal/cart"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

type addToCartRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	ImageURL string `json:"imageUrl"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/Cart for the current identity.
func GetCart(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, store.Get(r.Context()))
	}
}

// AddToCart handles POST /api/Cart/items.
func AddToCart(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := store.Add(r.Context(), cartstore.Product{
			ID:       payload.ID,
			Name:     payload.Name,
			Price:    payload.Price,
			ImageURL: payload.ImageURL,
		})
		responses.WriteJSON(w, items)
	}
}

// UpdateCartQuantity handles PUT /api/Cart/items/{id}.
func UpdateCartQuantity(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, store.UpdateQuantity(r.Context(), id, payload.Quantity))
	}
}

// RemoveFromCart handles DELETE /api/Cart/items/{id}.
func RemoveFromCart(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, store.Remove(r.Context(), id))
	}
}

// ClearCart handles DELETE /api/Cart.
func ClearCart(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear(r.Context())
		responses.WriteNoContent(w)
	}
}

// CartStream handles GET /api/Cart/stream: a server-sent-event stream that
// pushes the caller's cart after every change to it, so open storefront
// views keep their cart badge current. Changes to other identities' carts
// are filtered out before delivery.
func CartStream(store *cartstore.Store, logg *logger.Logger) http.HandlerFunc {
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

		identity := store.Identity(r.Context())
		events := make(chan cartstore.ChangeEvent, 8)
		unsubscribe := store.Broadcaster().Subscribe(func(event cartstore.ChangeEvent) {
			if event.Identity != identity {
				return
			}
			select {
			case events <- event:
			default:
			}
		})
		defer unsubscribe()

		for {
			select {
			case <-r.Context().Done():
				return
			case event := <-events:
				payload, err := json.Marshal(map[string]any{
					"kind":  event.Kind,
					"items": event.Items,
				})
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(w, "event: CartChanged\ndata: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
