package controllers

import (
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/api/validators"
	categorysvc "github.com/nvteo/bakeshop-backend/internal/categories"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

// ListCategories handles GET /api/Categories.
func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, rows)
	}
}

// CreateCategory handles the admin POST /api/Categories.
func CreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// DeleteCategory handles the admin DELETE /api/Categories/{id}.
func DeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
