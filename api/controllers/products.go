package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/api/validators"
	productsvc "github.com/nvteo/bakeshop-backend/internal/products"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
	"github.com/nvteo/bakeshop-backend/pkg/pagination"
)

const maxSearchLen = 200

// ListProducts handles GET /api/Products with paging and filters.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := productsvc.ListFilter{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
			Page:   pagination.FromRequest(r),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "categoryId must be numeric"))
				return
			}
			filter.CategoryID = &id
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("isBestSeller")); raw != "" {
			best, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "isBestSeller must be a boolean"))
				return
			}
			filter.IsBestSeller = &best
		}

		page, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, responses.ListPage{Data: page.Data, Total: page.Total})
	}
}

// GetProduct handles GET /api/Products/{id}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, product)
	}
}

// CreateProduct handles the admin multipart POST /api/Products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSONStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles the admin multipart PUT /api/Products/{id}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, product)
	}
}

// DeleteProduct handles the admin DELETE /api/Products/{id}.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func decodeProductForm(r *http.Request) (productsvc.ProductInput, error) {
	if err := validators.ParseMultipartForm(r); err != nil {
		return productsvc.ProductInput{}, err
	}

	price, err := validators.FormInt64(r, "Price")
	if err != nil {
		return productsvc.ProductInput{}, err
	}
	categoryID, err := validators.FormOptionalInt64(r, "CategoryId")
	if err != nil {
		return productsvc.ProductInput{}, err
	}
	file, header, err := validators.FormFile(r, "ImageFile")
	if err != nil {
		return productsvc.ProductInput{}, err
	}

	return productsvc.ProductInput{
		Name:         validators.FormString(r, "Name"),
		Price:        price,
		Description:  r.FormValue("Description"),
		CategoryID:   categoryID,
		IsBestSeller: validators.FormBool(r, "IsBestSeller"),
		ImageFile:    file,
		ImageHeader:  header,
	}, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer")
	}
	return id, nil
}
