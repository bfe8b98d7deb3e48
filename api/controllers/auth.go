package controllers

import (
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/api/validators"
	authsvc "github.com/nvteo/bakeshop-backend/internal/auth"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// Login handles POST /api/Auth/login.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, session)
	}
}

// Register handles POST /api/Auth/register.
func Register(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSONStatus(w, http.StatusCreated, session)
	}
}
