package controllers

import (
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	dashboardsvc "github.com/nvteo/bakeshop-backend/internal/dashboard"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// DashboardSummary handles the admin GET /api/Dashboard/summary.
func DashboardSummary(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, summary)
	}
}
