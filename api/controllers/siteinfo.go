package controllers

import (
	"net/http"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/api/validators"
	siteinfosvc "github.com/nvteo/bakeshop-backend/internal/siteinfo"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// GetWebsiteInfo handles GET /api/WebsiteInfo.
func GetWebsiteInfo(svc siteinfosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, info)
	}
}

// UpdateWebsiteInfo handles the admin multipart PUT /api/WebsiteInfo.
func UpdateWebsiteInfo(svc siteinfosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := validators.ParseMultipartForm(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := siteinfosvc.UpdateInput{
			ShopName:       validators.FormString(r, "ShopName"),
			Slogan:         validators.FormString(r, "Slogan"),
			Address:        validators.FormString(r, "Address"),
			ContactEmail:   validators.FormString(r, "ContactEmail"),
			ContactPhone:   validators.FormString(r, "ContactPhone"),
			FooterContent:  r.FormValue("FooterContent"),
			AboutUsTitle:   validators.FormString(r, "AboutUsTitle"),
			AboutUsContent: r.FormValue("AboutUsContent"),
			FacebookURL:    validators.FormString(r, "FacebookUrl"),
		}

		for _, upload := range []struct {
			field  string
			target **siteinfosvc.FileInput
		}{
			{"LogoFile", &input.Logo},
			{"BannerFile", &input.Banner},
			{"AboutUsImageFile", &input.AboutUsImage},
		} {
			file, header, err := validators.FormFile(r, upload.field)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if file != nil {
				*upload.target = &siteinfosvc.FileInput{File: file, Header: header}
			}
		}

		info, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, info)
	}
}
