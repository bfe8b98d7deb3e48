package siteinfo

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/media"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

const cacheKey = "site_info_cache"

// Cache is the key/value surface used for the site-info snapshot,
// satisfied by *redis.Client.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// FileInput is one optional multipart image upload.
type FileInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UpdateInput carries the admin form for site-wide content.
type UpdateInput struct {
	ShopName       string
	Slogan         string
	Address        string
	ContactEmail   string
	ContactPhone   string
	FooterContent  string
	AboutUsTitle   string
	AboutUsContent string
	FacebookURL    string
	Logo           *FileInput
	Banner         *FileInput
	AboutUsImage   *FileInput
}

// ServiceParams groups dependencies for the site-info service.
type ServiceParams struct {
	Repo    *Repository
	Cache   Cache
	Storage media.Storage
	Logger  *logger.Logger
	TTL     config.SiteCacheConfig
}

// Service exposes read and update of the site-wide content singleton.
type Service interface {
	Get(ctx context.Context) (*models.WebsiteInfo, error)
	Update(ctx context.Context, input UpdateInput) (*models.WebsiteInfo, error)
}

type service struct {
	repo    *Repository
	cache   Cache
	storage media.Storage
	logg    *logger.Logger
	ttl     config.SiteCacheConfig
}

// NewService builds a site-info service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site info repo is required")
	}
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media storage is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:    params.Repo,
		cache:   params.Cache,
		storage: params.Storage,
		logg:    params.Logger,
		ttl:     params.TTL,
	}, nil
}

// Get serves the cached snapshot when present, the database row otherwise.
// An absent row yields an empty object rather than 404, the storefront
// renders placeholders for missing content.
func (s *service) Get(ctx context.Context) (*models.WebsiteInfo, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.WebsiteInfo{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load website info")
	}

	s.writeCache(ctx, row)
	return row, nil
}

// Update applies the form, stores any new images and refreshes the cache.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.WebsiteInfo, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load website info")
		}
		row = &models.WebsiteInfo{}
	}

	row.ShopName = input.ShopName
	row.Slogan = input.Slogan
	row.Address = input.Address
	row.ContactEmail = input.ContactEmail
	row.ContactPhone = input.ContactPhone
	row.FooterContent = input.FooterContent
	row.AboutUsTitle = input.AboutUsTitle
	row.AboutUsContent = input.AboutUsContent
	row.FacebookURL = input.FacebookURL

	if err := s.applyUpload(ctx, input.Logo, &row.LogoURL); err != nil {
		return nil, err
	}
	if err := s.applyUpload(ctx, input.Banner, &row.BannerURL); err != nil {
		return nil, err
	}
	if err := s.applyUpload(ctx, input.AboutUsImage, &row.AboutUsImageURL); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save website info")
	}

	s.invalidateCache(ctx)
	s.writeCache(ctx, row)
	return row, nil
}

func (s *service) applyUpload(ctx context.Context, file *FileInput, target *string) error {
	if file == nil || file.File == nil {
		return nil
	}
	url, err := s.storage.SaveImage(ctx, file.File, file.Header)
	if err != nil {
		return err
	}
	if *target != "" {
		_ = s.storage.Remove(ctx, *target)
	}
	*target = url
	return nil
}

func (s *service) readCache(ctx context.Context) *models.WebsiteInfo {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil || raw == "" {
		return nil
	}
	var row models.WebsiteInfo
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		s.logg.Warn(ctx, "discarding corrupt site info cache entry")
		return nil
	}
	return &row
}

func (s *service) writeCache(ctx context.Context, row *models.WebsiteInfo) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(raw), s.ttl.TTL); err != nil {
		s.logg.Warn(ctx, "site info cache write failed")
	}
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey); err != nil {
		s.logg.Warn(ctx, "site info cache invalidation failed")
	}
}
