package models

import "time"

// WebsiteInfo is the single-row record behind the storefront's banner, logo,
// about page and footer.
type WebsiteInfo struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	ShopName        string    `gorm:"column:shop_name" json:"shopName"`
	Slogan          string    `gorm:"column:slogan" json:"slogan"`
	Address         string    `gorm:"column:address" json:"address"`
	ContactEmail    string    `gorm:"column:contact_email" json:"contactEmail"`
	ContactPhone    string    `gorm:"column:contact_phone" json:"contactPhone"`
	FooterContent   string    `gorm:"column:footer_content" json:"footerContent"`
	AboutUsTitle    string    `gorm:"column:about_us_title" json:"aboutUsTitle"`
	AboutUsContent  string    `gorm:"column:about_us_content" json:"aboutUsContent"`
	FacebookURL     string    `gorm:"column:facebook_url" json:"facebookUrl"`
	LogoURL         string    `gorm:"column:logo_url" json:"logoUrl"`
	BannerURL       string    `gorm:"column:banner_url" json:"bannerUrl"`
	AboutUsImageURL string    `gorm:"column:about_us_image_url" json:"aboutUsImageUrl"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
