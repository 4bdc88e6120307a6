package models

// SiteSettings is a single-row table (id = 1) holding the landing page
// videos and home content editable by admins.
type SiteSettings struct {
	ID          uint   `json:"-" gorm:"primaryKey"`
	HeroVideo   string `json:"hero_video"`
	Video2      string `json:"video2"`
	HomeContent string `json:"home_content" gorm:"type:text"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
