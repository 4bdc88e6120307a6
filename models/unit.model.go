package models

import "gorm.io/gorm"

// Unit holds the editable content of one unit within a module, e.g. "1.2".
type Unit struct {
	gorm.Model
	ModuleID uint   `json:"module_id" gorm:"uniqueIndex:idx_unit_module_unit;not null"`
	UnitID   string `json:"unit_id" gorm:"uniqueIndex:idx_unit_module_unit;not null"`
	Content  string `json:"content" gorm:"type:text"`
	VideoURL string `json:"video_url"`
}
