// Package catalog owns the fixed module list and the "only modules 1..N are
// offered" rule. Every range check in the app goes through IsValidModuleID
// so the deployment cap lives in exactly one place.
package catalog

import (
	"academy/models"

	"gorm.io/gorm"
)

// Default is the catalog instance wired in main, used by the HTTP layer.
var Default *Catalog

type Catalog struct {
	modules      []models.Module // ordered by id, capped
	byID         map[uint]models.Module
	cap          int
	freeModuleID uint
}

// Load reads the seeded modules up to the deployment cap. The catalog is
// read-only after this; access_type edits need a restart.
func Load(db *gorm.DB, moduleCap, freeModuleID int) (*Catalog, error) {
	var modules []models.Module
	if err := db.Where("id <= ?", moduleCap).Order("id asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}

	return &Catalog{
		modules:      modules,
		byID:         byID,
		cap:          moduleCap,
		freeModuleID: uint(freeModuleID),
	}, nil
}

// Modules returns the ordered catalog (ids 1..cap only).
func (c *Catalog) Modules() []models.Module {
	return c.modules
}

// Get returns the module for an id, if it is within the catalog.
func (c *Catalog) Get(id uint) (models.Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// IsValidModuleID reports whether a module id is offered in this deployment.
// Ids beyond the cap exist in some databases but are never student-facing.
func (c *Catalog) IsValidModuleID(id int) bool {
	if id < 1 || id > c.cap {
		return false
	}
	_, ok := c.byID[uint(id)]
	return ok
}

// FreeModuleID is the open module that still needs an explicit unlock.
func (c *Catalog) FreeModuleID() uint {
	return c.freeModuleID
}

// Cap returns the highest module id offered.
func (c *Catalog) Cap() int {
	return c.cap
}
