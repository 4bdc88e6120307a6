package models

// AccessType enum values
const (
	AccessTypeOpen             = "open"
	AccessTypeRequiresApproval = "requires_approval"
)

// Module is one entry of the fixed course catalog. Rows are seeded at
// startup; the engine treats them as read-only.
type Module struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ModuleName  string `json:"module_name"`
	Description string `json:"description" gorm:"type:text"`
	AccessType  string `json:"access_type" gorm:"default:'requires_approval'"` // open, requires_approval
}

func (Module) TableName() string {
	return "modules"
}
