package preferences

import "time"

// Layout represents a saved layout row in the database. Codes is the
// comma-joined ordered currency list.
type Layout struct {
	SessionID string `gorm:"primaryKey;type:varchar(64)"`
	Codes     string `gorm:"type:text;not null"`
	BaseCode  string `gorm:"type:varchar(8);not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the Layout model.
func (Layout) TableName() string {
	return "layout_preferences"
}
