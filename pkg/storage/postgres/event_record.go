package postgres

import "time"

// TrackingEventRecord mirrors one tracking-history entry into the database.
// Rows are append-only, matching the JSON aggregate's history semantics.
type TrackingEventRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Symbol     string    `gorm:"type:text;not null;index:idx_event_symbol;index:idx_symbol_event_detected,unique"`
	Event      string    `gorm:"type:varchar(10);not null;index:idx_symbol_event_detected,unique"`
	DetectedAt time.Time `gorm:"not null;index:idx_symbol_event_detected,unique"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (TrackingEventRecord) TableName() string {
	return "tracking_event"
}
