package postgres

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

// RecordEvent appends one tracking event. Replaying the same detection is a
// silent no-op so the mirror stays append-only under retries.
func (p *PostgresClient) RecordEvent(ctx context.Context, symbol, event string, detectedAt time.Time) error {
	record := &TrackingEventRecord{
		Symbol:     symbol,
		Event:      event,
		DetectedAt: detectedAt,
	}

	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "event"},
			{Name: "detected_at"},
		},
		DoNothing: true,
	}).Create(record).Error
}

// GetRecentEvents returns the newest events first.
func (p *PostgresClient) GetRecentEvents(ctx context.Context, limit int) ([]TrackingEventRecord, error) {
	var events []TrackingEventRecord
	err := p.DB.WithContext(ctx).
		Order("detected_at DESC").
		Limit(limit).
		Find(&events).Error

	if err != nil {
		return nil, err
	}
	return events, nil
}

// CountEvents returns how many events of the given kind were ever recorded.
func (p *PostgresClient) CountEvents(ctx context.Context, event string) (int64, error) {
	var count int64
	err := p.DB.WithContext(ctx).
		Model(&TrackingEventRecord{}).
		Where("event = ?", event).
		Count(&count).Error
	return count, err
}
