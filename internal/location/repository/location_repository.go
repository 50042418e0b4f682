package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
	"github.com/earthly-glitch/fraudX-location-prototype/pkg/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationRepository is backed by a pool because appends arrive concurrently
// from every running simulation plus the HTTP ping path.
type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

// Append writes one immutable log record and returns its id.
func (r *LocationRepository) Append(ctx context.Context, rec model.LogRecord) (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate record id: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO location_logs (id, device_id, lat, lon, timestamp_ms, ip_city, gps_city, fraud_flag, risk_score)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)
	`, id, rec.DeviceID, rec.Lat, rec.Lon, rec.TimestampMillis, rec.IPCity, rec.GPSCity, rec.FraudFlag, rec.RiskScore)
	if err != nil {
		return "", fmt.Errorf("failed to insert location log: %w", err)
	}

	return id, nil
}

// LatestDeliveryPoint returns the most recently registered delivery point for
// a device, or nil when none exists.
func (r *LocationRepository) LatestDeliveryPoint(ctx context.Context, deviceID string) (*model.LogRecord, error) {
	rec := &model.LogRecord{}
	var ipCity, gpsCity *string

	err := r.db.QueryRow(ctx, `
		SELECT id, device_id, lat, lon, timestamp_ms, ip_city, gps_city, fraud_flag, risk_score, created_at
		FROM location_logs
		WHERE device_id = $1 AND fraud_flag = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, deviceID, model.DeliveryPointFlag).Scan(
		&rec.ID, &rec.DeviceID, &rec.Lat, &rec.Lon, &rec.TimestampMillis,
		&ipCity, &gpsCity, &rec.FraudFlag, &rec.RiskScore, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery point: %w", err)
	}

	if ipCity != nil {
		rec.IPCity = *ipCity
	}
	if gpsCity != nil {
		rec.GPSCity = *gpsCity
	}
	return rec, nil
}

// Recent returns the newest records for the audit log view.
func (r *LocationRepository) Recent(ctx context.Context, limit int) ([]model.LogRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, device_id, lat, lon, timestamp_ms, ip_city, gps_city, fraud_flag, risk_score, created_at
		FROM location_logs
		ORDER BY timestamp_ms DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent logs: %w", err)
	}
	defer rows.Close()

	var records []model.LogRecord
	for rows.Next() {
		var rec model.LogRecord
		var ipCity, gpsCity *string
		if err := rows.Scan(
			&rec.ID, &rec.DeviceID, &rec.Lat, &rec.Lon, &rec.TimestampMillis,
			&ipCity, &gpsCity, &rec.FraudFlag, &rec.RiskScore, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log record: %w", err)
		}
		if ipCity != nil {
			rec.IPCity = *ipCity
		}
		if gpsCity != nil {
			rec.GPSCity = *gpsCity
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log records: %w", err)
	}

	return records, nil
}
