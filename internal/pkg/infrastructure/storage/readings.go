package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddReading(ctx context.Context, r types.Reading) (types.Reading, error) {
	if r.DeviceID == "" {
		return types.Reading{}, ErrNoID
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO device_readings (device_id, temperature, humidity, flow_rate, temperature_at, humidity_at, flow_rate_at)
		VALUES (@device_id, @temperature, @humidity, @flow_rate, @temperature_at, @humidity_at, @flow_rate_at)
		RETURNING created_on
	`, pgx.NamedArgs{
		"device_id":      r.DeviceID,
		"temperature":    r.Temperature,
		"humidity":       r.Humidity,
		"flow_rate":      r.FlowRate,
		"temperature_at": r.TemperatureAt,
		"humidity_at":    r.HumidityAt,
		"flow_rate_at":   r.FlowRateAt,
	}).Scan(&r.CreatedOn)
	if err != nil {
		return types.Reading{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	return r, nil
}

func (s *Storage) QueryReadings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Reading], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	var offsetLimit string

	if condition.HasOffset() {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.HasLimit() {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT t.device_id, t.temperature, t.humidity, t.flow_rate,
			t.temperature_at, t.humidity_at, t.flow_rate_at, t.created_on,
			count(*) OVER () AS count
		FROM device_readings t
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Reading]{}, err
	}
	defer rows.Close()

	var count int64
	readings := make([]types.Reading, 0)

	for rows.Next() {
		var r types.Reading
		err = rows.Scan(&r.DeviceID, &r.Temperature, &r.Humidity, &r.FlowRate,
			&r.TemperatureAt, &r.HumidityAt, &r.FlowRateAt, &r.CreatedOn, &count)
		if err != nil {
			return types.Collection[types.Reading]{}, err
		}
		readings = append(readings, r)
	}

	if rows.Err() != nil {
		return types.Collection[types.Reading]{}, rows.Err()
	}

	return types.Collection[types.Reading]{
		Data:       readings,
		Count:      uint64(len(readings)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) GetLatestReading(ctx context.Context, deviceID string) (types.Reading, error) {
	var r types.Reading

	err := s.pool.QueryRow(ctx, `
		SELECT t.device_id, t.temperature, t.humidity, t.flow_rate,
			t.temperature_at, t.humidity_at, t.flow_rate_at, t.created_on
		FROM device_readings t
		WHERE t.device_id = @device_id
		ORDER BY t.created_on DESC
		LIMIT 1
	`, pgx.NamedArgs{"device_id": deviceID}).Scan(
		&r.DeviceID, &r.Temperature, &r.Humidity, &r.FlowRate,
		&r.TemperatureAt, &r.HumidityAt, &r.FlowRateAt, &r.CreatedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Reading{}, ErrNoRows
		}
		return types.Reading{}, err
	}

	return r, nil
}

// GetLatestReadings returns the newest reading per device, keyed by device id.
func (s *Storage) GetLatestReadings(ctx context.Context) (map[string]types.Reading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT ON (t.device_id)
			t.device_id, t.temperature, t.humidity, t.flow_rate,
			t.temperature_at, t.humidity_at, t.flow_rate_at, t.created_on
		FROM device_readings t
		ORDER BY t.device_id, t.created_on DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := map[string]types.Reading{}

	for rows.Next() {
		var r types.Reading
		err = rows.Scan(&r.DeviceID, &r.Temperature, &r.Humidity, &r.FlowRate,
			&r.TemperatureAt, &r.HumidityAt, &r.FlowRateAt, &r.CreatedOn)
		if err != nil {
			return nil, err
		}
		latest[r.DeviceID] = r
	}

	return latest, rows.Err()
}
