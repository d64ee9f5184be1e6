package storage

import (
	"context"
	"fmt"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddAlertEvent(ctx context.Context, e types.AlertEvent) error {
	if e.ID == "" || e.DeviceID == "" {
		return ErrNoID
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alert_events (alert_id, device_id, metric, value, threshold, description, severity, observed_at)
		VALUES (@alert_id, @device_id, @metric, @value, @threshold, @description, @severity, @observed_at)
	`, pgx.NamedArgs{
		"alert_id":    e.ID,
		"device_id":   e.DeviceID,
		"metric":      e.Metric,
		"value":       e.Value,
		"threshold":   e.Threshold,
		"description": e.Description,
		"severity":    e.Severity,
		"observed_at": e.ObservedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	return nil
}

func (s *Storage) QueryAlertEvents(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AlertEvent], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "t.observed_at"
		condition.sortOrder = "DESC"
	}

	var offsetLimit string

	if condition.HasOffset() {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.HasLimit() {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT t.alert_id, t.device_id, t.metric, t.value, t.threshold, t.description, t.severity, t.observed_at,
			count(*) OVER () AS count
		FROM alert_events t
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.AlertEvent]{}, err
	}
	defer rows.Close()

	var count int64
	events := make([]types.AlertEvent, 0)

	for rows.Next() {
		var e types.AlertEvent
		err = rows.Scan(&e.ID, &e.DeviceID, &e.Metric, &e.Value, &e.Threshold, &e.Description, &e.Severity, &e.ObservedAt, &count)
		if err != nil {
			return types.Collection[types.AlertEvent]{}, err
		}
		events = append(events, e)
	}

	if rows.Err() != nil {
		return types.Collection[types.AlertEvent]{}, rows.Err()
	}

	return types.Collection[types.AlertEvent]{
		Data:       events,
		Count:      uint64(len(events)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}
