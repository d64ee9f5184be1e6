package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const settingsColumns = `t.id, t.device_id, t.device_name, t.location, t.part_number, t.serial_number,
	t.temperature_min, t.temperature_max, t.humidity_min, t.humidity_max, t.flow_rate_min, t.flow_rate_max,
	t.flow_rate_warning_hours, t.flow_rate_critical_hours,
	t.email_alerts_enabled, t.alert_recipients,
	t.temperature_alert_enabled, t.temperature_alert_threshold,
	t.humidity_alert_enabled, t.humidity_alert_threshold,
	t.flow_rate_alert_enabled, t.flow_rate_alert_threshold,
	t.no_flow_alert_minutes, t.alert_frequency,
	t.created_on, t.modified_on`

func settingsNamedArgs(s types.DeviceSettings) pgx.NamedArgs {
	recipients, _ := json.Marshal(s.Recipients)
	if s.Recipients == nil {
		recipients = []byte(`[]`)
	}

	return pgx.NamedArgs{
		"id":            s.ID,
		"device_id":     s.DeviceID,
		"device_name":   s.Name,
		"location":      s.Location,
		"part_number":   s.PartNumber,
		"serial_number": s.SerialNumber,

		"temperature_min": s.TemperatureMin,
		"temperature_max": s.TemperatureMax,
		"humidity_min":    s.HumidityMin,
		"humidity_max":    s.HumidityMax,
		"flow_rate_min":   s.FlowRateMin,
		"flow_rate_max":   s.FlowRateMax,

		"flow_rate_warning_hours":  s.FlowRateWarningHours,
		"flow_rate_critical_hours": s.FlowRateCriticalHours,

		"email_alerts_enabled": s.EmailAlertsEnabled,
		"alert_recipients":     string(recipients),

		"temperature_alert_enabled":   s.TemperatureAlertEnabled,
		"temperature_alert_threshold": s.TemperatureAlertThreshold,
		"humidity_alert_enabled":      s.HumidityAlertEnabled,
		"humidity_alert_threshold":    s.HumidityAlertThreshold,
		"flow_rate_alert_enabled":     s.FlowRateAlertEnabled,
		"flow_rate_alert_threshold":   s.FlowRateAlertThreshold,

		"no_flow_alert_minutes": s.NoFlowAlertMinutes,
		"alert_frequency":       s.AlertFrequency,
	}
}

func scanSettings(row pgx.Row) (types.DeviceSettings, error) {
	var s types.DeviceSettings
	var recipients json.RawMessage

	err := row.Scan(&s.ID, &s.DeviceID, &s.Name, &s.Location, &s.PartNumber, &s.SerialNumber,
		&s.TemperatureMin, &s.TemperatureMax, &s.HumidityMin, &s.HumidityMax, &s.FlowRateMin, &s.FlowRateMax,
		&s.FlowRateWarningHours, &s.FlowRateCriticalHours,
		&s.EmailAlertsEnabled, &recipients,
		&s.TemperatureAlertEnabled, &s.TemperatureAlertThreshold,
		&s.HumidityAlertEnabled, &s.HumidityAlertThreshold,
		&s.FlowRateAlertEnabled, &s.FlowRateAlertThreshold,
		&s.NoFlowAlertMinutes, &s.AlertFrequency,
		&s.CreatedOn, &s.ModifiedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DeviceSettings{}, ErrNoRows
		}
		return types.DeviceSettings{}, err
	}

	err = json.Unmarshal(recipients, &s.Recipients)
	if err != nil {
		return types.DeviceSettings{}, err
	}

	return s, nil
}

func (s *Storage) AddDevice(ctx context.Context, settings types.DeviceSettings) error {
	if settings.ID == "" || settings.DeviceID == "" {
		return ErrNoID
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO device_settings (id, device_id, device_name, location, part_number, serial_number,
			temperature_min, temperature_max, humidity_min, humidity_max, flow_rate_min, flow_rate_max,
			flow_rate_warning_hours, flow_rate_critical_hours,
			email_alerts_enabled, alert_recipients,
			temperature_alert_enabled, temperature_alert_threshold,
			humidity_alert_enabled, humidity_alert_threshold,
			flow_rate_alert_enabled, flow_rate_alert_threshold,
			no_flow_alert_minutes, alert_frequency)
		VALUES (@id, @device_id, @device_name, @location, @part_number, @serial_number,
			@temperature_min, @temperature_max, @humidity_min, @humidity_max, @flow_rate_min, @flow_rate_max,
			@flow_rate_warning_hours, @flow_rate_critical_hours,
			@email_alerts_enabled, @alert_recipients,
			@temperature_alert_enabled, @temperature_alert_threshold,
			@humidity_alert_enabled, @humidity_alert_threshold,
			@flow_rate_alert_enabled, @flow_rate_alert_threshold,
			@no_flow_alert_minutes, @alert_frequency)
	`, settingsNamedArgs(settings))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExist
		}
		return err
	}

	return nil
}

func (s *Storage) UpdateSettings(ctx context.Context, settings types.DeviceSettings) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE device_settings
		SET device_name = @device_name, location = @location, part_number = @part_number, serial_number = @serial_number,
			temperature_min = @temperature_min, temperature_max = @temperature_max,
			humidity_min = @humidity_min, humidity_max = @humidity_max,
			flow_rate_min = @flow_rate_min, flow_rate_max = @flow_rate_max,
			flow_rate_warning_hours = @flow_rate_warning_hours, flow_rate_critical_hours = @flow_rate_critical_hours,
			email_alerts_enabled = @email_alerts_enabled, alert_recipients = @alert_recipients,
			temperature_alert_enabled = @temperature_alert_enabled, temperature_alert_threshold = @temperature_alert_threshold,
			humidity_alert_enabled = @humidity_alert_enabled, humidity_alert_threshold = @humidity_alert_threshold,
			flow_rate_alert_enabled = @flow_rate_alert_enabled, flow_rate_alert_threshold = @flow_rate_alert_threshold,
			no_flow_alert_minutes = @no_flow_alert_minutes, alert_frequency = @alert_frequency,
			modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id
	`, settingsNamedArgs(settings))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (s *Storage) GetSettings(ctx context.Context, deviceID string) (types.DeviceSettings, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM device_settings t
		WHERE t.device_id = @device_id
	`, settingsColumns)

	return scanSettings(s.pool.QueryRow(ctx, query, pgx.NamedArgs{"device_id": deviceID}))
}

func (s *Storage) QuerySettings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.DeviceSettings], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "t.device_id"
	}

	var offsetLimit string

	if condition.HasOffset() {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.HasLimit() {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER () AS count
		FROM device_settings t
		WHERE %s
		ORDER BY %s %s
		%s
	`, settingsColumns, condition.Where(), condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.DeviceSettings]{}, err
	}
	defer rows.Close()

	var count int64
	settings := make([]types.DeviceSettings, 0)

	for rows.Next() {
		var rec types.DeviceSettings
		var recipients json.RawMessage

		err = rows.Scan(&rec.ID, &rec.DeviceID, &rec.Name, &rec.Location, &rec.PartNumber, &rec.SerialNumber,
			&rec.TemperatureMin, &rec.TemperatureMax, &rec.HumidityMin, &rec.HumidityMax, &rec.FlowRateMin, &rec.FlowRateMax,
			&rec.FlowRateWarningHours, &rec.FlowRateCriticalHours,
			&rec.EmailAlertsEnabled, &recipients,
			&rec.TemperatureAlertEnabled, &rec.TemperatureAlertThreshold,
			&rec.HumidityAlertEnabled, &rec.HumidityAlertThreshold,
			&rec.FlowRateAlertEnabled, &rec.FlowRateAlertThreshold,
			&rec.NoFlowAlertMinutes, &rec.AlertFrequency,
			&rec.CreatedOn, &rec.ModifiedOn, &count)
		if err != nil {
			return types.Collection[types.DeviceSettings]{}, err
		}

		err = json.Unmarshal(recipients, &rec.Recipients)
		if err != nil {
			return types.Collection[types.DeviceSettings]{}, err
		}

		settings = append(settings, rec)
	}

	if rows.Err() != nil {
		return types.Collection[types.DeviceSettings]{}, rows.Err()
	}

	return types.Collection[types.DeviceSettings]{
		Data:       settings,
		Count:      uint64(len(settings)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}

// ListFlowStatus returns one row per device with the timestamp of its most
// recent flow-rate sample, for the no-flow watchdog sweep.
func (s *Storage) ListFlowStatus(ctx context.Context) ([]types.FlowStatus, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.device_id, t.email_alerts_enabled, t.flow_rate_alert_enabled,
			t.no_flow_alert_minutes, t.flow_rate_warning_hours, t.flow_rate_critical_hours,
			max(r.created_on) AS last_flow_at
		FROM device_settings t
		LEFT JOIN device_readings r ON r.device_id = t.device_id AND r.flow_rate IS NOT NULL
		GROUP BY t.device_id, t.email_alerts_enabled, t.flow_rate_alert_enabled,
			t.no_flow_alert_minutes, t.flow_rate_warning_hours, t.flow_rate_critical_hours
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]types.FlowStatus, 0)

	for rows.Next() {
		var fs types.FlowStatus
		err = rows.Scan(&fs.DeviceID, &fs.AlertsEnabled, &fs.FlowAlertOn,
			&fs.NoFlowMinutes, &fs.WarningHours, &fs.CriticalHours, &fs.LastFlowAt)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, fs)
	}

	return statuses, rows.Err()
}
