package devices

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/storage"
	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

// SeedDevices provisions or updates device settings from a semicolon separated
// file. Column layout:
//
//	deviceID;name;location;partNumber;serialNumber;tempMin;tempMax;humMin;humMax;flowMin;flowMax;recipients
//
// Range columns may be left empty to keep the factory defaults. Recipients is
// a comma separated list of addresses.
func SeedDevices(ctx context.Context, s DeviceStorage, devices io.ReadCloser) error {
	log := logging.GetFromContext(ctx)
	defer devices.Close()

	r := csv.NewReader(devices)
	r.Comma = ';'

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	records, err := getRecordsFromRows(rows)
	if err != nil {
		return err
	}

	log.Info("loaded device settings from file", slog.Int("rows", len(rows)), slog.Int("records", len(records)))

	for _, record := range records {
		settings := record.mapToSettings()

		err := s.AddDevice(ctx, settings)
		if errors.Is(err, storage.ErrAlreadyExist) {
			existing, getErr := s.GetSettings(ctx, settings.DeviceID)
			if getErr != nil {
				return getErr
			}

			settings.ID = existing.ID
			settings.EmailAlertsEnabled = existing.EmailAlertsEnabled
			settings.TemperatureAlertEnabled = existing.TemperatureAlertEnabled
			settings.HumidityAlertEnabled = existing.HumidityAlertEnabled
			settings.FlowRateAlertEnabled = existing.FlowRateAlertEnabled
			settings.AlertFrequency = existing.AlertFrequency

			err = s.UpdateSettings(ctx, settings)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

type settingsRecord struct {
	deviceID     string
	name         string
	location     string
	partNumber   string
	serialNumber string

	tempMin, tempMax *float64
	humMin, humMax   *float64
	flowMin, flowMax *float64

	recipients []string
}

func (r settingsRecord) mapToSettings() types.DeviceSettings {
	s := DefaultSettings()

	s.ID = uuid.NewString()
	s.DeviceID = r.deviceID
	s.Name = r.name
	s.Location = r.location
	s.PartNumber = r.partNumber
	s.SerialNumber = r.serialNumber

	assign := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	assign(&s.TemperatureMin, r.tempMin)
	assign(&s.TemperatureMax, r.tempMax)
	assign(&s.HumidityMin, r.humMin)
	assign(&s.HumidityMax, r.humMax)
	assign(&s.FlowRateMin, r.flowMin)
	assign(&s.FlowRateMax, r.flowMax)

	if len(r.recipients) > 0 {
		s.Recipients = r.recipients
	}

	return s
}

func getRecordsFromRows(rows [][]string) ([]settingsRecord, error) {
	records := make([]settingsRecord, 0, len(rows))

	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "deviceID") {
			continue
		}

		if len(row) < 12 {
			return nil, fmt.Errorf("row %d has %d columns, expected 12", i, len(row))
		}

		record := settingsRecord{
			deviceID:     strings.TrimSpace(row[0]),
			name:         strings.TrimSpace(row[1]),
			location:     strings.TrimSpace(row[2]),
			partNumber:   strings.TrimSpace(row[3]),
			serialNumber: strings.TrimSpace(row[4]),
		}

		if record.deviceID == "" {
			return nil, fmt.Errorf("row %d is missing a device id", i)
		}

		bounds := []**float64{&record.tempMin, &record.tempMax, &record.humMin, &record.humMax, &record.flowMin, &record.flowMax}
		for j, dst := range bounds {
			col := strings.TrimSpace(row[5+j])
			if col == "" {
				continue
			}

			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, 5+j, err)
			}
			*dst = &v
		}

		if recipients := strings.TrimSpace(row[11]); recipients != "" {
			for _, addr := range strings.Split(recipients, ",") {
				record.recipients = append(record.recipients, strings.TrimSpace(addr))
			}
		}

		records = append(records, record)
	}

	return records, nil
}
