package devices

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Icealert/ice-alert-backend/internal/pkg/application/readings"
	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/storage"
	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrDeviceAlreadyExist = fmt.Errorf("device already exists")
var ErrInvalidInput = fmt.Errorf("invalid input")

type DeviceManagement interface {
	Create(ctx context.Context, settings types.DeviceSettings) (types.DeviceSettings, error)
	GetByDeviceID(ctx context.Context, deviceID string) (types.Device, error)
	Query(ctx context.Context, params map[string][]string) (types.Collection[types.Device], error)

	GetAlertSettings(ctx context.Context, deviceID string) (types.AlertSettings, error)
	UpdateAlertSettings(ctx context.Context, deviceID string, patch types.AlertSettingsPatch) (types.AlertSettings, error)

	AddReading(ctx context.Context, incoming types.IncomingReading) (types.Reading, error)
	QueryReadings(ctx context.Context, deviceID string, since, until time.Time) ([]types.Reading, error)
	Stats(ctx context.Context, deviceID, metric string, since, until time.Time) (readings.Statistics, error)
}

//go:generate moq -rm -out devicestorage_mock.go . DeviceStorage
type DeviceStorage interface {
	AddDevice(ctx context.Context, settings types.DeviceSettings) error
	UpdateSettings(ctx context.Context, settings types.DeviceSettings) error
	GetSettings(ctx context.Context, deviceID string) (types.DeviceSettings, error)
	QuerySettings(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DeviceSettings], error)

	AddReading(ctx context.Context, r types.Reading) (types.Reading, error)
	QueryReadings(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Reading], error)
	GetLatestReading(ctx context.Context, deviceID string) (types.Reading, error)
	GetLatestReadings(ctx context.Context) (map[string]types.Reading, error)
}

type service struct {
	storage   DeviceStorage
	messenger messaging.MsgContext
}

func New(s DeviceStorage, m messaging.MsgContext) DeviceManagement {
	return &service{
		storage:   s,
		messenger: m,
	}
}

func (svc *service) Create(ctx context.Context, settings types.DeviceSettings) (types.DeviceSettings, error) {
	if settings.DeviceID == "" {
		return types.DeviceSettings{}, fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}

	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}

	settings = withDefaults(settings)

	err := ValidateSettings(settings)
	if err != nil {
		return types.DeviceSettings{}, err
	}

	err = svc.storage.AddDevice(ctx, settings)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExist) {
			return types.DeviceSettings{}, ErrDeviceAlreadyExist
		}
		return types.DeviceSettings{}, err
	}

	return svc.storage.GetSettings(ctx, settings.DeviceID)
}

// withDefaults fills zero-valued ranges and timings on a provisioning request.
// A device posted with only its id and name gets the factory configuration.
func withDefaults(s types.DeviceSettings) types.DeviceSettings {
	def := DefaultSettings()

	if s.TemperatureMin == 0 && s.TemperatureMax == 0 {
		s.TemperatureMin, s.TemperatureMax = def.TemperatureMin, def.TemperatureMax
	}
	if s.HumidityMin == 0 && s.HumidityMax == 0 {
		s.HumidityMin, s.HumidityMax = def.HumidityMin, def.HumidityMax
	}
	if s.FlowRateMin == 0 && s.FlowRateMax == 0 {
		s.FlowRateMin, s.FlowRateMax = def.FlowRateMin, def.FlowRateMax
	}
	if s.FlowRateWarningHours == 0 {
		s.FlowRateWarningHours = def.FlowRateWarningHours
	}
	if s.FlowRateCriticalHours == 0 {
		s.FlowRateCriticalHours = def.FlowRateCriticalHours
	}
	if s.NoFlowAlertMinutes == 0 {
		s.NoFlowAlertMinutes = def.NoFlowAlertMinutes
	}
	if s.AlertFrequency == "" {
		s.AlertFrequency = def.AlertFrequency
	}
	if s.Recipients == nil {
		s.Recipients = []string{}
	}

	return s
}

func (svc *service) GetByDeviceID(ctx context.Context, deviceID string) (types.Device, error) {
	settings, err := svc.storage.GetSettings(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Device{}, ErrDeviceNotFound
		}
		return types.Device{}, err
	}

	var latest *types.Reading

	r, err := svc.storage.GetLatestReading(ctx, deviceID)
	if err == nil {
		latest = &r
	} else if !errors.Is(err, storage.ErrNoRows) {
		return types.Device{}, err
	}

	return DeviceFromSettings(settings, latest), nil
}

func (svc *service) Query(ctx context.Context, params map[string][]string) (types.Collection[types.Device], error) {
	conditions := storage.ParseConditions(ctx, params)

	result, err := svc.storage.QuerySettings(ctx, conditions...)
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	latest, err := svc.storage.GetLatestReadings(ctx)
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	devices := lo.Map(result.Data, func(s types.DeviceSettings, _ int) types.Device {
		var r *types.Reading
		if reading, ok := latest[s.DeviceID]; ok {
			r = &reading
		}
		return DeviceFromSettings(s, r)
	})

	return types.Collection[types.Device]{
		Data:       devices,
		Count:      result.Count,
		Offset:     result.Offset,
		Limit:      result.Limit,
		TotalCount: result.TotalCount,
	}, nil
}

func (svc *service) GetAlertSettings(ctx context.Context, deviceID string) (types.AlertSettings, error) {
	settings, err := svc.storage.GetSettings(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.AlertSettings{}, ErrDeviceNotFound
		}
		return types.AlertSettings{}, err
	}

	return ToAlertSettings(settings), nil
}

func (svc *service) UpdateAlertSettings(ctx context.Context, deviceID string, patch types.AlertSettingsPatch) (types.AlertSettings, error) {
	settings, err := svc.storage.GetSettings(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.AlertSettings{}, ErrDeviceNotFound
		}
		return types.AlertSettings{}, err
	}

	merged := MergeSettings(settings, patch)

	err = ValidateSettings(merged)
	if err != nil {
		return types.AlertSettings{}, err
	}

	err = svc.storage.UpdateSettings(ctx, merged)
	if err != nil {
		return types.AlertSettings{}, err
	}

	return ToAlertSettings(merged), nil
}

func (svc *service) AddReading(ctx context.Context, incoming types.IncomingReading) (types.Reading, error) {
	log := logging.GetFromContext(ctx)

	if incoming.DeviceID == "" {
		return types.Reading{}, fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}

	if incoming.Temperature == nil && incoming.Humidity == nil && incoming.FlowRate == nil {
		return types.Reading{}, fmt.Errorf("%w: reading contains no metric values", ErrInvalidInput)
	}

	for _, v := range []*float64{incoming.Temperature, incoming.Humidity, incoming.FlowRate} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return types.Reading{}, fmt.Errorf("%w: metric values must be finite", ErrInvalidInput)
		}
	}

	_, err := svc.storage.GetSettings(ctx, incoming.DeviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Reading{}, ErrDeviceNotFound
		}
		return types.Reading{}, err
	}

	stored, err := svc.storage.AddReading(ctx, types.Reading{
		DeviceID:      incoming.DeviceID,
		Temperature:   incoming.Temperature,
		Humidity:      incoming.Humidity,
		FlowRate:      incoming.FlowRate,
		TemperatureAt: incoming.TemperatureAt,
		HumidityAt:    incoming.HumidityAt,
		FlowRateAt:    incoming.FlowRateAt,
	})
	if err != nil {
		return types.Reading{}, err
	}

	// alert evaluation rides on the topic message and must never fail ingestion
	err = svc.messenger.PublishOnTopic(ctx, &ReadingStored{
		Reading:   stored,
		Timestamp: stored.CreatedOn,
	})
	if err != nil {
		log.Error("failed to publish reading.stored", "device_id", stored.DeviceID, "err", err.Error())
	}

	return stored, nil
}

func (svc *service) QueryReadings(ctx context.Context, deviceID string, since, until time.Time) ([]types.Reading, error) {
	log := logging.GetFromContext(ctx)

	_, err := svc.storage.GetSettings(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			log.Debug("readings requested for unknown device", "device_id", deviceID)
			return []types.Reading{}, nil
		}
		return nil, err
	}

	result, err := svc.storage.QueryReadings(ctx,
		storage.WithDeviceID(deviceID),
		storage.WithSince(since),
		storage.WithUntil(until),
	)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (svc *service) Stats(ctx context.Context, deviceID, metric string, since, until time.Time) (readings.Statistics, error) {
	if metric != types.MetricTemperature && metric != types.MetricHumidity && metric != types.MetricFlowRate {
		return readings.Statistics{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, metric)
	}

	window, err := svc.QueryReadings(ctx, deviceID, since, until)
	if err != nil {
		return readings.Statistics{}, err
	}

	return readings.Summarize(readings.SamplesFromReadings(window, metric)), nil
}
