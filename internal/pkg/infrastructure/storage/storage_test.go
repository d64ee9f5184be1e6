package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestAddDevice(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()

	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	err = s.AddDevice(ctx, settings)
	is.True(err != nil) // same device id twice
	is.Equal(err, ErrAlreadyExist)

	fetched, err := s.GetSettings(ctx, settings.DeviceID)
	is.NoErr(err)
	is.Equal(fetched.DeviceID, settings.DeviceID)
	is.Equal(fetched.TemperatureMin, 20.0)
	is.Equal(fetched.Recipients, []string{"ops@example.com"})
}

func TestGetSettingsUnknownDevice(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	_, err := s.GetSettings(ctx, "no-such-device")
	is.Equal(err, ErrNoRows)
}

func TestUpdateSettings(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()
	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	settings.HumidityMax = 60.0
	settings.EmailAlertsEnabled = true

	err = s.UpdateSettings(ctx, settings)
	is.NoErr(err)

	fetched, err := s.GetSettings(ctx, settings.DeviceID)
	is.NoErr(err)
	is.Equal(fetched.HumidityMax, 60.0)
	is.True(fetched.EmailAlertsEnabled)

	settings.DeviceID = "no-such-device"
	err = s.UpdateSettings(ctx, settings)
	is.Equal(err, ErrNoRows)
}

func TestQuerySettingsWithSearch(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()
	settings.Location = "Freezer room 3"
	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	result, err := s.QuerySettings(ctx, WithSearch("freezer room 3"))
	is.NoErr(err)
	is.True(result.TotalCount >= 1)
}

func TestAddAndQueryReadings(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()
	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	temp := 22.5
	flow := 2.1

	stored, err := s.AddReading(ctx, types.Reading{
		DeviceID:    settings.DeviceID,
		Temperature: &temp,
		FlowRate:    &flow,
	})
	is.NoErr(err)
	is.True(!stored.CreatedOn.IsZero()) // created_on is assigned by the database

	temp2 := 23.0
	_, err = s.AddReading(ctx, types.Reading{DeviceID: settings.DeviceID, Temperature: &temp2})
	is.NoErr(err)

	result, err := s.QueryReadings(ctx, WithDeviceID(settings.DeviceID))
	is.NoErr(err)
	is.Equal(result.Count, uint64(2))
	is.True(!result.Data[0].CreatedOn.After(result.Data[1].CreatedOn)) // ascending

	latest, err := s.GetLatestReading(ctx, settings.DeviceID)
	is.NoErr(err)
	is.Equal(*latest.Temperature, 23.0)
	is.Equal(latest.Humidity, (*float64)(nil))

	all, err := s.GetLatestReadings(ctx)
	is.NoErr(err)
	is.Equal(all[settings.DeviceID].CreatedOn, latest.CreatedOn)
}

func TestAddReadingUnknownDeviceViolatesFK(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	temp := 22.5
	_, err := s.AddReading(ctx, types.Reading{DeviceID: "no-such-device", Temperature: &temp})
	is.True(err != nil)
}

func TestAlertEvents(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()
	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	err = s.AddAlertEvent(ctx, types.AlertEvent{
		ID:         uuid.NewString(),
		DeviceID:   settings.DeviceID,
		Metric:     types.MetricTemperature,
		Value:      30.0,
		Threshold:  "20-25",
		Severity:   types.AlertSeverityHigh,
		ObservedAt: time.Now().UTC(),
	})
	is.NoErr(err)

	err = s.AddAlertEvent(ctx, types.AlertEvent{DeviceID: settings.DeviceID})
	is.Equal(err, ErrNoID)

	result, err := s.QueryAlertEvents(ctx, WithDeviceID(settings.DeviceID))
	is.NoErr(err)
	is.Equal(result.Count, uint64(1))
	is.Equal(result.Data[0].Threshold, "20-25")
}

func TestListFlowStatus(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	settings := testSettings()
	err := s.AddDevice(ctx, settings)
	is.NoErr(err)

	statuses, err := s.ListFlowStatus(ctx)
	is.NoErr(err)

	var found bool
	for _, fs := range statuses {
		if fs.DeviceID == settings.DeviceID {
			found = true
			is.Equal(fs.LastFlowAt, (*time.Time)(nil)) // no flow sample yet

			flow := 2.0
			_, err = s.AddReading(ctx, types.Reading{DeviceID: settings.DeviceID, FlowRate: &flow})
			is.NoErr(err)
		}
	}
	is.True(found)
}

func testSettings() types.DeviceSettings {
	return types.DeviceSettings{
		ID:                    uuid.NewString(),
		DeviceID:              "IA-2024-" + uuid.NewString()[:8],
		Name:                  "Ice machine",
		Location:              "Kitchen",
		TemperatureMin:        20.0,
		TemperatureMax:        25.0,
		HumidityMin:           45.0,
		HumidityMax:           55.0,
		FlowRateMin:           1.5,
		FlowRateMax:           3.0,
		FlowRateWarningHours:  2,
		FlowRateCriticalHours: 4,
		Recipients:            []string{"ops@example.com"},
		NoFlowAlertMinutes:    30,
		AlertFrequency:        "immediate",
	}
}

func testSetup(t *testing.T) (context.Context, *Storage) {
	ctx := context.Background()

	config := NewConfig("localhost", "postgres", "password", "5432", "postgres", "disable")

	s, err := New(ctx, config)
	if err != nil {
		t.Log("could not connect to postgres, will skip test")
		t.SkipNow()
	}

	err = s.CreateTables(ctx)
	if err != nil {
		t.Log("could not create tables, will skip test")
		t.SkipNow()
	}

	return ctx, s
}
