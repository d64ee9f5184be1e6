package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Icealert/ice-alert-backend/internal/pkg/application/alerts"
	"github.com/Icealert/ice-alert-backend/internal/pkg/application/devices"
	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/router"
	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/storage"
	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestHealthEndpoint(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/health", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"status":"ok"`))
}

func TestGetDeviceDetails(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices/IA-2024-0001", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	var device types.Device
	is.NoErr(json.Unmarshal([]byte(body), &device))
	is.Equal(device.DeviceID, "IA-2024-0001")
	is.Equal(device.NormalRanges.Temperature.Max, 25.0)
	is.True(device.LatestReading != nil)
}

func TestGetUnknownDeviceReturns404(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices/no-such-device", "", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, `"error"`))
}

func TestQueryDevices(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	var result []types.Device
	is.NoErr(json.Unmarshal([]byte(body), &result))
	is.Equal(len(result), 1)
}

func TestAddReading(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	payload := `{"deviceID": "IA-2024-0001", "temperature": 22.5, "flowRate": 2.1}`
	resp, body := testRequest(is, server, http.MethodPost, "/api/readings", "", strings.NewReader(payload))

	is.Equal(resp.StatusCode, http.StatusCreated)

	var stored types.Reading
	is.NoErr(json.Unmarshal([]byte(body), &stored))
	is.Equal(*stored.Temperature, 22.5)
	is.True(!stored.CreatedOn.IsZero())
}

func TestAddReadingUnknownDevice(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	payload := `{"deviceID": "no-such-device", "temperature": 22.5}`
	resp, _ := testRequest(is, server, http.MethodPost, "/api/readings", "", strings.NewReader(payload))

	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestAddReadingWithoutMetrics(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	payload := `{"deviceID": "IA-2024-0001"}`
	resp, _ := testRequest(is, server, http.MethodPost, "/api/readings", "", strings.NewReader(payload))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestGetAlertSettings(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices/IA-2024-0001/alerts", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	var settings types.AlertSettings
	is.NoErr(json.Unmarshal([]byte(body), &settings))
	is.Equal(settings.NormalRanges.Humidity.Min, 45.0)
	is.Equal(settings.Conditions.FlowRate.NoFlowDuration, 30)
}

func TestUpdateAlertSettings(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	payload := `{"normalRanges": {"temperature": {"max": 26.0}}}`
	resp, body := testRequest(is, server, http.MethodPut, "/api/devices/IA-2024-0001/alerts", "", strings.NewReader(payload))

	is.Equal(resp.StatusCode, http.StatusOK)

	var updated types.AlertSettings
	is.NoErr(json.Unmarshal([]byte(body), &updated))
	is.Equal(updated.NormalRanges.Temperature.Max, 26.0)
	is.Equal(updated.NormalRanges.Temperature.Min, 20.0) // untouched
	is.Equal(updated.NormalRanges.Humidity.Max, 55.0)    // untouched
}

func TestUpdateAlertSettingsRejectsInvertedRange(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	payload := `{"normalRanges": {"temperature": {"min": 30.0}}}`
	resp, _ := testRequest(is, server, http.MethodPut, "/api/devices/IA-2024-0001/alerts", "", strings.NewReader(payload))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestReadingStats(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices/IA-2024-0001/readings/stats?metric=temperature&hours=24", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"mean"`))
}

func TestReadingStatsUnknownMetric(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/api/devices/IA-2024-0001/readings/stats?metric=pressure", "", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestAlertHistory(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), nil)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/devices/IA-2024-0001/alert-history?days=7", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	var history []types.AlertEvent
	is.NoErr(json.Unmarshal([]byte(body), &history))
	is.Equal(len(history), 1)
	is.Equal(history[0].Threshold, "20-25")
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	is, server := testSetup(t, deviceStorageMock(), alertStorageMock(), strings.NewReader(testPolicy))
	defer server.Close()

	payload := `{"enabled": true}`
	resp, _ := testRequest(is, server, http.MethodPut, "/api/devices/IA-2024-0001/alerts", "", strings.NewReader(payload))
	is.Equal(resp.StatusCode, http.StatusUnauthorized)

	resp, _ = testRequest(is, server, http.MethodPut, "/api/devices/IA-2024-0001/alerts", "Bearer sometoken", strings.NewReader(payload))
	is.Equal(resp.StatusCode, http.StatusOK)
}

func testRequest(is *is.I, ts *httptest.Server, method, path, token string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	if token != "" {
		req.Header.Add("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	return resp, string(respBody)
}

func testSetup(t *testing.T, ds *devices.DeviceStorageMock, as *alerts.AlertStorageMock, policies io.Reader) (*is.I, *httptest.Server) {
	is := is.New(t)
	ctx := context.Background()

	msgCtx := &messaging.MsgContextMock{
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			return nil
		},
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	deviceSvc := devices.New(ds, msgCtx)
	alertSvc := alerts.New(as, msgCtx, nil)

	r, err := RegisterHandlers(ctx, router.New("testing"), policies, deviceSvc, alertSvc)
	is.NoErr(err)

	return is, httptest.NewServer(r)
}

func deviceStorageMock() *devices.DeviceStorageMock {
	settings := testSettings()

	latest := func() types.Reading {
		temp := 22.5
		return types.Reading{
			DeviceID:    settings.DeviceID,
			Temperature: &temp,
			CreatedOn:   time.Now().UTC(),
		}
	}

	return &devices.DeviceStorageMock{
		GetSettingsFunc: func(ctx context.Context, deviceID string) (types.DeviceSettings, error) {
			if deviceID != settings.DeviceID {
				return types.DeviceSettings{}, storage.ErrNoRows
			}
			return settings, nil
		},
		QuerySettingsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DeviceSettings], error) {
			return types.Collection[types.DeviceSettings]{
				Data:       []types.DeviceSettings{settings},
				Count:      1,
				TotalCount: 1,
			}, nil
		},
		UpdateSettingsFunc: func(ctx context.Context, s types.DeviceSettings) error {
			return nil
		},
		AddReadingFunc: func(ctx context.Context, r types.Reading) (types.Reading, error) {
			r.CreatedOn = time.Now().UTC()
			return r, nil
		},
		QueryReadingsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Reading], error) {
			return types.Collection[types.Reading]{
				Data:       []types.Reading{latest()},
				Count:      1,
				TotalCount: 1,
			}, nil
		},
		GetLatestReadingFunc: func(ctx context.Context, deviceID string) (types.Reading, error) {
			return latest(), nil
		},
		GetLatestReadingsFunc: func(ctx context.Context) (map[string]types.Reading, error) {
			return map[string]types.Reading{settings.DeviceID: latest()}, nil
		},
	}
}

func alertStorageMock() *alerts.AlertStorageMock {
	return &alerts.AlertStorageMock{
		QueryAlertEventsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error) {
			return types.Collection[types.AlertEvent]{
				Data: []types.AlertEvent{
					{
						ID:         "e2c1b6a0-0000-0000-0000-000000000000",
						DeviceID:   "IA-2024-0001",
						Metric:     types.MetricTemperature,
						Value:      30.0,
						Threshold:  "20-25",
						Severity:   types.AlertSeverityMedium,
						ObservedAt: time.Now().UTC(),
					},
				},
				Count:      1,
				TotalCount: 1,
			}, nil
		},
	}
}

func testSettings() types.DeviceSettings {
	return types.DeviceSettings{
		ID:                    "7f4acb2d-1f3a-4d6a-9c6b-0c0f3f6f2a11",
		DeviceID:              "IA-2024-0001",
		Name:                  "Ice machine 1",
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
		CreatedOn:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ModifiedOn:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

const testPolicy string = `
package icealert.authz

import rego.v1

default allow := false

allow := {"scopes": ["read", "write"]} if {
	input.token == "sometoken"
}
`
