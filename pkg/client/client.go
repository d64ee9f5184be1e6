package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ice-alert-client")

var ErrDeviceNotFound = fmt.Errorf("device not found")

// IceAlertClient is used by gateway services and tooling to talk to the
// ice-alert-backend REST API.
type IceAlertClient interface {
	GetDevice(ctx context.Context, deviceID string) (types.Device, error)
	AddReading(ctx context.Context, reading types.IncomingReading) (types.Reading, error)
}

type iceAlertClient struct {
	url        string
	httpClient http.Client
}

func New(url string) IceAlertClient {
	return &iceAlertClient{
		url: url,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *iceAlertClient) GetDevice(ctx context.Context, deviceID string) (types.Device, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	url := c.url + "/api/devices/" + deviceID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.Device{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to retrieve device information: %w", err)
		return types.Device{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		err = ErrDeviceNotFound
		return types.Device{}, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return types.Device{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.Device{}, err
	}

	device := types.Device{}

	err = json.Unmarshal(respBody, &device)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.Device{}, err
	}

	return device, nil
}

func (c *iceAlertClient) AddReading(ctx context.Context, reading types.IncomingReading) (types.Reading, error) {
	var err error
	ctx, span := tracer.Start(ctx, "add-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(reading)
	if err != nil {
		err = fmt.Errorf("failed to marshal reading: %w", err)
		return types.Reading{}, err
	}

	url := c.url + "/api/readings"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.Reading{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to push reading: %w", err)
		return types.Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		err = ErrDeviceNotFound
		return types.Reading{}, err
	}
	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return types.Reading{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.Reading{}, err
	}

	stored := types.Reading{}

	err = json.Unmarshal(respBody, &stored)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.Reading{}, err
	}

	return stored, nil
}
