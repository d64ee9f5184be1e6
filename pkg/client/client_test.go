package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/matryer/is"
)

func TestGetDevice(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/api/devices/IA-2024-0001")

		b, _ := json.Marshal(types.Device{
			ID:       "7f4acb2d-1f3a-4d6a-9c6b-0c0f3f6f2a11",
			DeviceID: "IA-2024-0001",
			Name:     "Ice machine 1",
		})
		w.Header().Add("Content-Type", "application/json")
		w.Write(b)
	}))
	defer server.Close()

	c := New(server.URL)

	device, err := c.GetDevice(context.Background(), "IA-2024-0001")
	is.NoErr(err)
	is.Equal(device.DeviceID, "IA-2024-0001")
	is.Equal(device.Name, "Ice machine 1")
}

func TestGetDeviceNotFound(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.GetDevice(context.Background(), "no-such-device")
	is.True(errors.Is(err, ErrDeviceNotFound))
}

func TestAddReading(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/api/readings")
		is.Equal(r.Method, http.MethodPost)

		var incoming types.IncomingReading
		is.NoErr(json.NewDecoder(r.Body).Decode(&incoming))

		b, _ := json.Marshal(types.Reading{
			DeviceID:    incoming.DeviceID,
			Temperature: incoming.Temperature,
			CreatedOn:   time.Now().UTC(),
		})
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(b)
	}))
	defer server.Close()

	c := New(server.URL)

	temp := 22.5
	stored, err := c.AddReading(context.Background(), types.IncomingReading{
		DeviceID:    "IA-2024-0001",
		Temperature: &temp,
	})
	is.NoErr(err)
	is.Equal(*stored.Temperature, 22.5)
	is.True(!stored.CreatedOn.IsZero())
}
