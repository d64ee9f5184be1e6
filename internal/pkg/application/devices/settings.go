package devices

import (
	"fmt"

	"github.com/Icealert/ice-alert-backend/pkg/types"
)

// DefaultSettings returns the factory configuration a device gets when it is
// provisioned without explicit ranges.
func DefaultSettings() types.DeviceSettings {
	return types.DeviceSettings{
		TemperatureMin:        20.0,
		TemperatureMax:        25.0,
		HumidityMin:           45.0,
		HumidityMax:           55.0,
		FlowRateMin:           1.5,
		FlowRateMax:           3.0,
		FlowRateWarningHours:  2,
		FlowRateCriticalHours: 4,
		Recipients:            []string{},
		NoFlowAlertMinutes:    30,
		AlertFrequency:        "immediate",
	}
}

// ToAlertSettings converts the flat storage row into the nested shape the
// dashboard edits. The conversion is lossless in both directions.
func ToAlertSettings(s types.DeviceSettings) types.AlertSettings {
	recipients := s.Recipients
	if recipients == nil {
		recipients = []string{}
	}

	return types.AlertSettings{
		Enabled:      s.EmailAlertsEnabled,
		Recipients:   recipients,
		NormalRanges: s.NormalRanges(),
		AlertThresholds: types.AlertThresholds{
			FlowRate: types.FlowRateThresholds{
				Warning:  s.FlowRateWarningHours,
				Critical: s.FlowRateCriticalHours,
			},
		},
		Conditions: types.AlertConditions{
			Temperature: types.MetricCondition{
				Enabled:        s.TemperatureAlertEnabled,
				ThresholdValue: s.TemperatureAlertThreshold,
				Frequency:      s.AlertFrequency,
			},
			Humidity: types.MetricCondition{
				Enabled:        s.HumidityAlertEnabled,
				ThresholdValue: s.HumidityAlertThreshold,
				Frequency:      s.AlertFrequency,
			},
			FlowRate: types.FlowCondition{
				MetricCondition: types.MetricCondition{
					Enabled:        s.FlowRateAlertEnabled,
					ThresholdValue: s.FlowRateAlertThreshold,
					Frequency:      s.AlertFrequency,
				},
				NoFlowDuration: s.NoFlowAlertMinutes,
			},
		},
	}
}

// MergeSettings applies a partial nested patch onto a storage row. Nil patch
// fields leave the corresponding columns untouched. The frequency knob is a
// single column shared by all three conditions; the last one set wins.
func MergeSettings(s types.DeviceSettings, patch types.AlertSettingsPatch) types.DeviceSettings {
	if patch.Enabled != nil {
		s.EmailAlertsEnabled = *patch.Enabled
	}

	if patch.Recipients != nil {
		s.Recipients = *patch.Recipients
	}

	if nr := patch.NormalRanges; nr != nil {
		mergeRange(nr.Temperature, &s.TemperatureMin, &s.TemperatureMax)
		mergeRange(nr.Humidity, &s.HumidityMin, &s.HumidityMax)
		mergeRange(nr.FlowRate, &s.FlowRateMin, &s.FlowRateMax)
	}

	if at := patch.AlertThresholds; at != nil && at.FlowRate != nil {
		if at.FlowRate.Warning != nil {
			s.FlowRateWarningHours = *at.FlowRate.Warning
		}
		if at.FlowRate.Critical != nil {
			s.FlowRateCriticalHours = *at.FlowRate.Critical
		}
	}

	if c := patch.Conditions; c != nil {
		mergeCondition(c.Temperature, &s.TemperatureAlertEnabled, &s.TemperatureAlertThreshold, &s.AlertFrequency)
		mergeCondition(c.Humidity, &s.HumidityAlertEnabled, &s.HumidityAlertThreshold, &s.AlertFrequency)

		if c.FlowRate != nil {
			mergeCondition(&c.FlowRate.MetricConditionPatch, &s.FlowRateAlertEnabled, &s.FlowRateAlertThreshold, &s.AlertFrequency)
			if c.FlowRate.NoFlowDuration != nil {
				s.NoFlowAlertMinutes = *c.FlowRate.NoFlowDuration
			}
		}
	}

	return s
}

func mergeRange(p *types.RangePatch, min, max *float64) {
	if p == nil {
		return
	}
	if p.Min != nil {
		*min = *p.Min
	}
	if p.Max != nil {
		*max = *p.Max
	}
}

func mergeCondition(p *types.MetricConditionPatch, enabled *bool, threshold *float64, frequency *string) {
	if p == nil {
		return
	}
	if p.Enabled != nil {
		*enabled = *p.Enabled
	}
	if p.ThresholdValue != nil {
		*threshold = *p.ThresholdValue
	}
	if p.Frequency != nil {
		*frequency = *p.Frequency
	}
}

func ValidateSettings(s types.DeviceSettings) error {
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"temperature", s.TemperatureMin, s.TemperatureMax},
		{"humidity", s.HumidityMin, s.HumidityMax},
		{"flowRate", s.FlowRateMin, s.FlowRateMax},
	}

	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("%w: %s range min %g exceeds max %g", ErrInvalidInput, r.name, r.min, r.max)
		}
	}

	if s.FlowRateWarningHours <= 0 || s.FlowRateCriticalHours <= 0 {
		return fmt.Errorf("%w: flow rate timing must be positive", ErrInvalidInput)
	}

	if s.FlowRateCriticalHours < s.FlowRateWarningHours {
		return fmt.Errorf("%w: critical hours %g precede warning hours %g", ErrInvalidInput, s.FlowRateCriticalHours, s.FlowRateWarningHours)
	}

	if s.NoFlowAlertMinutes <= 0 {
		return fmt.Errorf("%w: no flow duration must be positive", ErrInvalidInput)
	}

	return nil
}

func DeviceFromSettings(s types.DeviceSettings, latest *types.Reading) types.Device {
	return types.Device{
		ID:           s.ID,
		DeviceID:     s.DeviceID,
		Name:         s.Name,
		Location:     s.Location,
		PartNumber:   s.PartNumber,
		SerialNumber: s.SerialNumber,
		NormalRanges: s.NormalRanges(),
		FlowRateTiming: types.FlowRateTiming{
			WarningHours:  s.FlowRateWarningHours,
			CriticalHours: s.FlowRateCriticalHours,
		},
		AlertConfig: types.AlertConfig{
			Enabled:    s.EmailAlertsEnabled,
			Recipients: s.Recipients,
			Temperature: types.MetricAlert{
				Enabled:   s.TemperatureAlertEnabled,
				Threshold: s.TemperatureAlertThreshold,
				Frequency: s.AlertFrequency,
			},
			Humidity: types.MetricAlert{
				Enabled:   s.HumidityAlertEnabled,
				Threshold: s.HumidityAlertThreshold,
				Frequency: s.AlertFrequency,
			},
			FlowRate: types.MetricAlert{
				Enabled:   s.FlowRateAlertEnabled,
				Threshold: s.FlowRateAlertThreshold,
				Frequency: s.AlertFrequency,
			},
			NoFlowMinutes: s.NoFlowAlertMinutes,
		},
		LatestReading: latest,
		CreatedOn:     s.CreatedOn,
		ModifiedOn:    s.ModifiedOn,
	}
}
