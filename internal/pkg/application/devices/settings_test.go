package devices

import (
	"errors"
	"testing"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/matryer/is"
)

func TestSettingsRoundTrip(t *testing.T) {
	is := is.New(t)

	original := testSettings()
	original.EmailAlertsEnabled = true
	original.Recipients = []string{"ops@example.com", "oncall@example.com"}
	original.TemperatureAlertEnabled = true
	original.TemperatureAlertThreshold = 27.5

	nested := ToAlertSettings(original)
	merged := MergeSettings(testSettings(), patchFromSettings(nested))

	is.Equal(merged.EmailAlertsEnabled, original.EmailAlertsEnabled)
	is.Equal(merged.Recipients, original.Recipients)
	is.Equal(merged.TemperatureMin, original.TemperatureMin)
	is.Equal(merged.TemperatureMax, original.TemperatureMax)
	is.Equal(merged.HumidityMin, original.HumidityMin)
	is.Equal(merged.HumidityMax, original.HumidityMax)
	is.Equal(merged.FlowRateMin, original.FlowRateMin)
	is.Equal(merged.FlowRateMax, original.FlowRateMax)
	is.Equal(merged.FlowRateWarningHours, original.FlowRateWarningHours)
	is.Equal(merged.FlowRateCriticalHours, original.FlowRateCriticalHours)
	is.Equal(merged.TemperatureAlertEnabled, original.TemperatureAlertEnabled)
	is.Equal(merged.TemperatureAlertThreshold, original.TemperatureAlertThreshold)
	is.Equal(merged.NoFlowAlertMinutes, original.NoFlowAlertMinutes)
	is.Equal(merged.AlertFrequency, original.AlertFrequency)
}

func TestMergePreservesUntouchedFields(t *testing.T) {
	is := is.New(t)

	settings := testSettings()
	settings.HumidityMax = 55.0

	newMax := 26.0
	patch := types.AlertSettingsPatch{
		NormalRanges: &types.NormalRangesPatch{
			Temperature: &types.RangePatch{Max: &newMax},
		},
	}

	merged := MergeSettings(settings, patch)

	is.Equal(merged.TemperatureMax, 26.0)
	is.Equal(merged.TemperatureMin, 20.0) // min of patched range untouched
	is.Equal(merged.HumidityMax, 55.0)    // other ranges untouched
	is.Equal(merged.HumidityMin, 45.0)
	is.Equal(merged.Recipients, settings.Recipients)
}

func TestMergeNoFlowDuration(t *testing.T) {
	is := is.New(t)

	duration := 45
	enabled := true
	patch := types.AlertSettingsPatch{
		Conditions: &types.AlertConditionsPatch{
			FlowRate: &types.FlowConditionPatch{
				MetricConditionPatch: types.MetricConditionPatch{Enabled: &enabled},
				NoFlowDuration:       &duration,
			},
		},
	}

	merged := MergeSettings(testSettings(), patch)

	is.Equal(merged.NoFlowAlertMinutes, 45)
	is.True(merged.FlowRateAlertEnabled)
	is.True(!merged.TemperatureAlertEnabled)
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	is := is.New(t)

	settings := testSettings()
	settings.TemperatureMin = 30.0
	settings.TemperatureMax = 20.0

	err := ValidateSettings(settings)
	is.True(errors.Is(err, ErrInvalidInput))
}

func TestValidateRejectsCriticalBeforeWarning(t *testing.T) {
	is := is.New(t)

	settings := testSettings()
	settings.FlowRateWarningHours = 4
	settings.FlowRateCriticalHours = 2

	err := ValidateSettings(settings)
	is.True(errors.Is(err, ErrInvalidInput))
}

func TestDefaultsMatchFactoryConfiguration(t *testing.T) {
	is := is.New(t)

	def := DefaultSettings()

	is.Equal(def.TemperatureMin, 20.0)
	is.Equal(def.TemperatureMax, 25.0)
	is.Equal(def.HumidityMin, 45.0)
	is.Equal(def.HumidityMax, 55.0)
	is.Equal(def.FlowRateMin, 1.5)
	is.Equal(def.FlowRateMax, 3.0)
	is.Equal(def.FlowRateWarningHours, 2.0)
	is.Equal(def.FlowRateCriticalHours, 4.0)
	is.Equal(def.NoFlowAlertMinutes, 30)
	is.Equal(def.AlertFrequency, "immediate")
}

func patchFromSettings(a types.AlertSettings) types.AlertSettingsPatch {
	return types.AlertSettingsPatch{
		Enabled:    &a.Enabled,
		Recipients: &a.Recipients,
		NormalRanges: &types.NormalRangesPatch{
			Temperature: &types.RangePatch{Min: &a.NormalRanges.Temperature.Min, Max: &a.NormalRanges.Temperature.Max},
			Humidity:    &types.RangePatch{Min: &a.NormalRanges.Humidity.Min, Max: &a.NormalRanges.Humidity.Max},
			FlowRate:    &types.RangePatch{Min: &a.NormalRanges.FlowRate.Min, Max: &a.NormalRanges.FlowRate.Max},
		},
		AlertThresholds: &types.AlertThresholdsPatch{
			FlowRate: &types.FlowRateThresholdsPatch{
				Warning:  &a.AlertThresholds.FlowRate.Warning,
				Critical: &a.AlertThresholds.FlowRate.Critical,
			},
		},
		Conditions: &types.AlertConditionsPatch{
			Temperature: &types.MetricConditionPatch{
				Enabled:        &a.Conditions.Temperature.Enabled,
				ThresholdValue: &a.Conditions.Temperature.ThresholdValue,
				Frequency:      &a.Conditions.Temperature.Frequency,
			},
			Humidity: &types.MetricConditionPatch{
				Enabled:        &a.Conditions.Humidity.Enabled,
				ThresholdValue: &a.Conditions.Humidity.ThresholdValue,
				Frequency:      &a.Conditions.Humidity.Frequency,
			},
			FlowRate: &types.FlowConditionPatch{
				MetricConditionPatch: types.MetricConditionPatch{
					Enabled:        &a.Conditions.FlowRate.Enabled,
					ThresholdValue: &a.Conditions.FlowRate.ThresholdValue,
					Frequency:      &a.Conditions.FlowRate.Frequency,
				},
				NoFlowDuration: &a.Conditions.FlowRate.NoFlowDuration,
			},
		},
	}
}

func testSettings() types.DeviceSettings {
	s := DefaultSettings()
	s.ID = "7f4acb2d-1f3a-4d6a-9c6b-0c0f3f6f2a11"
	s.DeviceID = "IA-2024-0001"
	s.Name = "Ice machine 1"
	s.Location = "Kitchen"
	return s
}
