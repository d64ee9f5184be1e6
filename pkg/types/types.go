package types

import (
	"strconv"
	"time"
)

const (
	MetricTemperature = "temperature"
	MetricHumidity    = "humidity"
	MetricFlowRate    = "flowRate"
)

// Device is the assembled view of one monitored unit: its settings in the
// nested form the dashboard edits, plus the most recent reading (nil when the
// device has never reported).
type Device struct {
	ID           string `json:"id"`
	DeviceID     string `json:"deviceID"`
	Name         string `json:"name,omitzero"`
	Location     string `json:"location,omitzero"`
	PartNumber   string `json:"partNumber,omitzero"`
	SerialNumber string `json:"serialNumber,omitzero"`

	NormalRanges   NormalRanges   `json:"normalRanges"`
	FlowRateTiming FlowRateTiming `json:"flowRateTiming"`
	AlertConfig    AlertConfig    `json:"alertConfig"`

	LatestReading *Reading `json:"latestReading"`

	CreatedOn  time.Time `json:"createdOn"`
	ModifiedOn time.Time `json:"modifiedOn"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the inclusive [min,max] band. A nil
// value is in range by convention, so that missing samples are never flagged.
func (r Range) Contains(v *float64) bool {
	if v == nil {
		return true
	}
	return *v >= r.Min && *v <= r.Max
}

func (r Range) String() string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

type NormalRanges struct {
	Temperature Range `json:"temperature"`
	Humidity    Range `json:"humidity"`
	FlowRate    Range `json:"flowRate"`
}

func (nr NormalRanges) ByMetric(metric string) (Range, bool) {
	switch metric {
	case MetricTemperature:
		return nr.Temperature, true
	case MetricHumidity:
		return nr.Humidity, true
	case MetricFlowRate:
		return nr.FlowRate, true
	}
	return Range{}, false
}

// FlowRateTiming holds the duration thresholds for no/low flow escalation.
type FlowRateTiming struct {
	WarningHours  float64 `json:"warningHours"`
	CriticalHours float64 `json:"criticalHours"`
}

type MetricAlert struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
	Frequency string  `json:"frequency"`
}

type AlertConfig struct {
	Enabled       bool        `json:"enabled"`
	Recipients    []string    `json:"recipients"`
	Temperature   MetricAlert `json:"temperature"`
	Humidity      MetricAlert `json:"humidity"`
	FlowRate      MetricAlert `json:"flowRate"`
	NoFlowMinutes int         `json:"noFlowMinutes"`
}

// Reading is one sample event. A reading may carry any subset of the three
// metrics; an absent metric is nil, not zero. CreatedOn is assigned by the
// server at ingestion and is the ordering key. The *At timestamps are device
// reported and carried for display only.
type Reading struct {
	DeviceID    string   `json:"deviceID"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	FlowRate    *float64 `json:"flowRate"`

	TemperatureAt *time.Time `json:"temperatureAt,omitempty"`
	HumidityAt    *time.Time `json:"humidityAt,omitempty"`
	FlowRateAt    *time.Time `json:"flowRateAt,omitempty"`

	CreatedOn time.Time `json:"createdOn"`
}

func (r Reading) Metric(metric string) *float64 {
	switch metric {
	case MetricTemperature:
		return r.Temperature
	case MetricHumidity:
		return r.Humidity
	case MetricFlowRate:
		return r.FlowRate
	}
	return nil
}

const (
	AlertSeverityUnknown = 0
	AlertSeverityLow     = 1
	AlertSeverityMedium  = 2
	AlertSeverityHigh    = 3
)

// AlertEvent records that a metric breached its configured range for a device
// at a point in time. Append-only; written only by the alert evaluator.
type AlertEvent struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"deviceID"`
	Metric      string    `json:"metric"`
	Value       float64   `json:"value"`
	Threshold   string    `json:"threshold"`
	Description string    `json:"description,omitempty"`
	Severity    int       `json:"severity"`
	ObservedAt  time.Time `json:"observedAt"`
}

// DeviceSettings mirrors the device_settings row: the flat storage shape that
// the settings normalization converts to and from the nested UI shape.
type DeviceSettings struct {
	ID           string `json:"id"`
	DeviceID     string `json:"icealert_id"`
	Name         string `json:"device_name"`
	Location     string `json:"location"`
	PartNumber   string `json:"part_number"`
	SerialNumber string `json:"serial_number"`

	TemperatureMin float64 `json:"temperature_min"`
	TemperatureMax float64 `json:"temperature_max"`
	HumidityMin    float64 `json:"humidity_min"`
	HumidityMax    float64 `json:"humidity_max"`
	FlowRateMin    float64 `json:"flow_rate_min"`
	FlowRateMax    float64 `json:"flow_rate_max"`

	FlowRateWarningHours  float64 `json:"flow_rate_warning_hours"`
	FlowRateCriticalHours float64 `json:"flow_rate_critical_hours"`

	EmailAlertsEnabled bool     `json:"email_alerts_enabled"`
	Recipients         []string `json:"alert_recipients"`

	TemperatureAlertEnabled   bool    `json:"temperature_alert_enabled"`
	TemperatureAlertThreshold float64 `json:"temperature_alert_threshold"`
	HumidityAlertEnabled      bool    `json:"humidity_alert_enabled"`
	HumidityAlertThreshold    float64 `json:"humidity_alert_threshold"`
	FlowRateAlertEnabled      bool    `json:"flow_rate_alert_enabled"`
	FlowRateAlertThreshold    float64 `json:"flow_rate_alert_threshold"`

	NoFlowAlertMinutes int    `json:"no_flow_alert_minutes"`
	AlertFrequency     string `json:"alert_frequency"`

	CreatedOn  time.Time `json:"created_at"`
	ModifiedOn time.Time `json:"updated_at"`
}

func (s DeviceSettings) NormalRanges() NormalRanges {
	return NormalRanges{
		Temperature: Range{Min: s.TemperatureMin, Max: s.TemperatureMax},
		Humidity:    Range{Min: s.HumidityMin, Max: s.HumidityMax},
		FlowRate:    Range{Min: s.FlowRateMin, Max: s.FlowRateMax},
	}
}

// AlertSettings is the nested shape the dashboard edits.
type AlertSettings struct {
	Enabled         bool            `json:"enabled"`
	Recipients      []string        `json:"recipients"`
	NormalRanges    NormalRanges    `json:"normalRanges"`
	AlertThresholds AlertThresholds `json:"alertThresholds"`
	Conditions      AlertConditions `json:"conditions"`
}

type AlertThresholds struct {
	FlowRate FlowRateThresholds `json:"flowRate"`
}

type FlowRateThresholds struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

type AlertConditions struct {
	Temperature MetricCondition `json:"temperature"`
	Humidity    MetricCondition `json:"humidity"`
	FlowRate    FlowCondition   `json:"flowRate"`
}

type MetricCondition struct {
	Enabled        bool    `json:"enabled"`
	ThresholdValue float64 `json:"thresholdValue"`
	Frequency      string  `json:"frequency"`
}

type FlowCondition struct {
	MetricCondition
	NoFlowDuration int `json:"noFlowDuration"`
}

// AlertSettingsPatch is a partial AlertSettings. Nil fields are left untouched
// by the merge, so a patch that only sets temperature.max never resets the
// humidity bounds.
type AlertSettingsPatch struct {
	Enabled         *bool                 `json:"enabled"`
	Recipients      *[]string             `json:"recipients"`
	NormalRanges    *NormalRangesPatch    `json:"normalRanges"`
	AlertThresholds *AlertThresholdsPatch `json:"alertThresholds"`
	Conditions      *AlertConditionsPatch `json:"conditions"`
}

type NormalRangesPatch struct {
	Temperature *RangePatch `json:"temperature"`
	Humidity    *RangePatch `json:"humidity"`
	FlowRate    *RangePatch `json:"flowRate"`
}

type RangePatch struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type AlertThresholdsPatch struct {
	FlowRate *FlowRateThresholdsPatch `json:"flowRate"`
}

type FlowRateThresholdsPatch struct {
	Warning  *float64 `json:"warning"`
	Critical *float64 `json:"critical"`
}

type AlertConditionsPatch struct {
	Temperature *MetricConditionPatch `json:"temperature"`
	Humidity    *MetricConditionPatch `json:"humidity"`
	FlowRate    *FlowConditionPatch   `json:"flowRate"`
}

type MetricConditionPatch struct {
	Enabled        *bool    `json:"enabled"`
	ThresholdValue *float64 `json:"thresholdValue"`
	Frequency      *string  `json:"frequency"`
}

type FlowConditionPatch struct {
	MetricConditionPatch
	NoFlowDuration *int `json:"noFlowDuration"`
}

// IncomingReading is the ingestion payload pushed by a device.
type IncomingReading struct {
	DeviceID    string   `json:"deviceID"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	FlowRate    *float64 `json:"flowRate"`

	TemperatureAt *time.Time `json:"temperatureAt,omitempty"`
	HumidityAt    *time.Time `json:"humidityAt,omitempty"`
	FlowRateAt    *time.Time `json:"flowRateAt,omitempty"`
}

// FlowStatus is what the no-flow watchdog sweeps over: one row per device with
// the time of its most recent flow sample (nil when it has never reported flow).
type FlowStatus struct {
	DeviceID      string
	AlertsEnabled bool
	FlowAlertOn   bool
	NoFlowMinutes int
	WarningHours  float64
	CriticalHours float64
	LastFlowAt    *time.Time
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
