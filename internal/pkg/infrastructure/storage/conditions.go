package storage

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	DeviceID string
	Metric   string
	Since    time.Time
	Until    time.Time

	Search string

	sortBy    string
	sortOrder string

	offset *int
	limit  *int
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.Metric != "" {
		args["metric"] = c.Metric
	}
	if !c.Since.IsZero() {
		args["since"] = c.Since.UTC()
	}
	if !c.Until.IsZero() {
		args["until"] = c.Until.UTC()
	}
	if c.Search != "" {
		args["search"] = "%" + c.Search + "%"
	}

	return args
}

// Where renders the filter for a query over an aliased relation; every query in
// this package aliases its primary table as t.
func (c Condition) Where() string {
	where := []string{}

	if c.DeviceID != "" {
		where = append(where, "t.device_id = @device_id")
	}

	if c.Metric != "" {
		where = append(where, "t.metric = @metric")
	}

	if !c.Since.IsZero() {
		where = append(where, "t.created_on >= @since")
	}

	if !c.Until.IsZero() {
		where = append(where, "t.created_on < @until")
	}

	if c.Search != "" {
		where = append(where, "(t.device_id ILIKE @search OR t.device_name ILIKE @search OR t.location ILIKE @search)")
	}

	if len(where) == 0 {
		return "TRUE"
	}

	return strings.Join(where, " AND ")
}

func (c Condition) SortBy() string {
	if c.sortBy == "" {
		return "t.created_on"
	}
	return c.sortBy
}

func (c Condition) SortOrder() string {
	if c.sortOrder == "" {
		return "ASC"
	}
	return c.sortOrder
}

func (c Condition) Offset() int {
	if c.offset == nil {
		return 0
	}
	return *c.offset
}

func (c Condition) Limit() int {
	if c.limit == nil {
		return 0
	}
	return *c.limit
}

func (c Condition) HasOffset() bool { return c.offset != nil }
func (c Condition) HasLimit() bool  { return c.limit != nil }

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithMetric(metric string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Metric = metric
		return c
	}
}

func WithSince(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Since = ts
		return c
	}
}

func WithUntil(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Until = ts
		return c
	}
}

var re = regexp.MustCompile(`[^a-zA-ZåäöÅÄÖ0-9 _\-,;().]+|[%]`)

func WithSearch(s string) ConditionFunc {
	return func(c *Condition) *Condition {
		s = re.ReplaceAllString(s, "")
		c.Search = strings.TrimSpace(s)
		return c
	}
}

func WithSortBy(sortBy string) ConditionFunc {
	return func(c *Condition) *Condition {
		switch strings.ToLower(sortBy) {
		case "device_id":
			c.sortBy = "t.device_id"
		case "name":
			c.sortBy = "t.device_name"
		case "location":
			c.sortBy = "t.location"
		case "observed_at":
			c.sortBy = "t.observed_at"
		case "created_on":
			c.sortBy = "t.created_on"
		}
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

func ParseConditions(ctx context.Context, params map[string][]string) []ConditionFunc {
	log := logging.GetFromContext(ctx)

	conditions := make([]ConditionFunc, 0)

	for k, v := range params {
		switch strings.ToLower(k) {
		case "device_id":
			conditions = append(conditions, WithDeviceID(v[0]))
		case "search":
			conditions = append(conditions, WithSearch(v[0]))
		case "limit":
			limit, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithLimit(limit))
		case "offset":
			offset, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithOffset(offset))
		case "sortby":
			conditions = append(conditions, WithSortBy(v[0]))
		case "sortorder":
			conditions = append(conditions, WithSortDesc(strings.EqualFold(v[0], "desc")))
		default:
			log.Debug("unknown query parameter", "param", k, "value", v[0])
		}
	}

	return conditions
}
