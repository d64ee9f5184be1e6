package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows       = errors.New("no rows in result set")
	ErrQueryRow     = errors.New("could not execute query")
	ErrStoreFailed  = errors.New("could not store data")
	ErrNoID         = errors.New("data contains no id")
	ErrAlreadyExist = errors.New("device already exists")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) CreateTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS device_settings (
			id			TEXT	NOT NULL,
			device_id	TEXT	NOT NULL,
			device_name	TEXT	NULL,
			location	TEXT	NULL,
			part_number	TEXT	NULL,
			serial_number	TEXT	NULL,

			temperature_min	NUMERIC	NOT NULL DEFAULT 20.0,
			temperature_max	NUMERIC	NOT NULL DEFAULT 25.0,
			humidity_min	NUMERIC	NOT NULL DEFAULT 45.0,
			humidity_max	NUMERIC	NOT NULL DEFAULT 55.0,
			flow_rate_min	NUMERIC	NOT NULL DEFAULT 1.5,
			flow_rate_max	NUMERIC	NOT NULL DEFAULT 3.0,

			flow_rate_warning_hours		NUMERIC	NOT NULL DEFAULT 2,
			flow_rate_critical_hours	NUMERIC	NOT NULL DEFAULT 4,

			email_alerts_enabled	BOOLEAN	NOT NULL DEFAULT FALSE,
			alert_recipients		JSONB	NOT NULL DEFAULT '[]',

			temperature_alert_enabled	BOOLEAN	NOT NULL DEFAULT FALSE,
			temperature_alert_threshold	NUMERIC	NOT NULL DEFAULT 0,
			humidity_alert_enabled		BOOLEAN	NOT NULL DEFAULT FALSE,
			humidity_alert_threshold	NUMERIC	NOT NULL DEFAULT 0,
			flow_rate_alert_enabled		BOOLEAN	NOT NULL DEFAULT FALSE,
			flow_rate_alert_threshold	NUMERIC	NOT NULL DEFAULT 0,

			no_flow_alert_minutes	INT		NOT NULL DEFAULT 30,
			alert_frequency			TEXT	NOT NULL DEFAULT 'immediate',

			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_device_settings PRIMARY KEY (id),
			CONSTRAINT uniq_device_settings_device_id UNIQUE (device_id)
		);

		CREATE TABLE IF NOT EXISTS device_readings (
			device_id	TEXT	NOT NULL REFERENCES device_settings (device_id),
			temperature	NUMERIC	NULL,
			humidity	NUMERIC	NULL,
			flow_rate	NUMERIC	NULL,
			temperature_at	timestamp with time zone NULL,
			humidity_at		timestamp with time zone NULL,
			flow_rate_at	timestamp with time zone NULL,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS alert_events (
			alert_id	TEXT	NOT NULL,
			device_id	TEXT	NOT NULL,
			metric		TEXT	NOT NULL,
			value		NUMERIC	NOT NULL,
			threshold	TEXT	NOT NULL,
			description	TEXT	NULL,
			severity	INT		NOT NULL,
			observed_at	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alert_events PRIMARY KEY (alert_id)
		);

		CREATE INDEX IF NOT EXISTS device_readings_device_created_idx ON device_readings (device_id, created_on DESC);
		CREATE INDEX IF NOT EXISTS alert_events_device_observed_idx ON alert_events (device_id, observed_at DESC);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
