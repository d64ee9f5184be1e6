package watchdog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Watchdog periodically sweeps all devices and publishes noFlowObserved
// messages for those whose most recent flow sample is older than their
// configured thresholds.
type Watchdog interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

//go:generate moq -rm -out flowstatuslister_mock.go . FlowStatusLister
type FlowStatusLister interface {
	ListFlowStatus(ctx context.Context) ([]types.FlowStatus, error)
}

type watchdogImpl struct {
	storage   FlowStatusLister
	messenger messaging.MsgContext
	interval  time.Duration

	// last published severity per device, so a device escalates through
	// low/medium/high exactly once per dry spell
	published map[string]int
	sweeping  chan struct{}

	done chan bool
	wg   sync.WaitGroup
}

func New(s FlowStatusLister, m messaging.MsgContext, interval time.Duration) Watchdog {
	return &watchdogImpl{
		storage:   s,
		messenger: m,
		interval:  interval,
		published: map[string]int{},
		sweeping:  make(chan struct{}, 1),
		done:      make(chan bool),
	}
}

func (w *watchdogImpl) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *watchdogImpl) Stop(ctx context.Context) {
	w.done <- true
	w.wg.Wait()
}

func (w *watchdogImpl) run(ctx context.Context) {
	defer w.wg.Done()

	log := logging.GetFromContext(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			select {
			case w.sweeping <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-w.sweeping }()

					err := w.sweep(ctx)
					if err != nil {
						log.Error("no flow sweep failed", "err", err.Error())
					}
				}()
			default:
				// previous sweep still running, drop this tick
				log.Debug("skipping no flow sweep, previous sweep still in progress")
			}
		}
	}
}

func (w *watchdogImpl) sweep(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	statuses, err := w.storage.ListFlowStatus(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	for _, fs := range statuses {
		if !fs.AlertsEnabled || !fs.FlowAlertOn {
			delete(w.published, fs.DeviceID)
			continue
		}

		severity, silentFor := severityFor(fs, now)

		if severity == types.AlertSeverityUnknown {
			// flow has resumed, re-arm the ladder
			delete(w.published, fs.DeviceID)
			continue
		}

		if severity <= w.published[fs.DeviceID] {
			continue
		}

		err := w.messenger.PublishOnTopic(ctx, &NoFlowObserved{
			DeviceID:           fs.DeviceID,
			Severity:           severity,
			MinutesWithoutFlow: int(silentFor.Minutes()),
			LastFlowAt:         fs.LastFlowAt,
			ObservedAt:         now,
		})
		if err != nil {
			log.Error("could not publish no flow message", "device_id", fs.DeviceID, "err", err.Error())
			continue
		}

		w.published[fs.DeviceID] = severity

		log.Info("no flow observed",
			slog.String("device_id", fs.DeviceID),
			slog.Int("severity", severity),
			slog.Int("minutes", int(silentFor.Minutes())))
	}

	return nil
}

// severityFor maps how long a device has been silent onto the escalation
// ladder: noFlowMinutes -> low, warningHours -> medium, criticalHours -> high.
// A device that has never reported flow is treated as silent since forever.
func severityFor(fs types.FlowStatus, now time.Time) (int, time.Duration) {
	silentFor := time.Duration(1<<62 - 1)
	if fs.LastFlowAt != nil {
		silentFor = now.Sub(*fs.LastFlowAt)
	}

	switch {
	case silentFor >= time.Duration(fs.CriticalHours*float64(time.Hour)):
		return types.AlertSeverityHigh, silentFor
	case silentFor >= time.Duration(fs.WarningHours*float64(time.Hour)):
		return types.AlertSeverityMedium, silentFor
	case silentFor >= time.Duration(fs.NoFlowMinutes)*time.Minute:
		return types.AlertSeverityLow, silentFor
	}

	return types.AlertSeverityUnknown, silentFor
}
