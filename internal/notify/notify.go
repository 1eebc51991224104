// Package notify handles alert delivery out of the rule pipeline.
package notify

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"signalgen-go/internal/metrics"
	sig "signalgen-go/internal/signal"
)

// Notifier implements a logger-backed sink for alerts.
type Notifier struct{ log zerolog.Logger }

// NewNotifier wraps a zerolog logger for alert delivery.
func NewNotifier(log zerolog.Logger) *Notifier { return &Notifier{log: log} }

// Send assigns the alert an id and logs it; wire real channels (mail, webhook) here later.
func (n *Notifier) Send(alert *sig.Alert) error {
	if alert == nil {
		return nil
	}
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	metrics.AlertsTotal.WithLabelValues(alert.Signal, alert.Rule).Inc()
	n.log.Warn().Str("id", alert.ID).Str("signal", alert.Signal).Str("rule", alert.Rule).Float64("value", alert.Value).Str("reason", alert.Reason).Msg("alert")
	return nil
}
