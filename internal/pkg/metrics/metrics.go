// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"errors"
	"net/http"

	"mfgorders/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mfgorders"

var (
	// CommandsTotal counts command executions by command and outcome.
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Command executions by command name and outcome.",
	}, []string{"command", "outcome"})

	// CascadeDeleteRows counts rows removed by order deletion per table.
	CascadeDeleteRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_delete_rows_total",
		Help:      "Rows removed by order cascade deletes, per table.",
	}, []string{"table"})

	// NotificationsRelayed counts notifications published to the message bus.
	NotificationsRelayed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_relayed_total",
		Help:      "Notifications published to the message bus.",
	})

	// UploadsTotal counts media uploads by outcome.
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Media uploads by outcome.",
	}, []string{"outcome"})
)

// Register adds every collector to reg. Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{CommandsTotal, CascadeDeleteRows, NotificationsRelayed, UploadsTotal} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Outcome is the label value for err.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(errs.KindOf(err))
}

// ObserveCommand increments CommandsTotal for one execution.
func ObserveCommand(command string, err error) {
	CommandsTotal.WithLabelValues(command, Outcome(err)).Inc()
}
