// Package metrics содержит счётчики Prometheus для бизнес-событий сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegistrationsTotal — количество успешных регистраций.
var RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "unilocal_registrations_total",
	Help: "Total number of successful user registrations.",
})

// PlaceSubmissionsTotal — количество отправленных заявок на места.
var PlaceSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "unilocal_place_submissions_total",
	Help: "Total number of submitted places.",
})

// ModerationDecisionsTotal — решения модератора по статусам.
var ModerationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "unilocal_moderation_decisions_total",
	Help: "Total number of moderation decisions by resulting status.",
}, []string{"status"})
