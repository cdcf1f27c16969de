package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejection reasons recorded on roomd_reservation_rejections_total.
const (
	ReasonRoomOverlap = "room_overlap"
	ReasonInvalid     = "invalid"
	ReasonUserOverlap = "user_overlap"
	ReasonSameDay     = "same_day"
	ReasonNotFound    = "not_found"
)

// BookingMetrics counts reservation outcomes.
type BookingMetrics struct {
	created    prometheus.Counter
	updated    prometheus.Counter
	deleted    prometheus.Counter
	rejections *prometheus.CounterVec
}

// NewBookingMetrics registers the booking collectors on the default registry.
func NewBookingMetrics() *BookingMetrics {
	return NewBookingMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewBookingMetricsWithRegisterer registers the booking collectors on registerer.
func NewBookingMetricsWithRegisterer(registerer prometheus.Registerer) *BookingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BookingMetrics{
		created: registerCounter(registerer, prometheus.CounterOpts{
			Name: "roomd_reservations_created_total",
			Help: "Total number of reservations created",
		}),
		updated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "roomd_reservations_updated_total",
			Help: "Total number of reservations updated",
		}),
		deleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "roomd_reservations_deleted_total",
			Help: "Total number of reservations soft-deleted",
		}),
		rejections: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "roomd_reservation_rejections_total",
			Help: "Reservation writes rejected by a booking rule",
		}, []string{"reason"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCreated counts a persisted reservation. Safe on a nil receiver.
func (m *BookingMetrics) RecordCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

// RecordUpdated counts an applied reservation update.
func (m *BookingMetrics) RecordUpdated() {
	if m == nil {
		return
	}
	m.updated.Inc()
}

// RecordDeleted counts a soft-deleted reservation.
func (m *BookingMetrics) RecordDeleted() {
	if m == nil {
		return
	}
	m.deleted.Inc()
}

// RecordRejected counts a write refused for reason.
func (m *BookingMetrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}
