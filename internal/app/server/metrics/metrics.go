package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexuslean_http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nexuslean_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CardsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexuslean_cards_created_total",
		Help: "Improvement cards inserted",
	})

	AuditsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexuslean_audits_created_total",
		Help: "5S audits inserted",
	})

	AttachmentsUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexuslean_attachments_uploaded_total",
		Help: "Evidence photos stored",
	})

	AttachmentBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexuslean_attachment_bytes_total",
		Help: "Total evidence photo bytes stored",
	})
)
