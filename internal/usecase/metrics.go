package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_feature_reconcile_total",
		Help: "Feature reconcile requests by parent kind and response class",
	}, []string{"kind", "status"})

	associationsChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_feature_associations_changed_total",
		Help: "Feature association rows created or deleted",
	}, []string{"kind", "op"})
)
