package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	RequestsTotal     = "app_requests_total"
	UserCreatedTotal  = "user_created_total"
	UserUpdatedTotal  = "user_updated_total"
	UserDeletedTotal  = "user_deleted_total"
	LoginSuccessTotal = "login_success_total"
	LoginFailedTotal  = "login_failed_total"
)

func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "usermanager",
			Name:      "general_counters",
		},
		[]string{"result"})
	if reg != nil {
		reg.MustRegister(c)
	}
	return c
}
