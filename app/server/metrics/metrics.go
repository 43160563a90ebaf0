package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 登录与注册的结果
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid_credentials"
	OutcomeTokenIssuance = "token_issuance"
	OutcomeThrottled     = "throttled"
	OutcomeDuplicate     = "duplicate"
	OutcomeFailed        = "failed"
	OutcomeError         = "error"
)

type Metrics struct {
	reg *prometheus.Registry

	Login    *prometheus.CounterVec
	Register *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		Login: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "library",
			Subsystem: "auth",
			Name:      "login_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		Register: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "library",
			Subsystem: "auth",
			Name:      "register_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Login, m.Register)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
