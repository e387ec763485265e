package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

var (
	DeletionSteps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nilgpt_account_deletion_steps_total",
		Help: "nilDB deletion steps by collection and outcome.",
	}, []string{"collection", "outcome"})

	ProviderDeletes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nilgpt_provider_user_deletes_total",
		Help: "Identity provider user deletions by provider and outcome.",
	}, []string{"provider", "outcome"})

	UsersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nilgpt_user_records_total",
		Help: "First-access user record checks by result (created, existing, failed).",
	}, []string{"result"})

	RecordWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nilgpt_record_writes_total",
		Help: "Chat and message record writes by kind and outcome.",
	}, []string{"kind", "outcome"})
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(DeletionSteps, ProviderDeletes, UsersCreated, RecordWrites)
	})
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeOK
}
