package audit

import (
	"github.com/manqiyou/manqiyou/internal/domain"
)

// MetricsRecorder receives the counters that are derived from bus events.
type MetricsRecorder interface {
	IncOrdersCreated()
	IncLogins(method domain.LoginMethod)
	IncRegistrations()
}

type EventBus interface {
	// Subscribe registers fn as handler of the given topic.
	Subscribe(topic string, fn any) error
}
