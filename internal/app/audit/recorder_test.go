package audit

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	evbus "github.com/vardius/message-bus"

	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type fakeMetrics struct {
	mux           sync.Mutex
	orders        int
	logins        map[domain.LoginMethod]int
	registrations int
}

func (m *fakeMetrics) IncOrdersCreated() {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.orders++
}

func (m *fakeMetrics) IncLogins(method domain.LoginMethod) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.logins == nil {
		m.logins = make(map[domain.LoginMethod]int)
	}
	m.logins[method]++
}

func (m *fakeMetrics) IncRegistrations() {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.registrations++
}

func (m *fakeMetrics) done() bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.orders == 1 && m.registrations == 1 && m.logins[domain.LoginMethodPhone] == 1
}

type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.String()
}

func TestRecorder_ForwardsEvents(t *testing.T) {
	bus := evbus.New(10)
	out := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(out, nil))

	metrics := &fakeMetrics{}

	_, err := NewAuditRecorder(bus, logger, metrics)
	require.NoError(t, err)

	bus.Publish(app.TopicAuthLogin, domain.LoginEvent{UserId: "user-1", Method: domain.LoginMethodPhone})
	bus.Publish(app.TopicUserRegistered, domain.User{Id: "user-1"})
	bus.Publish(app.TopicOrderCreated, domain.Order{OrderNo: "MQY1", UserId: "user-1"})
	bus.Publish(app.TopicOrderCancelled, domain.Order{OrderNo: "MQY1", UserId: "user-1"})
	bus.Publish(app.TopicPointsChanged, domain.PointsRecord{UserId: "user-1", Amount: 10})

	assert.Eventually(t, func() bool {
		return metrics.done() && bytes.Count([]byte(out.String()), []byte("\n")) == 5
	}, time.Second, 10*time.Millisecond)

	assert.Contains(t, out.String(), "msg=\"order cancelled\"")
	assert.Contains(t, out.String(), "msg=\"points changed\"")
}

func TestRecorder_WithoutMetrics(t *testing.T) {
	bus := evbus.New(10)
	out := &syncBuffer{}

	_, err := NewAuditRecorder(bus, slog.New(slog.NewTextHandler(out, nil)), nil)
	require.NoError(t, err)

	bus.Publish(app.TopicOrderCreated, domain.Order{OrderNo: "MQY1"})

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("order created"))
	}, time.Second, 10*time.Millisecond)
}
