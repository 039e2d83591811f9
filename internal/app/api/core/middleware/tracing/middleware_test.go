package tracing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const upstreamHeaderValue = "upstream-id"

func serve(m *Middleware, req *http.Request) (reqId string, rr *httptest.ResponseRecorder) {
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId = RequestId(r.Context())
	}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return reqId, rr
}

func TestMiddleware_Handler_WithUpstreamHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Upstream-Id", upstreamHeaderValue)

	reqId, rr := serve(New(WithUpstreamHeader("X-Upstream-Id")), req)

	assert.Equal(t, upstreamHeaderValue, reqId)
	assert.Equal(t, upstreamHeaderValue, rr.Header().Get("X-Request-Id"))
}

func TestMiddleware_Handler_UpstreamTooLong(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("a", 100))

	reqId, _ := serve(New(WithIdGenerator(func() string { return "generated" })), req)

	assert.Equal(t, "generated", reqId)
}

func TestMiddleware_Handler_GenerateNewId(t *testing.T) {
	reqId, rr := serve(New(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, reqId, 36)
	assert.Equal(t, reqId, rr.Header().Get("X-Request-Id"))
}

func TestMiddleware_Handler_NoIdGenerated(t *testing.T) {
	reqId, rr := serve(New(WithIdGenerator(nil)), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, reqId)
	assert.Empty(t, rr.Header().Get("X-Request-Id"))
}

func TestMiddleware_Handler_NoIdHeaderSet(t *testing.T) {
	reqId, rr := serve(New(WithHeaderIdentifier("")), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, reqId)
	assert.Empty(t, rr.Header().Get("X-Request-Id"))
}
