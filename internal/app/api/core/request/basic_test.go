package request

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manqiyou/manqiyou/internal/domain"
)

func TestPath(t *testing.T) {
	r := &http.Request{URL: &url.URL{Path: "/test/sample"}}
	r.SetPathValue("first", " test ")
	assert.Equal(t, "test", Path(r, "first"))
}

func TestPathUint(t *testing.T) {
	r := &http.Request{URL: &url.URL{Path: "/routes/12"}}
	r.SetPathValue("id", "12")
	id, err := PathUint(r, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		r.SetPathValue("id", raw)
		_, err = PathUint(r, "id")
		var illegalErr *domain.IllegalArgumentError
		assert.ErrorAs(t, err, &illegalErr, raw)
	}
}

func TestQuery(t *testing.T) {
	r := &http.Request{URL: &url.URL{RawQuery: "name=value"}}
	assert.Equal(t, "value", Query(r, "name"))
}

func TestQueryInt(t *testing.T) {
	r := &http.Request{URL: &url.URL{RawQuery: "limit=7&bad=x&empty="}}

	v, err := QueryInt(r, "limit", 4)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = QueryInt(r, "missing", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = QueryInt(r, "empty", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = QueryInt(r, "bad", 4)
	assert.EqualError(t, err, `invalid bad: "x"`)
}

func TestQueryUint(t *testing.T) {
	r := &http.Request{URL: &url.URL{RawQuery: "categoryId=3&bad=-3"}}

	v, err := QueryUint(r, "categoryId")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	v, err = QueryUint(r, "missing")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = QueryUint(r, "bad")
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	r := &http.Request{URL: &url.URL{RawQuery: ""}}
	page, err := Page(r)
	require.NoError(t, err)
	assert.Equal(t, domain.PageRequest{Page: 1, Size: domain.DefaultPageSize}, page)

	r = &http.Request{URL: &url.URL{RawQuery: "page=3&size=20"}}
	page, err = Page(r)
	require.NoError(t, err)
	assert.Equal(t, domain.PageRequest{Page: 3, Size: 20}, page)

	r = &http.Request{URL: &url.URL{RawQuery: "page=0"}}
	_, err = Page(r)
	var illegalErr *domain.IllegalArgumentError
	assert.ErrorAs(t, err, &illegalErr)

	r = &http.Request{URL: &url.URL{RawQuery: "size=1000"}}
	_, err = Page(r)
	assert.ErrorAs(t, err, &illegalErr)
}

func TestHeader(t *testing.T) {
	r := &http.Request{Header: http.Header{"X-Test": []string{" value "}}}
	assert.Equal(t, "value", Header(r, "X-Test"))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", "abc"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(r), tt.header)
	}
}

func TestClientIp(t *testing.T) {
	r := &http.Request{RemoteAddr: "1.1.1.1:1234", Header: http.Header{}}
	assert.Equal(t, "1.1.1.1", ClientIp(r))
}

func TestClientIp_invalid(t *testing.T) {
	r := &http.Request{RemoteAddr: "invalid", Header: http.Header{}}
	assert.Equal(t, "", ClientIp(r))
}

func TestClientIp_ignore_header(t *testing.T) {
	r := &http.Request{RemoteAddr: "1.1.1.1:1234", Header: http.Header{"X-Real-Ip": []string{"2.2.2.2"}}}
	assert.Equal(t, "1.1.1.1", ClientIp(r))
}

func TestClientIp_header(t *testing.T) {
	r := &http.Request{RemoteAddr: "1.1.1.1:1234", Header: http.Header{"X-Real-Ip": []string{"2.2.2.2"}}}
	assert.Equal(t, "2.2.2.2", ClientIp(r, "1.1.1.1"))

	r = &http.Request{
		RemoteAddr: "10.0.0.1:1234",
		Header:     http.Header{"X-Forwarded-For": []string{"3.3.3.3, 10.0.0.2"}},
	}
	assert.Equal(t, "3.3.3.3", ClientIp(r, CheckPrivateProxy))
}

func TestClientIp_header_invalid(t *testing.T) {
	r := &http.Request{RemoteAddr: "1.1.1.1:1234", Header: http.Header{"X-Real-Ip": []string{"garbage"}}}
	assert.Equal(t, "1.1.1.1", ClientIp(r, "1.1.1.1"))
}

func TestBodyJson(t *testing.T) {
	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	r := &http.Request{Body: io.NopCloser(strings.NewReader(`{"name": "test", "value": 123}`))}
	var result TestStruct
	require.NoError(t, BodyJson(r, &result))
	assert.Equal(t, TestStruct{Name: "test", Value: 123}, result)

	r = &http.Request{Body: io.NopCloser(strings.NewReader(`{"name":`))}
	assert.EqualError(t, BodyJson(r, &result), "malformed request body")

	r = &http.Request{Body: io.NopCloser(strings.NewReader(``))}
	assert.EqualError(t, BodyJson(r, &result), "request body must not be empty")
}
