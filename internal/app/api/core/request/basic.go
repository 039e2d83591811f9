// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/manqiyou/manqiyou/internal/domain"
)

const CheckPrivateProxy = "PRIVATE"

// Path returns the value of the named path parameter.
// The return value is trimmed of leading and trailing whitespace.
func Path(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

// PathUint returns the named path parameter as unsigned integer.
// An IllegalArgumentError is returned if the parameter is not a positive number.
func PathUint(r *http.Request, name string) (uint64, error) {
	raw := Path(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, domain.IllegalArgument("invalid %s: %q", name, raw)
	}
	return value, nil
}

// Query returns the value of the named query parameter.
// The return value is trimmed of leading and trailing whitespace.
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryInt returns the named query parameter as integer.
// If the parameter is missing or empty, it returns the default value.
// An IllegalArgumentError is returned if the parameter is not a number.
func QueryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := Query(r, name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.IllegalArgument("invalid %s: %q", name, raw)
	}
	return value, nil
}

// QueryUint returns the named query parameter as unsigned integer, zero if it is missing.
func QueryUint(r *http.Request, name string) (uint64, error) {
	raw := Query(r, name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.IllegalArgument("invalid %s: %q", name, raw)
	}
	return value, nil
}

// Page returns the page request from the page and size query parameters.
// The returned page request is validated.
func Page(r *http.Request) (domain.PageRequest, error) {
	page, err := QueryInt(r, "page", 1)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := QueryInt(r, "size", domain.DefaultPageSize)
	if err != nil {
		return domain.PageRequest{}, err
	}

	req := domain.PageRequest{Page: page, Size: size}
	if err := req.Validate(); err != nil {
		return domain.PageRequest{}, err
	}
	return req, nil
}

// Header returns the value of the named header.
// The return value is trimmed of leading and trailing whitespace.
func Header(r *http.Request, name string) string {
	return strings.TrimSpace(r.Header.Get(name))
}

// BearerToken returns the token of a "Authorization: Bearer <token>" header.
// An empty string is returned if the header is missing or uses another scheme.
func BearerToken(r *http.Request) string {
	authHeader := Header(r, "Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, domain.TokenTypeBearer) {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClientIp returns the client IP address.
//
// As the request may come from a proxy, the function checks the
// X-Real-Ip and X-Forwarded-For headers to get the real client IP
// if the request IP matches one of the allowed proxy IPs.
// If the special proxy value CheckPrivateProxy ("PRIVATE") is passed, the function will
// also check the header if the request IP is a private IP address.
func ClientIp(r *http.Request, allowedProxyIp ...string) string {
	ipStr, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	switch {
	case err != nil && strings.Contains(err.Error(), "missing port in address"):
		ipStr = strings.TrimSpace(r.RemoteAddr)
	case err != nil:
		ipStr = ""
	}
	IP := net.ParseIP(ipStr)
	if IP == nil {
		return ""
	}

	isProxiedRequest := false
	if len(allowedProxyIp) > 0 {
		if slices.Contains(allowedProxyIp, IP.String()) {
			isProxiedRequest = true
		}
		if IP.IsPrivate() && slices.Contains(allowedProxyIp, CheckPrivateProxy) {
			isProxiedRequest = true
		}
	}

	if !isProxiedRequest {
		return IP.String()
	}

	realClientIP := r.Header.Get("X-Real-Ip")
	if realClientIP == "" {
		// the first entry of the forwarded chain is the client
		realClientIP, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		realClientIP = strings.TrimSpace(realClientIP)
	}
	if realClientIP == "" {
		return IP.String()
	}

	realIpStr, _, err := net.SplitHostPort(realClientIP)
	if err != nil {
		realIpStr = realClientIP
	}
	realIP := net.ParseIP(realIpStr)
	if realIP == nil {
		return IP.String()
	}
	return realIP.String()
}

// BodyJson decodes the JSON value from the request body into the target.
// The target must be a pointer to a struct or slice.
// Malformed bodies result in an IllegalArgumentError.
// The body reader is closed after reading.
func BodyJson(r *http.Request, target any) error {
	defer func() {
		_ = r.Body.Close()
	}()

	err := json.NewDecoder(r.Body).Decode(target)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return domain.IllegalArgument("request body must not be empty")
	default:
		return domain.IllegalArgument("malformed request body")
	}
}
