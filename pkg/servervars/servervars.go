package servervars

import (
	"net"
	"net/http"
	"strings"
	"time"
)

// Vars is a request-metadata mapping.
type Vars map[string]any

// HeaderKey converts a header name to its mapping key.
func HeaderKey(name string) string {
	return "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// FromRequest builds the mapping for r using the current time.
func FromRequest(r *http.Request) Vars {
	return FromRequestAt(r, time.Now())
}

// FromRequestAt builds the mapping for r with an explicit request time.
func FromRequestAt(r *http.Request, now time.Time) Vars {
	v := Vars{
		"REQUEST_METHOD":     r.Method,
		"REQUEST_URI":        r.URL.RequestURI(),
		"SCRIPT_NAME":        r.URL.Path,
		"QUERY_STRING":       r.URL.RawQuery,
		"SERVER_PROTOCOL":    r.Proto,
		"GATEWAY_INTERFACE":  "CGI/1.1",
		"REQUEST_TIME":       now.Unix(),
		"REQUEST_TIME_FLOAT": float64(now.UnixNano()) / float64(time.Second),
	}

	host, port := splitHostPort(r.Host)
	v["SERVER_NAME"] = host
	if port != "" {
		v["SERVER_PORT"] = port
	} else if r.TLS != nil {
		v["SERVER_PORT"] = "443"
	} else {
		v["SERVER_PORT"] = "80"
	}

	if addr, rport := splitHostPort(r.RemoteAddr); addr != "" {
		v["REMOTE_ADDR"] = addr
		if rport != "" {
			v["REMOTE_PORT"] = rport
		}
	}

	if r.Host != "" {
		v["HTTP_HOST"] = r.Host
	}
	for name, values := range r.Header {
		v[HeaderKey(name)] = strings.Join(values, ", ")
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		v["CONTENT_TYPE"] = ct
	}
	if r.ContentLength > 0 {
		v["CONTENT_LENGTH"] = r.ContentLength
	}

	if r.TLS != nil {
		v["HTTPS"] = "on"
	}

	v["argv"] = argv(r.URL.RawQuery)
	v["argc"] = len(v["argv"].([]string))

	return v
}

// String returns the value under key when it is a string.
func (v Vars) String(key string) string {
	s, _ := v[key].(string)
	return s
}

func splitHostPort(hostport string) (string, string) {
	if hostport == "" {
		return "", ""
	}
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport, ""
	}
	return host, port
}

// argv splits the raw query on '+' like CGI runtimes do for non-form queries.
func argv(rawQuery string) []string {
	if rawQuery == "" {
		return []string{}
	}
	return strings.Split(rawQuery, "+")
}
