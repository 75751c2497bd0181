package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/oshokin/admin-client/internal/logger"
	"github.com/oshokin/admin-client/internal/utils"
)

// DefaultMaxLogLength is used when a LogTransport is created without a limit.
const DefaultMaxLogLength = 1 * 1024 * 1024

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// It wraps another http.RoundTripper and logs debug information for each request/response cycle.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
	// redactedHeaders are header names whose values never reach the log.
	redactedHeaders []string
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
// Values of redactedHeaders are masked in the dumps.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64, redactedHeaders ...string) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:            next,
		maxLogLength:    maxLogLength,
		redactedHeaders: redactedHeaders,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip logging if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()

	requestDump := t.dumpRequest(req)

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.String(), err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.Debugf(ctx, "%s %s [%d] %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, duration, requestDump, responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequest(req, true)
	if err != nil {
		return err.Error()
	}

	return utils.Truncate(t.redact(dump), t.maxLogLength)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Check the Content-Type header to determine if the response body should be dumped.
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return utils.Truncate(t.redact(dump), t.maxLogLength)
}

// redact masks the values of sensitive header lines in a wire dump.
func (t *LogTransport) redact(dump []byte) []byte {
	if len(t.redactedHeaders) == 0 {
		return dump
	}

	lines := strings.Split(string(dump), "\r\n")

	for i, line := range lines {
		// Headers end at the first empty line.
		if line == "" {
			break
		}

		name, _, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		for _, header := range t.redactedHeaders {
			if strings.EqualFold(strings.TrimSpace(name), header) {
				lines[i] = name + ": " + redactedValue

				break
			}
		}
	}

	return []byte(strings.Join(lines, "\r\n"))
}
