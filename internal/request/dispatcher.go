package request

//go:generate $MOCKGEN -source=dispatcher.go -destination=mocks/dispatcher_mock.go

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/oshokin/admin-client/internal/config"
	"github.com/oshokin/admin-client/internal/constants"
	"github.com/oshokin/admin-client/internal/logger"
	http_transport "github.com/oshokin/admin-client/internal/transport/http"
	"github.com/oshokin/admin-client/internal/utils"
	"github.com/oshokin/admin-client/internal/version"
)

// Dispatcher sends requests to the backend and unwraps the response envelope.
type Dispatcher interface {
	// Get sends a GET request to path.
	Get(ctx context.Context, path string) (*Envelope, error)
	// Post sends a POST request to path with body encoded as JSON.
	Post(ctx context.Context, path string, body any) (*Envelope, error)
	// Put sends a PUT request to path with body encoded as JSON.
	Put(ctx context.Context, path string, body any) (*Envelope, error)
	// Delete sends a DELETE request to path with body encoded as JSON.
	Delete(ctx context.Context, path string, body any) (*Envelope, error)
}

// DispatcherImpl implements the Dispatcher interface on top of an http.Client.
type DispatcherImpl struct {
	// baseURL is the endpoint every path is resolved against.
	baseURL string
	// httpClient carries the transport chain, the cookie jar and the overall timeout.
	httpClient *http.Client
	// pending holds the cancellation handles of requests in flight.
	pending *pendingRegistry
	// notifier shows user-facing messages and the forced-logout dialog.
	notifier Notifier
	// session is reset when the user accepts the forced-logout dialog.
	session SessionHandler
	// logoutFlows tracks forced-logout flows still waiting for the user.
	logoutFlows sync.WaitGroup
}

// NewDispatcher creates and returns a new instance of DispatcherImpl.
// The token header is read from tokens on every request.
func NewDispatcher(
	cfg *config.Config,
	tokens http_transport.TokenSource,
	notifier Notifier,
	session SessionHandler,
) (*DispatcherImpl, error) {
	baseURL, err := url.Parse(cfg.BaseAPI)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// The cookie jar makes every request carry the backend's cookies.
	cookies, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	tokenHeader := cfg.TokenHeader
	if tokenHeader == "" {
		tokenHeader = constants.DefaultTokenHeader
	}

	timeout := cfg.ParsedRequestTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	defaultHeaders := http.Header{}
	defaultHeaders.Set("Accept", "application/json, text/plain, */*")

	httpClient := &http.Client{
		Transport: http_transport.NewTokenInjector(
			http_transport.NewHeaderInjector(
				http_transport.NewUserAgentInjector(
					http_transport.NewLogTransport(http.DefaultTransport, cfg.ParsedMaxLogLength, tokenHeader),
					utils.NewProductUserAgentProvider(http_transport.DefaultProduct, version.Short())),
				defaultHeaders),
			tokenHeader,
			tokens),
		Jar:     cookies,
		Timeout: timeout,
	}

	return &DispatcherImpl{
		baseURL:    baseURL.String(),
		httpClient: httpClient,
		pending:    newPendingRegistry(),
		notifier:   notifier,
		session:    session,
	}, nil
}

// Get sends a GET request to path.
func (d *DispatcherImpl) Get(ctx context.Context, path string) (*Envelope, error) {
	return d.do(ctx, http.MethodGet, path, nil)
}

// Post sends a POST request to path with body encoded as JSON.
func (d *DispatcherImpl) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return d.do(ctx, http.MethodPost, path, body)
}

// Put sends a PUT request to path with body encoded as JSON.
func (d *DispatcherImpl) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return d.do(ctx, http.MethodPut, path, body)
}

// Delete sends a DELETE request to path with body encoded as JSON.
func (d *DispatcherImpl) Delete(ctx context.Context, path string, body any) (*Envelope, error) {
	return d.do(ctx, http.MethodDelete, path, body)
}

// Wait blocks until every forced-logout flow has finished.
func (d *DispatcherImpl) Wait() {
	d.logoutFlows.Wait()
}

// Close cancels the requests in flight and waits for the forced-logout flows.
// Requests sent after Close fail with ErrDispatcherClosed and no new flow is started.
func (d *DispatcherImpl) Close() {
	d.pending.close(ErrDispatcherClosed)
	d.Wait()
}

func (d *DispatcherImpl) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	route, err := url.JoinPath(d.baseURL, path)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader = http.NoBody

	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", marshalErr)
		}

		bodyReader = bytes.NewReader(data)
	}

	requestCtx, requestID, release, err := d.pending.register(ctx, pendingKey(path, method))
	if err != nil {
		return nil, err
	}

	defer release()

	requestCtx = logger.WithKV(requestCtx, "request_id", requestID.String())

	request, err := http.NewRequestWithContext(requestCtx, method, route, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		request.Header.Set(constants.ContentTypeHeader, constants.JSONContentType)
	}

	request.Header.Set(constants.RequestIDHeader, requestID.String())

	response, err := d.httpClient.Do(request)
	if err != nil {
		return nil, d.transportFailure(requestCtx, method, path, err)
	}

	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, d.transportFailure(requestCtx, method, path,
			fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode))
	}

	var env Envelope

	decodeErr := json.NewDecoder(response.Body).Decode(&env)

	// A response that lost the race to a newer request or outlived Close is never delivered.
	if cause := registryCancellation(requestCtx); cause != nil {
		logger.Debugf(requestCtx, "%s %s dropped: %v", method, path, cause)

		return nil, cause
	}

	// The body was cut short by the caller's context or the timeout.
	if decodeErr != nil && requestCtx.Err() != nil {
		return nil, d.transportFailure(requestCtx, method, path, decodeErr)
	}

	// A body that is not an envelope carries no success code.
	if decodeErr != nil {
		return nil, d.reject(requestCtx, &APIError{
			Message: fallbackMessage,
			cause:   fmt.Errorf("%w: %w", ErrInvalidEnvelope, decodeErr),
		})
	}

	return d.intercept(requestCtx, &env)
}

// intercept turns a decoded envelope into the caller's result.
func (d *DispatcherImpl) intercept(ctx context.Context, env *Envelope) (*Envelope, error) {
	if env.IsSuccess() {
		return env, nil
	}

	return nil, d.reject(ctx, &APIError{
		Code:    env.Code,
		Message: utils.FirstNonEmpty(env.Message, fallbackMessage),
	})
}

// reject reports an application failure and starts the forced-logout flow when the session is gone.
func (d *DispatcherImpl) reject(ctx context.Context, apiErr *APIError) error {
	logger.DebugKV(ctx, "Backend reported a failure",
		"code", apiErr.Code, "message", apiErr.Message, "cause", apiErr.cause)

	d.notifyError(ctx, apiErr.Message)

	if apiErr.IsForcedLogout() {
		d.startForcedLogout(ctx, apiErr.Code)
	}

	return apiErr
}

// transportFailure reports a failed round trip.
// Supersession and Close are expected and stay silent, every other failure is shown to the user.
func (d *DispatcherImpl) transportFailure(ctx context.Context, method, path string, err error) error {
	if cause := registryCancellation(ctx); cause != nil {
		logger.Debugf(ctx, "%s %s canceled: %v", method, path, cause)

		return cause
	}

	d.notifyError(ctx, err.Error())

	return err
}

func (d *DispatcherImpl) notifyError(ctx context.Context, text string) {
	d.notifier.Message(ctx, Message{
		Text:     text,
		Type:     MessageTypeError,
		Duration: MessageDuration,
	})
}

// startForcedLogout asks the user to log in again without blocking the caller.
func (d *DispatcherImpl) startForcedLogout(ctx context.Context, code int) {
	// The dialog outlives the request that triggered it.
	ctx = context.WithoutCancel(ctx)

	// Close waits only for flows registered before it.
	if !d.pending.whileOpen(func() { d.logoutFlows.Add(1) }) {
		logger.Debugf(ctx, "Dispatcher closed, forced logout skipped (code %d)", code)

		return
	}

	go func() {
		defer d.logoutFlows.Done()

		d.runForcedLogout(ctx, code)
	}()
}

func (d *DispatcherImpl) runForcedLogout(ctx context.Context, code int) {
	accepted, err := d.notifier.Confirm(ctx, forcedLogoutDialog)
	if err != nil {
		logger.Warnf(ctx, "Forced logout dialog failed (code %d): %v", code, err)

		return
	}

	if !accepted {
		logger.Debugf(ctx, "Forced logout declined (code %d)", code)

		return
	}

	if err = d.session.ResetToken(ctx); err != nil {
		logger.Errorf(ctx, "Failed to reset session token: %v", err)

		return
	}

	if err = d.session.Reload(ctx); err != nil {
		logger.Errorf(ctx, "Failed to reload session: %v", err)
	}
}

// registryCancellation returns the cause of ctx if the registry canceled it.
func registryCancellation(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrSuperseded) || errors.Is(cause, ErrDispatcherClosed) {
		return cause
	}

	return nil
}
