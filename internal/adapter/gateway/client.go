package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 4 << 10

// Options configures HTTPClient.
type Options struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// HTTPClient opens payment sessions through the gateway's orders API.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

type createRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewHTTPClient validates options and builds the client.
func NewHTTPClient(opts Options, tracer trace.Tracer, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if tracer == nil {
		tracer = otel.Tracer("github.com/devxankit/Electrici-toys/internal/adapter/gateway")
	}
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     opts.KeyID,
		keySecret: opts.KeySecret,
		timeout:   opts.Timeout,
		tracer:    tracer,
		logger:    logger,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// CreateSession asks the gateway for a payment order worth req.AmountMinor.
// Transport failures, timeouts, 429 and 5xx are reported as
// ErrGatewayUnavailable; any other non-success status is ErrGatewayDeclined.
func (c *HTTPClient) CreateSession(ctx context.Context, req model.SessionRequest) (*model.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "gateway.create_session", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	session, err := c.createSession(ctx, span, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("gateway.session_id", session.ID))
	return session, nil
}

func (c *HTTPClient) createSession(ctx context.Context, span trace.Span, req model.SessionRequest) (*model.PaymentSession, error) {
	body, err := json.Marshal(createRequest{Amount: req.AmountMinor, Currency: req.Currency, Receipt: req.Receipt})
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.keyID != "" {
		httpReq.SetBasicAuth(c.keyID, c.keySecret)
	}

	span.SetAttributes(
		attribute.String("http.url", endpoint.String()),
		attribute.String("http.method", http.MethodPost),
		attribute.Int64("gateway.amount_minor", req.AmountMinor),
		attribute.String("gateway.currency", req.Currency),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: no response within %s", domainErrors.ErrGatewayUnavailable, c.timeout)
		}
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "gateway responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var data createResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", domainErrors.ErrGatewayUnavailable, err)
		}
		if strings.TrimSpace(data.ID) == "" {
			return nil, fmt.Errorf("%w: response carries no session id", domainErrors.ErrGatewayUnavailable)
		}
		return &model.PaymentSession{ID: data.ID, Status: data.Status, Amount: data.Amount}, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "gateway unavailable", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	default:
		reason := declineReason(resp)
		c.logger.WarnContext(ctx, "gateway declined session",
			slog.Int("status", resp.StatusCode),
			slog.String("reason", reason),
		)
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrGatewayDeclined, reason)
	}
}

func declineReason(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var data errorResponse
	if err := json.Unmarshal(body, &data); err == nil && data.Error.Description != "" {
		return data.Error.Description
	}
	return resp.Status
}
