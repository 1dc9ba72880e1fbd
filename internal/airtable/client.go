package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	pageSize     = 100
	maxErrorBody = 64 << 10

	opList   = "list"
	opInsert = "insert"
)

var _ ports.RecordStore = (*Client)(nil)

// Client — REST-клиент табличного провайдера. Повторов нет: ошибка возвращается вызывающему.
type Client struct {
	baseURL string
	baseID  string
	apiKey  string
	http    *http.Client
	log     ports.Logger
}

// ClientOption — настройка клиента.
type ClientOption func(*Client)

// WithHTTPClient — подмена HTTP-клиента (тесты, собственный транспорт).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient — конструктор; без ключа или базы возвращает ErrNotConfigured.
func NewClient(cfg *Config, log ports.Logger, opts ...ClientOption) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: baseURL,
		baseID:  cfg.BaseID,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type listResponse struct {
	Records []domain.Record `json:"records"`
	Offset  string          `json:"offset,omitempty"`
}

type createRequest struct {
	Records []createRecord `json:"records"`
}

type createRecord struct {
	Fields any `json:"fields"`
}

// GetRecords — читает все страницы таблицы; filter == nil означает без фильтра.
func (c *Client) GetRecords(ctx context.Context, table string, filter *domain.Filter) ([]domain.Record, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(table, opList).Observe(time.Since(start).Seconds())
	}()

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(pageSize))
	if filter != nil {
		query.Set("filterByFormula", EqualsFormula(filter.Field, filter.Value))
	}

	var (
		records []domain.Record
		pages   int
	)
	for {
		var page listResponse
		if err := c.do(ctx, http.MethodGet, table, opList, query, nil, &page); err != nil {
			c.log.Errorf(ctx, "airtable list failed table=%s page=%d err=%v", table, pages+1, err)
			return nil, err
		}
		pages++
		records = append(records, page.Records...)
		if page.Offset == "" {
			break
		}
		query.Set("offset", page.Offset)
	}

	c.log.Infof(ctx, "airtable fetched table=%s records=%d pages=%d took=%s", table, len(records), pages, time.Since(start))
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// InsertRecord — создаёт одну запись; поля сериализуются как есть.
func (c *Client) InsertRecord(ctx context.Context, table string, fields any) (*domain.Record, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(table, opInsert).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(createRequest{Records: []createRecord{{Fields: fields}}})
	if err != nil {
		return nil, fmt.Errorf("airtable: encode fields: %w", err)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodPost, table, opInsert, nil, body, &resp); err != nil {
		c.log.Errorf(ctx, "airtable insert failed table=%s err=%v", table, err)
		return nil, err
	}
	if len(resp.Records) == 0 {
		c.log.Errorf(ctx, "airtable insert returned no records table=%s", table)
		return nil, ErrNoRecordCreated
	}

	rec := resp.Records[0]
	c.log.Infof(ctx, "airtable inserted table=%s id=%s", table, rec.ID)
	return &rec, nil
}

// do — выполняет запрос, считает метрики и декодирует ответ в out.
func (c *Client) do(ctx context.Context, method, table, op string, query url.Values, body []byte, out any) error {
	endpoint := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("airtable: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(table, op, "transport_error").Inc()
		return fmt.Errorf("airtable: %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequests.WithLabelValues(table, op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("airtable: decode response: %w", err)
	}
	return nil
}
