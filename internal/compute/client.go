// Package compute provides the HTTP client for the external AL-Engine
// service and a clearly-tagged simulation fallback for when the engine
// is unreachable.
package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
)

type (
	// Metrics records per-operation outcomes for engine calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

var (
	// ErrUnavailable marks an unreachable or failing engine: refused
	// connections, timeouts and 5xx responses. Callers switch to the
	// simulation fallback or retry later instead of crashing.
	ErrUnavailable = errors.New("al-engine unavailable")
	// ErrPoolExhausted marks an engine with no unlabeled samples left; it
	// is an end condition, not a failure.
	ErrPoolExhausted = errors.New("unlabeled pool exhausted")
)

// Config carries endpoints and timeouts for the AL-Engine client.
type Config struct {
	BaseURL        string
	FileServerURL  string
	HealthTimeout  time.Duration
	RequestTimeout time.Duration
}

// Client talks to the AL-Engine HTTP API. Iteration calls use a long
// timeout (the engine trains synchronously); health probes a short one.
type Client struct {
	base       string
	fileServer string
	http       *http.Client
	healthHTTP *http.Client
	metrics    Metrics
	logger     *zap.Logger
}

// NewClient builds an AL-Engine client.
func NewClient(cfg Config, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("al-engine base url is required")
	}
	if metrics == nil {
		return nil, errors.New("compute metrics is required")
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = defaultHealthTimeout
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Client{
		base:       cfg.BaseURL,
		fileServer: cfg.FileServerURL,
		http:       &http.Client{Timeout: requestTimeout},
		healthHTTP: &http.Client{Timeout: healthTimeout},
		metrics:    metrics,
		logger:     logger,
	}, nil
}

const (
	defaultHealthTimeout  = 3 * time.Second
	defaultRequestTimeout = 5 * time.Minute
)

// Health probes the engine's liveness endpoint.
func (c *Client) Health(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("health", err, started)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.healthHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

type startIterationRequest struct {
	Iteration      uint64         `json:"iteration"`
	ProjectID      string         `json:"project_id"`
	ConfigOverride map[string]any `json:"config_override,omitempty"`
}

type startIterationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Result  struct {
		Outputs struct {
			QuerySamplesPath string `json:"query_samples"`
		} `json:"outputs"`
	} `json:"result"`
	QuerySamples json.RawMessage `json:"query_samples,omitempty"`
}

// StartIteration asks the engine to train on currently labeled data and
// select the next query batch. Returned samples always carry
// original_index; feature payloads are optional (the engine may return
// bare indices).
func (c *Client) StartIteration(ctx context.Context, projectID string, round uint64, configOverride map[string]any) (samples []model.Sample, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("start_iteration", err, started)
	}()

	var out startIterationResponse
	if err = c.postJSON(ctx, "/start_iteration", startIterationRequest{
		Iteration:      round,
		ProjectID:      projectID,
		ConfigOverride: configOverride,
	}, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		if isPoolExhausted(out.Error) {
			return nil, ErrPoolExhausted
		}
		return nil, fmt.Errorf("start_iteration failed: %s", out.Error)
	}

	raw, err := c.fetchQuerySamples(ctx, projectID, round, out)
	if err != nil {
		return nil, err
	}
	samples, err = parseSamples(raw, round)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrPoolExhausted
	}
	return samples, nil
}

// fetchQuerySamples resolves the sample payload for a completed
// iteration: inline response first, then the local file-serving helper,
// then the engine's results endpoint.
func (c *Client) fetchQuerySamples(ctx context.Context, projectID string, round uint64, out startIterationResponse) (json.RawMessage, error) {
	if len(out.QuerySamples) > 0 {
		return out.QuerySamples, nil
	}

	if path := out.Result.Outputs.QuerySamplesPath; path != "" && c.fileServer != "" {
		raw, err := c.readFile(ctx, path)
		if err == nil {
			return raw, nil
		}
		c.logger.Warn("file server read failed, falling back to results endpoint",
			zap.String("path", path), zap.Error(err))
	}

	return c.iterationResults(ctx, projectID, round)
}

type resultsResponse struct {
	QuerySamples json.RawMessage `json:"query_samples"`
}

func (c *Client) iterationResults(ctx context.Context, projectID string, round uint64) (raw json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("results", err, started)
	}()

	u := fmt.Sprintf("%s/results/%d?project_id=%s", c.base, round, url.QueryEscape(projectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build results request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch iteration results: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: results returned %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results returned %d", resp.StatusCode)
	}
	var out resultsResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if len(out.QuerySamples) == 0 {
		return nil, errors.New("results carry no query samples")
	}
	return out.QuerySamples, nil
}

// readFile fetches a generated file through the local file-serving
// helper used when the engine writes outputs to disk.
func (c *Client) readFile(ctx context.Context, path string) (json.RawMessage, error) {
	u := c.fileServer + "/read-file?path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build read-file request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("read-file returned %d for %s", resp.StatusCode, path)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	return body, nil
}

type submitLabelsRequest struct {
	Iteration      uint64                `json:"iteration"`
	ProjectID      string                `json:"project_id"`
	LabeledSamples []model.LabeledSample `json:"labeled_samples"`
}

type submitLabelsResponse struct {
	Success            bool   `json:"success"`
	Error              string `json:"error,omitempty"`
	SamplesProcessed   int    `json:"samples_processed"`
	NextIterationReady bool   `json:"next_iteration_ready"`
}

// SubmitLabels pushes finalized labels back for the next training pass.
// Returns whether the engine considers the next iteration ready.
func (c *Client) SubmitLabels(ctx context.Context, projectID string, round uint64, labeled []model.LabeledSample) (ready bool, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("submit_labels", err, started)
	}()

	if len(labeled) == 0 {
		return false, errors.New("no labeled samples to submit")
	}
	var out submitLabelsResponse
	if err = c.postJSON(ctx, "/submit_labels", submitLabelsRequest{
		Iteration:      round,
		ProjectID:      projectID,
		LabeledSamples: labeled,
	}, &out); err != nil {
		return false, err
	}
	if !out.Success {
		return false, fmt.Errorf("submit_labels failed: %s", out.Error)
	}
	return out.NextIterationReady, nil
}

type finalTrainingRequest struct {
	Iteration uint64 `json:"iteration"`
	ProjectID string `json:"project_id"`
}

// FinalTraining triggers the engine's terminal training pass on all
// labeled data, without querying new samples. Invoked best-effort when
// a project ends.
func (c *Client) FinalTraining(ctx context.Context, projectID string, round uint64) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("final_training", err, started)
	}()

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	if err = c.postJSON(ctx, "/final_training", finalTrainingRequest{
		Iteration: round,
		ProjectID: projectID,
	}, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("final_training failed: %s", out.Error)
	}
	return nil
}

// PerformanceHistory returns the engine's model metrics, passed through
// untouched for the UI.
func (c *Client) PerformanceHistory(ctx context.Context, projectID string) (raw json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("performance_history", err, started)
	}()

	u := c.base + "/performance_history?project_id=" + url.QueryEscape(projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build performance request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch performance history: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("performance_history returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read performance body: %w", err)
	}
	return body, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response (%d): %w", path, resp.StatusCode, err)
	}
	return nil
}

// parseSamples decodes the engine's query-sample payload. Elements may
// be bare indices, {features: [...], original_index: n} objects, or
// CSV-derived records with named columns plus original_index.
func parseSamples(raw json.RawMessage, round uint64) ([]model.Sample, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("decode query samples: %w", err)
	}

	samples := make([]model.Sample, 0, len(elements))
	for i, el := range elements {
		var idx int
		if err := json.Unmarshal(el, &idx); err == nil {
			samples = append(samples, model.Sample{
				SampleID:      uuid.NewString(),
				OriginalIndex: idx,
				Source:        model.SourceALEngine,
				Round:         round,
			})
			continue
		}

		var record map[string]any
		if err := json.Unmarshal(el, &record); err != nil {
			return nil, fmt.Errorf("decode query sample %d: %w", i, err)
		}
		origRaw, ok := record["original_index"]
		if !ok {
			return nil, fmt.Errorf("query sample %d missing original_index", i)
		}
		orig, ok := origRaw.(float64)
		if !ok {
			return nil, fmt.Errorf("query sample %d has non-numeric original_index %v", i, origRaw)
		}
		delete(record, "original_index")

		samples = append(samples, model.Sample{
			SampleID:      uuid.NewString(),
			OriginalIndex: int(orig),
			Features:      record,
			Source:        model.SourceALEngine,
			Round:         round,
		})
	}
	return samples, nil
}

func isPoolExhausted(errMsg string) bool {
	if errMsg == "" {
		return false
	}
	lower := strings.ToLower(errMsg)
	return strings.Contains(lower, "no unlabeled") || strings.Contains(lower, "exhausted")
}
