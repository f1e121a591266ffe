package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// pathstorePrefix is the key namespace for extraction records.
const pathstorePrefix = "mdagest/documents"

// PathstoreSink stores records in a pathstore HTTP KV service at
// mdagest/documents/{doc_id}.
type PathstoreSink struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPathstoreSink(baseURL, apiKey string) *PathstoreSink {
	return &PathstoreSink{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// nodeRequest is the body for PUT /kv/{key}.
type nodeRequest struct {
	Value      any     `json:"value"`
	MemoryType string  `json:"memory_type,omitempty"`
	Salience   float64 `json:"salience,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// nodeResponse is a node from GET /kv/{key} or a prefix scan.
type nodeResponse struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

func (s *PathstoreSink) Put(ctx context.Context, rec Record) error {
	key := pathstorePrefix + "/" + rec.DocID
	body, err := json.Marshal(nodeRequest{
		Value:      rec,
		MemoryType: "semantic",
		Salience:   0.5,
		Source:     "mdagest:" + rec.DocID,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	req, err := s.newRequest(ctx, http.MethodPut, s.baseURL+"/kv/"+key, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("put record "+key, resp)
	}
	return nil
}

func (s *PathstoreSink) Get(ctx context.Context, docID string) (*Record, error) {
	key := pathstorePrefix + "/" + docID
	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+"/kv/"+key, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get record "+key, resp)
	}

	var node nodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(node.Value, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return &rec, nil
}

// List does a prefix scan under mdagest/documents.
func (s *PathstoreSink) List(ctx context.Context, limit int) ([]Record, error) {
	u := s.baseURL + "/kv/" + pathstorePrefix + "/*"
	if limit > 0 {
		u += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}
	req, err := s.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list records", resp)
	}

	var result struct {
		Nodes []nodeResponse `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode nodes: %w", err)
	}
	recs := make([]Record, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		var rec Record
		if err := json.Unmarshal(n.Value, &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", n.Key, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *PathstoreSink) Delete(ctx context.Context, docID string) error {
	key := pathstorePrefix + "/" + docID
	req, err := s.newRequest(ctx, http.MethodDelete, s.baseURL+"/kv/"+key, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return statusError("delete record "+key, resp)
	}
	return nil
}

// Close releases idle connections.
func (s *PathstoreSink) Close() {
	s.httpClient.CloseIdleConnections()
}

func (s *PathstoreSink) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	return req, nil
}

// statusError turns an unexpected response into an error. Rate limiting and
// server errors are retryable.
func statusError(op string, resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("%s: %w", op, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		})
	}
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, string(respBody))
}
