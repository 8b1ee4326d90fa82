package testdrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
)

type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// checkHealth verifies the service answers on /healthz.
func (c *client) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

type submitRequest struct {
	SessionID string            `json:"session_id"`
	Samples   []model.RawSample `json:"samples"`
}

type submitResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// submit posts one session and returns the acknowledged id.
func (c *client) submit(ctx context.Context, sessionID string, samples []model.RawSample) (submitResponse, error) {
	body, err := json.Marshal(submitRequest{SessionID: sessionID, Samples: samples})
	if err != nil {
		return submitResponse{}, fmt.Errorf("marshaling session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return submitResponse{}, fmt.Errorf("building submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return submitResponse{}, fmt.Errorf("submitting session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return submitResponse{}, fmt.Errorf("submit returned %d: %s", resp.StatusCode, data)
	}

	var ack submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return submitResponse{}, fmt.Errorf("decoding ack: %w", err)
	}
	return ack, nil
}

// fetchResult polls GET /sessions/{id} until the analysis completes.
func (c *client) fetchResult(ctx context.Context, id string, interval time.Duration, attempts int) (types.SessionResult, error) {
	var last types.SessionResult
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sessions/"+id, nil)
		if err != nil {
			return types.SessionResult{}, fmt.Errorf("building result request: %w", err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return types.SessionResult{}, fmt.Errorf("fetching result: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(&last)
			resp.Body.Close()
			if err != nil {
				return types.SessionResult{}, fmt.Errorf("decoding result: %w", err)
			}
			if last.Status != types.StatusPending {
				return last, nil
			}
		} else {
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return types.SessionResult{}, fmt.Errorf("polling canceled: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
	return last, fmt.Errorf("session %s still %s after %d polls", id, last.Status, attempts)
}
