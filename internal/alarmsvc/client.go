package alarmsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kuntur-detector/case-service/internal/model"
)

// Client tells the Kuntur alarm service that a case was filed for one of its
// alerts (best-effort, never blocks the API). The alarm id itself is not
// validated against the alarm service; the link is informational.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client. With an empty baseURL the calls are no-ops.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// LinkCasePayload is the body of POST /api/alertas/{id_alarma}/caso.
type LinkCasePayload struct {
	CaseID    string `json:"id_caso"`
	AlarmID   string `json:"id_alarma"`
	Status    string `json:"estado"`
	CreatedAt string `json:"fecha_creacion"`
}

// NotifyCase posts the case-to-alarm link. Call in a goroutine after Create.
func (c *Client) NotifyCase(ctx context.Context, cs *model.Case) {
	if c.baseURL == "" {
		return
	}
	payload := LinkCasePayload{
		CaseID:    cs.CaseID,
		AlarmID:   cs.AlarmID,
		Status:    string(cs.Status),
		CreatedAt: cs.CreatedAt.Format(time.RFC3339Nano),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("alarmsvc: marshal: %v", err)
		return
	}
	url := c.baseURL + "/api/alertas/" + cs.AlarmID + "/caso"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("alarmsvc: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("alarmsvc: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("alarmsvc: status %d for case %s", resp.StatusCode, cs.CaseID)
		return
	}
}

// NotifyCaseAsync runs NotifyCase in its own goroutine with a fresh timeout,
// so the link survives request cancellation.
func (c *Client) NotifyCaseAsync(cs *model.Case) {
	if c.baseURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.NotifyCase(ctx, cs)
	}()
}
