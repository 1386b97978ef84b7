package facerec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Client is the contract for the external face-verification service. The
// core only cares about one thing: does the captured frame match the claimed
// employee.
type Client interface {
	VerifyFace(ctx context.Context, employeeID string, image io.Reader, filename string) (bool, error)
}

// HTTPClient calls the face-recognition microservice over HTTP. A circuit
// breaker protects the service from being hammered while it is unhealthy;
// when the breaker is open, verification fails fast and no record is touched.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	settings := gobreaker.Settings{
		Name:    "face-recognition",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

type verifyResponse struct {
	Success  bool    `json:"success"`
	Verified bool    `json:"verified"`
	Distance float64 `json:"distance"`
	Error    string  `json:"error"`
}

// VerifyFace posts the captured frame and the claimed employee ID to the
// verification endpoint. A no-match and an unregistered face both come back
// as (false, nil): they are verification outcomes, not transport failures.
func (c *HTTPClient) VerifyFace(ctx context.Context, employeeID string, image io.Reader, filename string) (bool, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.verify(ctx, employeeID, image, filename)
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (c *HTTPClient) verify(ctx context.Context, employeeID string, image io.Reader, filename string) (bool, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("employee_id", employeeID); err != nil {
		return false, fmt.Errorf("failed to write employee_id field: %w", err)
	}

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return false, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return false, fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return false, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify-face", &body)
	if err != nil {
		return false, fmt.Errorf("failed to create verification request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call face recognition service: %w", err)
	}
	defer resp.Body.Close()

	// The service answers 404 for a face that was never registered. That is
	// a no-match, not an outage.
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode >= 500 {
		return false, fmt.Errorf("face recognition service returned status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, fmt.Errorf("failed to decode verification response: %w", err)
	}

	if !vr.Success {
		return false, nil
	}
	return vr.Verified, nil
}
