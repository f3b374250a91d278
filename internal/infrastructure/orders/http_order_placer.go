package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/checkout"
)

type contextKey string

const authorizationKey contextKey = "authorization"

// WithAuthorization attaches the caller's bearer token to the context so
// submissions carry the storefront user's identity to the order service.
func WithAuthorization(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authorizationKey, token)
}

func authorizationFrom(ctx context.Context) string {
	if token, ok := ctx.Value(authorizationKey).(string); ok {
		return token
	}
	return ""
}

// HTTPOrderPlacer submits COD orders to the order service over HTTP, one
// request per shop group.
type HTTPOrderPlacer struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPOrderPlacer creates an order placer against the given base URL.
func NewHTTPOrderPlacer(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPOrderPlacer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPOrderPlacer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// PlaceOrder implements checkout.OrderPlacer's contract: an authentication
// rejection maps to checkout.ErrUnauthenticated, any other failure to a
// checkout.SubmissionError carrying the status code when one was received.
func (p *HTTPOrderPlacer) PlaceOrder(ctx context.Context, req checkout.OrderRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &checkout.SubmissionError{ShopID: req.ShopID, Err: fmt.Errorf("encode order: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return &checkout.SubmissionError{ShopID: req.ShopID, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token := authorizationFrom(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return &checkout.SubmissionError{ShopID: req.ShopID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return checkout.ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp.Body)
		p.logger.Warn("order service rejected submission",
			zap.String("shop_id", req.ShopID),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return &checkout.SubmissionError{
			ShopID:     req.ShopID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("order service returned %d: %s", resp.StatusCode, detail),
		}
	}

	return nil
}

// readErrorDetail pulls a short error description from the response body.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

var _ appcheckout.OrderPlacer = (*HTTPOrderPlacer)(nil)
