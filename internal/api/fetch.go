package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"go.uber.org/zap"

	apierrors "github.com/diogo/goalchat/internal/errors"
	"github.com/diogo/goalchat/internal/models"
)

// maxErrorBody limits how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// chatRequest is the JSON body of a reply request
type chatRequest struct {
	Message string `json:"message"`
}

// FetchReply posts message to the chat endpoint and returns the normalized reply.
// Every failure satisfies errors.Is(err, errors.ErrFetchFailed).
func (c *Client) FetchReply(ctx context.Context, message string) (string, error) {
	endpoint := c.ChatURL()

	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", apierrors.NewParseError(fmt.Sprintf("failed to encode request: %v", err), endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("build request", endpoint, err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	c.logger.Debug("sending chat request",
		zap.String("endpoint", endpoint),
		zap.Int("message_length", len(message)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("fetch reply", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "chat request failed", string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("read reply", endpoint, err)
	}

	reply, err := ParseReply(body)
	if err != nil {
		return "", apierrors.NewParseError(err.Error(), endpoint)
	}

	c.logger.Debug("received chat reply",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("reply_length", len(reply)),
	)

	return reply, nil
}
