package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// IOracle is the external knowledge-base lookup. The engine sends a free-text
// question and gets an answer string back; everything behind the endpoint is
// out of our hands.
type IOracle interface {
	Ask(ctx context.Context, query string, sessionID string) (Answer, error)
}

type Answer struct {
	Text         string
	RelevantInfo json.RawMessage
}

// FallbackAnswer is returned for a 2xx body that carries none of the known
// answer fields.
const FallbackAnswer = "I don't have an answer for that right now."

type askRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Answer       string          `json:"answer"`
	Message      string          `json:"message"`
	Response     string          `json:"response"`
	RelevantInfo json.RawMessage `json:"relevant_info"`
}

type oracleClient struct {
	endpoint string
	client   *http.Client
	log      *logrus.Logger
}

func New(log *logrus.Logger) IOracle {
	endpoint := os.Getenv("QA_ORACLE_URL")
	if endpoint == "" {
		log.Warn("QA_ORACLE_URL is not set, oracle calls will fail")
	}

	return &oracleClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// NewWithEndpoint is used by tests to point the client at a local server.
func NewWithEndpoint(log *logrus.Logger, endpoint string) IOracle {
	return &oracleClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (o *oracleClient) Ask(ctx context.Context, query string, sessionID string) (Answer, error) {
	payload, err := json.Marshal(askRequest{
		Query:     query,
		SessionID: sessionID,
	})
	if err != nil {
		return Answer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		o.log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"session_id": sessionID,
		}).Error("Oracle request failed")
		return Answer{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o.log.WithFields(logrus.Fields{
			"status":     resp.StatusCode,
			"session_id": sessionID,
		}).Error("Oracle returned error status")
		return Answer{}, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Answer{}, err
	}

	var parsed askResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		o.log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"session_id": sessionID,
		}).Error("Oracle returned malformed body")
		return Answer{}, err
	}

	// Answer fields in priority order.
	text := parsed.Answer
	if text == "" {
		text = parsed.Message
	}
	if text == "" {
		text = parsed.Response
	}
	if text == "" {
		text = FallbackAnswer
	}

	return Answer{
		Text:         text,
		RelevantInfo: parsed.RelevantInfo,
	}, nil
}
