package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/utils/safe"
)

// HTTPSynthesizer calls a text-to-speech endpoint that accepts
// {"text","voice","rate"} as JSON and answers with raw audio.
type HTTPSynthesizer struct {
	endpoint string
	client   *http.Client
}

var _ interfaces.Synthesizer = &HTTPSynthesizer{}

func NewHTTPSynthesizer(endpoint string, timeout time.Duration) *HTTPSynthesizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSynthesizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type synthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Rate  string `json:"rate"`
}

func (h *HTTPSynthesizer) Synthesize(ctx context.Context, text, voice, rate string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{Text: text, Voice: voice, Rate: rate})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal synthesis request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create synthesis request", goerr.V("endpoint", h.endpoint))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call synthesis endpoint", goerr.V("endpoint", h.endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("synthesis endpoint returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(msg)),
		)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read synthesized audio")
	}
	return audio, nil
}
