package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/catalogtl"
)

// DefaultDeepLURL is the translate endpoint of the DeepL API Free plan.
const DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

// statusQuotaExceeded is DeepL's "quota exceeded" status.
const statusQuotaExceeded = 456

// DeepLConfig holds configuration for the DeepL provider.
type DeepLConfig struct {
	APIKey  string        // DeepL authentication key
	URL     string        // Translate endpoint (default: DefaultDeepLURL)
	Timeout time.Duration // Per-request timeout (default: 60s)
}

// DeepLProvider implements Provider using the DeepL REST API.
type DeepLProvider struct {
	http   *resty.Client
	apiKey string
	url    string
}

// NewDeepLProvider creates a new DeepL provider.
func NewDeepLProvider(cfg DeepLConfig) *DeepLProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultDeepLURL
	}

	return &DeepLProvider{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", catalogtl.UserAgent()),
		apiKey: cfg.APIKey,
		url:    endpoint,
	}
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Translate sends one request with every text of the batch.
func (p *DeepLProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if len(req.Texts) == 0 {
		return &TranslateResponse{}, nil
	}

	form := url.Values{}
	form.Set("target_lang", req.TargetLang)
	form.Set("preserve_formatting", "1")
	if req.PreserveMarkup {
		form.Set("tag_handling", "html")
	}
	for _, text := range req.Texts {
		form.Add("text", text)
	}

	var resp deeplResponse
	rr, err := p.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "DeepL-Auth-Key "+p.apiKey).
		SetFormDataFromValues(form).
		SetResult(&resp).
		Post(p.url)
	if err != nil {
		return nil, &catalogtl.ProviderError{
			Message:   "DeepL request failed",
			Cause:     err,
			Retryable: !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded),
		}
	}

	if rr.IsError() {
		return nil, &catalogtl.ProviderError{
			Message:    deeplStatusMessage(rr.StatusCode()),
			Cause:      errors.New(strings.TrimSpace(rr.String())),
			StatusCode: rr.StatusCode(),
			Retryable:  isRetryableStatus(rr.StatusCode()),
		}
	}

	if len(resp.Translations) != len(req.Texts) {
		return nil, &catalogtl.CountMismatchError{
			Expected: len(req.Texts),
			Got:      len(resp.Translations),
		}
	}

	out := &TranslateResponse{
		Texts:         make([]string, len(resp.Translations)),
		DetectedLangs: make([]string, len(resp.Translations)),
	}
	for i, tr := range resp.Translations {
		out.Texts[i] = tr.Text
		out.DetectedLangs[i] = tr.DetectedSourceLanguage
	}
	return out, nil
}

// isRetryableStatus reports whether a request failing with status may
// succeed later: rate limiting and server-side errors.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func deeplStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "DeepL rejected the request (check the target language)"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "DeepL authentication failed (check DEEPL_API_KEY and DEEPL_API_URL)"
	case http.StatusNotFound:
		return "DeepL endpoint not found (check DEEPL_API_URL)"
	case http.StatusRequestEntityTooLarge:
		return "DeepL request too large"
	case http.StatusTooManyRequests:
		return "DeepL rate limit exceeded"
	case statusQuotaExceeded:
		return "DeepL character quota exceeded"
	}
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("DeepL returned %s", text)
	}
	return "DeepL request failed"
}

// Verify DeepLProvider implements Provider
var _ Provider = (*DeepLProvider)(nil)
