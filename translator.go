package catalogtl

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/ZaguanLabs/catalogtl/classify"
	"github.com/ZaguanLabs/catalogtl/table"
)

// Provider is the interface for translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Texts          []string
	TargetLang     string // Normalized target code, e.g. "DE" or "PT-BR"
	PreserveMarkup bool   // Texts contain HTML tags that must survive
}

// TranslateResponse holds one translation per request text, in order.
type TranslateResponse struct {
	Texts         []string
	DetectedLangs []string // Source language per text when the service reports it
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// ContentProcessor is the interface for content processing.
type ContentProcessor interface {
	Extract(content string) (any, []TextNode, error)
	Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// ProgressFunc is called after each batch completes.
type ProgressFunc func(done, total int, batch *Batch)

// Translator translates the translatable cells of a table in place.
type Translator struct {
	targetLang string
	provider   Provider
	cache      TranslationCache
	limits     BatchLimits
	retry      RetryConfig
	logger     *slog.Logger
	progress   ProgressFunc
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache. Identical texts are submitted once
// per cache; without one a fresh map is used for each run.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithBatchLimits bounds the size of each request.
func WithBatchLimits(limits BatchLimits) TranslatorOption {
	return func(t *Translator) {
		t.limits = limits
	}
}

// WithRetryConfig sets the backoff schedule for failed requests.
func WithRetryConfig(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithProgress registers a callback invoked after every batch.
func WithProgress(fn ProgressFunc) TranslatorOption {
	return func(t *Translator) {
		t.progress = fn
	}
}

// NewTranslator creates a new Translator with the given target language and
// provider. targetLang should already be normalized with NormalizeLanguage.
func NewTranslator(targetLang string, provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		targetLang: targetLang,
		provider:   provider,
		limits:     DefaultBatchLimits(),
		retry:      DefaultRetryConfig(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TargetLang returns the target language.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// Plan returns the batches a run over rows would send. Texts already in the
// cache or repeated earlier in the run are left out.
func (t *Translator) Plan(tbl *table.Table, rows []int, roles *classify.Result) ([]Unit, []Batch) {
	units := CollectUnits(tbl, rows, roles)
	return units, PlanBatches(t.unique(units, t.runCache()), t.limits)
}

// Translate replaces every non-blank translatable cell of the selected rows
// with its translation. Batches are sent one at a time. The first batch that
// cannot be translated aborts the run with a *TranslationServiceError; cells
// are only written once every batch has succeeded.
func (t *Translator) Translate(ctx context.Context, tbl *table.Table, rows []int, roles *classify.Result) (*RunResult, error) {
	cache := t.runCache()
	units := CollectUnits(tbl, rows, roles)
	batches := PlanBatches(t.unique(units, cache), t.limits)

	result := &RunResult{
		DetectedLangs: make(map[string]int),
	}

	fresh := make(map[string]string)

	t.logger.Info("translation planned",
		"target_lang", t.targetLang,
		"units", len(units),
		"batches", len(batches))

	for i := range batches {
		b := &batches[i]
		resp, err := t.sendBatch(ctx, b)
		if err != nil {
			return nil, err
		}

		for j, u := range b.Units {
			fresh[CacheKey(HashText(u.Text), t.targetLang, u.Markup)] = resp.Texts[j]
			if err := cache.Set(CacheKey(HashText(u.Text), t.targetLang, u.Markup), resp.Texts[j]); err != nil {
				t.logger.Warn("cache set failed", "error", err)
			}
			result.Characters += utf8.RuneCountInString(u.Text)
			if j < len(resp.DetectedLangs) && resp.DetectedLangs[j] != "" {
				result.DetectedLangs[resp.DetectedLangs[j]]++
			}
		}
		result.Submitted += len(b.Units)
		result.Batches++

		if t.progress != nil {
			t.progress(i+1, len(batches), b)
		}
	}

	// Resolve every cell before writing so a miss leaves the table untouched.
	values := make([]string, len(units))
	for i, u := range units {
		key := CacheKey(HashText(u.Text), t.targetLang, u.Markup)
		translated, ok := fresh[key]
		if !ok {
			translated, ok = cache.Get(key)
		}
		if !ok {
			return nil, &MissingTranslationError{Column: u.Column, Row: u.Row}
		}
		values[i] = PreserveWhitespace(tbl.Get(u.Row, u.Column), translated)
	}

	touched := make(map[string]bool)
	for i, u := range units {
		if err := tbl.Set(u.Row, u.Column, values[i]); err != nil {
			return nil, err
		}
		result.Units++
		if !touched[u.Column] {
			touched[u.Column] = true
			result.ColumnsTouched = append(result.ColumnsTouched, u.Column)
		}
	}
	result.Reused = result.Units - result.Submitted

	t.logger.Info("translation finished",
		"units", result.Units,
		"submitted", result.Submitted,
		"reused", result.Reused,
		"batches", result.Batches,
		"characters", result.Characters)

	return result, nil
}

// sendBatch sends one batch with retry and validates the response.
func (t *Translator) sendBatch(ctx context.Context, b *Batch) (*TranslateResponse, error) {
	texts := make([]string, len(b.Units))
	for i, u := range b.Units {
		texts[i] = u.Text
	}
	first, last := b.Rows()

	log := t.logger.With(
		"batch", b.Index+1,
		"column", b.Column,
		"texts", len(texts),
		"markup", b.Markup)
	log.Debug("sending batch", "first_row", first+1, "last_row", last+1)

	cfg := t.retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warn("retrying batch", "attempt", attempt, "delay", delay, "error", err)
		if onRetry != nil {
			onRetry(attempt, err, delay)
		}
	}

	attempts := 0
	resp, err := WithRetry(ctx, cfg, func() (*TranslateResponse, error) {
		attempts++
		resp, err := t.provider.Translate(ctx, TranslateRequest{
			Texts:          texts,
			TargetLang:     t.targetLang,
			PreserveMarkup: b.Markup,
		})
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Texts) != len(texts) {
			got := 0
			if resp != nil {
				got = len(resp.Texts)
			}
			return nil, &CountMismatchError{Expected: len(texts), Got: got}
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Error("batch failed", "attempts", attempts, "error", err)
		return nil, &TranslationServiceError{
			Batch:    b.Index,
			Column:   b.Column,
			FirstRow: first,
			LastRow:  last,
			Texts:    len(texts),
			Attempts: attempts,
			Cause:    err,
		}
	}

	log.Debug("batch translated", "attempts", attempts)
	return resp, nil
}

// unique drops units whose text is cached or already queued earlier.
func (t *Translator) unique(units []Unit, cache TranslationCache) []Unit {
	seen := make(map[string]bool)
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		key := CacheKey(HashText(u.Text), t.targetLang, u.Markup)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := cache.Get(key); ok {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (t *Translator) runCache() TranslationCache {
	if t.cache != nil {
		return t.cache
	}
	return mapCache{}
}

// mapCache is the default per-run cache.
type mapCache map[string]string

func (c mapCache) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(key, value string) error {
	c[key] = value
	return nil
}
