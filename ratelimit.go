package catalogtl

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"
)

// bucket is a token bucket refilled continuously.
type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

func newBucket(perMinute, burst float64) *bucket {
	if burst <= 0 {
		burst = perMinute
	}
	return &bucket{
		tokens:     burst, // Start with full bucket
		maxTokens:  burst,
		refillRate: perMinute / 60.0,
		lastRefill: time.Now(),
	}
}

// refill adds tokens based on elapsed time.
func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.lastRefill = now

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
}

// need clamps n to the bucket size so oversized requests can still pass
// once the bucket is full.
func (b *bucket) need(n float64) float64 {
	if n > b.maxTokens {
		return b.maxTokens
	}
	return n
}

// wait returns how long until n tokens are available.
func (b *bucket) wait(n float64) time.Duration {
	missing := b.need(n) - b.tokens
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing / b.refillRate * float64(time.Second))
}

// RateLimiter paces requests to the translation service. It limits both the
// number of requests and, optionally, the number of characters per minute.
type RateLimiter struct {
	requests *bucket
	chars    *bucket // nil when characters are not limited
	mu       sync.Mutex
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute   int // Maximum requests per minute
	BurstSize           int // Maximum request burst size (default: same as RPM)
	CharactersPerMinute int // Maximum characters per minute (0 = unlimited)
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60 // Default: 60 RPM
	}

	r := &RateLimiter{
		requests: newBucket(rpm, float64(cfg.BurstSize)),
	}
	if cfg.CharactersPerMinute > 0 {
		cpm := float64(cfg.CharactersPerMinute)
		r.chars = newBucket(cpm, cpm)
	}
	return r
}

// Wait blocks until one request carrying chars characters may proceed or
// the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context, chars int) error {
	for {
		waitTime, ok := r.reserve(chars)
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
			// Try again
		}
	}
}

// TryAcquire attempts to acquire a request token without blocking.
// Returns true if a token was acquired, false otherwise.
func (r *RateLimiter) TryAcquire() bool {
	_, ok := r.reserve(0)
	return ok
}

// reserve takes tokens from every bucket when all of them can serve the
// request, otherwise it reports the longest wait.
func (r *RateLimiter) reserve(chars int) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.requests.refill(now)
	wait := r.requests.wait(1)

	if r.chars != nil && chars > 0 {
		r.chars.refill(now)
		if w := r.chars.wait(float64(chars)); w > wait {
			wait = w
		}
	}

	if wait > 0 {
		return wait, false
	}

	r.requests.tokens--
	if r.chars != nil && chars > 0 {
		r.chars.tokens -= r.chars.need(float64(chars))
	}
	return 0, true
}

// Available returns the current number of available request tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests.refill(time.Now())
	return r.requests.tokens
}

// RateLimitedProvider wraps a Provider with rate limiting.
type RateLimitedProvider struct {
	provider Provider
	limiter  *RateLimiter
}

// NewRateLimitedProvider creates a new rate-limited provider.
func NewRateLimitedProvider(provider Provider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg),
	}
}

// Translate implements Provider with rate limiting.
func (p *RateLimitedProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	chars := 0
	for _, text := range req.Texts {
		chars += utf8.RuneCountInString(text)
	}

	if err := p.limiter.Wait(ctx, chars); err != nil {
		return nil, &ProviderError{
			Message:   "rate limit wait cancelled",
			Cause:     err,
			Retryable: false,
		}
	}

	return p.provider.Translate(ctx, req)
}
