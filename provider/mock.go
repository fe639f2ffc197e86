package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is an offline translation service for tests and dry runs.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Errors       []error           // Returned, in order, by the first calls
	DetectedLang string            // Reported source language (optional)

	CallCount   int                // Number of times Translate was called
	Requests    []TranslateRequest // Every request received
	LastRequest *TranslateRequest  // Last request received

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Perfume":           "Parfüm",
			"Rose oil":          "Rosenöl",
			"Hand cream":        "Handcreme",
			"Rose":              "Rose",
			"oil":               "Öl",
			"Gift set":          "Geschenkset",
			"A fresh fragrance": "Ein frischer Duft",
		},
		DetectedLang: "EN",
	}
}

// Translate returns mock translations. Unknown texts come back bracketed.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.Requests = append(m.Requests, req)
	m.LastRequest = &m.Requests[len(m.Requests)-1]

	if len(m.Errors) > 0 {
		err := m.Errors[0]
		m.Errors = m.Errors[1:]
		if err != nil {
			return nil, err
		}
	}

	resp := &TranslateResponse{
		Texts:         make([]string, len(req.Texts)),
		DetectedLangs: make([]string, len(req.Texts)),
	}
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			resp.Texts[i] = translation
		} else {
			resp.Texts[i] = fmt.Sprintf("[%s]", text)
		}
		resp.DetectedLangs[i] = m.DetectedLang
	}

	return resp, nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
