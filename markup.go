package catalogtl

import (
	"context"
)

// MarkupProvider adds markup preservation to a provider that only handles
// plain text. Markup requests are split into the text nodes of each
// fragment, the nodes are translated in one plain request and every
// fragment is reassembled around its translated nodes.
type MarkupProvider struct {
	provider  Provider
	processor ContentProcessor
}

// NewMarkupProvider wraps provider using processor to split fragments.
func NewMarkupProvider(provider Provider, processor ContentProcessor) *MarkupProvider {
	return &MarkupProvider{
		provider:  provider,
		processor: processor,
	}
}

// Translate implements Provider.
func (m *MarkupProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if !req.PreserveMarkup {
		return m.provider.Translate(ctx, req)
	}

	type fragment struct {
		parsed any
		nodes  []TextNode
	}
	fragments := make([]fragment, len(req.Texts))

	var texts []string
	position := make(map[string]int) // hash -> index in texts
	for i, text := range req.Texts {
		parsed, nodes, err := m.processor.Extract(text)
		if err != nil {
			return nil, err
		}
		fragments[i] = fragment{parsed: parsed, nodes: nodes}
		for _, n := range nodes {
			if _, ok := position[n.Hash]; !ok {
				position[n.Hash] = len(texts)
				texts = append(texts, n.Text)
			}
		}
	}

	var inner *TranslateResponse
	if len(texts) > 0 {
		var err error
		inner, err = m.provider.Translate(ctx, TranslateRequest{
			Texts:      texts,
			TargetLang: req.TargetLang,
		})
		if err != nil {
			return nil, err
		}
		if len(inner.Texts) != len(texts) {
			return nil, &CountMismatchError{Expected: len(texts), Got: len(inner.Texts)}
		}
	}

	resp := &TranslateResponse{
		Texts:         make([]string, len(req.Texts)),
		DetectedLangs: make([]string, len(req.Texts)),
	}
	for i, f := range fragments {
		translations := make(map[string]string, len(f.nodes))
		for _, n := range f.nodes {
			idx := position[n.Hash]
			translations[n.Hash] = inner.Texts[idx]
			if resp.DetectedLangs[i] == "" && idx < len(inner.DetectedLangs) {
				resp.DetectedLangs[i] = inner.DetectedLangs[idx]
			}
		}

		out, err := m.processor.Apply(f.parsed, f.nodes, translations)
		if err != nil {
			return nil, err
		}
		resp.Texts[i] = out
	}
	return resp, nil
}
