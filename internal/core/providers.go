package core

import "context"

// Completer is an opaque text completion provider. One call per request, no
// retry; conversation history arrives embedded in the prompt text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageAnalyzer captions an image given an instruction prompt.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// ImageHost uploads an image and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Searcher fans a query out to the web lookups. It never fails.
type Searcher interface {
	Aggregate(ctx context.Context, query string) SearchPair
}
