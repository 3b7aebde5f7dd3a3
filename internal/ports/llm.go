package ports

import "context"

// CompletionRequest is a two-message chat completion: one system
// instruction and one user instruction.
type CompletionRequest struct {
	System string
	User   string
}

// Completer returns the raw text of the first completion choice.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
