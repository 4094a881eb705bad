// internal/core/ports/session.go
package ports

import "context"

// TokenProvider supplies the credential attached to outbound API calls.
// The session is injected here rather than read from process-wide state,
// so every collaborator receives credentials explicitly.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
