// Package merge hands merged notifications to the downstream merge processing
// operation.
package merge

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNoConfigPath  = errors.New("config path required")
	ErrSessionClosed = errors.New("merge session closed")
)

// Processor opens a session authenticated from the notification parameters and
// bound to the configuration at configPath.
type Processor interface {
	Open(ctx context.Context, parameters json.RawMessage, configPath string) (Session, error)
}

type Session interface {
	ProcessMerge(ctx context.Context, fields, options map[string]any) error
	Close() error
}

// WithSession opens a session, runs fn and always closes the session. An error
// from fn is returned as is; a close error is only returned when fn succeeded.
func WithSession(ctx context.Context, p Processor, parameters json.RawMessage, configPath string, fn func(Session) error) error {
	s, err := p.Open(ctx, parameters, configPath)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}
