package ocr

import (
	"context"
	"log/slog"
)

type stubRunner struct {
	calls [][]string
	run   func(name string, args []string) ([]byte, []byte, error)
}

func (s *stubRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.run == nil {
		return nil, nil, nil
	}
	return s.run(name, args)
}
