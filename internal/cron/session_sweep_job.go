package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

type sessionSweeper interface {
	Sweep() []string
	Len() int
}

type SessionSweepJobParams struct {
	Logger   *logger.Logger
	Sessions sessionSweeper
}

// NewSessionSweepJob evicts idle shopper sessions.
func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	return &sessionSweepJob{logg: params.Logger, sessions: params.Sessions}, nil
}

type sessionSweepJob struct {
	logg     *logger.Logger
	sessions sessionSweeper
}

func (j *sessionSweepJob) Name() string { return "session-sweep" }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	evicted := j.sessions.Sweep()
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"sessions_evicted":   len(evicted),
		"sessions_remaining": j.sessions.Len(),
	})
	j.logg.Info(logCtx, "session sweep complete")
	return nil
}
