package listsync

import (
	"time"

	"github.com/elearn-app/elearn/internal/httpapi"
	"go.uber.org/zap"
)

// Recorder persists the outcome of each sync. *store.DB implements it.
type Recorder interface {
	RecordSyncSuccess(list string, count int, at time.Time) error
	RecordSyncFailure(list, kind, message string, at time.Time) error
}

// checkpoints writes sync outcomes to an optional Recorder. Write errors
// are logged; they never fail the sync.
type checkpoints struct {
	rec    Recorder
	logger *zap.Logger
}

func (c checkpoints) success(list string, count int, at time.Time) {
	if c.rec == nil {
		return
	}
	if err := c.rec.RecordSyncSuccess(list, count, at); err != nil {
		c.logger.Error("failed to record sync checkpoint", zap.Error(err))
	}
}

func (c checkpoints) failure(list string, syncErr error, at time.Time) {
	if c.rec == nil {
		return
	}
	if err := c.rec.RecordSyncFailure(list, httpapi.KindName(syncErr), syncErr.Error(), at); err != nil {
		c.logger.Error("failed to record sync checkpoint", zap.Error(err))
	}
}
