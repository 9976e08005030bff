package status

import (
	"context"

	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/logging"
	"go.uber.org/zap"
)

// Monitor drives the machine from list sync outcomes published on the bus.
type Monitor struct {
	machine *Machine
	bus     *bus.Bus
	logger  *zap.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor creates a monitor for m.
func NewMonitor(m *Machine, b *bus.Bus, logger *zap.Logger) *Monitor {
	return &Monitor{machine: m, bus: b, logger: logging.OrNop(logger)}
}

// Start subscribes to list events.
func (mon *Monitor) Start(ctx context.Context) {
	ctx, mon.cancel = context.WithCancel(ctx)
	mon.done = make(chan struct{})
	ch, unsub := mon.bus.Subscribe("list.", 64)

	go func() {
		defer close(mon.done)
		defer unsub()
		for {
			select {
			case evt := <-ch:
				mon.handle(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the monitor and waits for it to exit.
func (mon *Monitor) Stop() {
	if mon.cancel == nil {
		return
	}
	mon.cancel()
	<-mon.done
}

func (mon *Monitor) handle(evt bus.Event) {
	before := mon.machine.Current()
	switch p := evt.Payload.(type) {
	case bus.ListSynced:
		mon.machine.Observe(nil)
	case bus.ListSyncFailed:
		mon.machine.Observe(p.Err)
	default:
		return
	}
	if after := mon.machine.Current(); after != before {
		mon.logger.Info("session state changed by sync",
			zap.String("from", string(before)),
			zap.String("to", string(after)),
		)
	}
}
