// workers/poller.go
package workers

import (
	"context"
	"log"
	"time"

	"github.com/AmmarAssaf/renderbot/engine"
	"github.com/AmmarAssaf/renderbot/transport"
)

const (
	longPollSeconds = 30
	retryBackoff    = 5 * time.Second
)

// UpdatePoller pulls updates over long polling and feeds them to the
// engine. It is the development-mode alternative to the webhook route; run
// one or the other, never both.
type UpdatePoller struct {
	Client *transport.Client
	Engine *engine.Engine

	offset int64
}

func NewUpdatePoller(client *transport.Client, e *engine.Engine) *UpdatePoller {
	return &UpdatePoller{Client: client, Engine: e}
}

// Run blocks until ctx is cancelled. Updates are dispatched sequentially so
// events for one user keep their arrival order.
func (p *UpdatePoller) Run(ctx context.Context) {
	log.Println("🔄 [Poller] long polling started")
	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 [Poller] stopped")
			return
		default:
		}

		updates, err := p.Client.GetUpdates(ctx, p.offset, longPollSeconds)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("🛑 [Poller] stopped")
				return
			}
			log.Printf("❌ [Poller] get updates: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= p.offset {
				p.offset = upd.UpdateID + 1
			}
			p.Engine.HandleUpdate(ctx, upd)
		}
	}
}
