package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/config"
	"github.com/osse101/RouletteHouse_Go/internal/event"
)

// publisherConfig maps the EVENT_* settings onto the publisher. Unset values
// fall through to the event package defaults, except the dead-letter path
// which is always set so failed settlement events are never silently lost.
func publisherConfig(cfg *config.Config, clock quartz.Clock) event.PublisherConfig {
	path := cfg.EventDeadLetterPath
	if path == "" {
		path = config.DefaultEventDeadLetterPath
	}
	return event.PublisherConfig{
		MaxRetries:     cfg.EventMaxRetries,
		RetryDelay:     cfg.EventRetryDelay,
		DeadLetterPath: path,
		Clock:          clock,
	}
}

// InitializeEventSystem builds the in-memory bus and the retrying publisher
// that the services publish through
func InitializeEventSystem(cfg *config.Config, clock quartz.Clock) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()
	pcfg := publisherConfig(cfg, clock)

	if err := os.MkdirAll(filepath.Dir(pcfg.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, pcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	effective := publisher.Config()
	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", effective.MaxRetries,
		"retry_delay", effective.RetryDelay,
		"deadletter_path", effective.DeadLetterPath)

	return bus, publisher, nil
}
