package commands

import (
	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/api"
	"github.com/diogo/goalchat/internal/chat"
	"github.com/diogo/goalchat/internal/config"
	"github.com/diogo/goalchat/internal/logging"
	"github.com/diogo/goalchat/internal/tui"
)

// ReplyClient is the part of api.Client the commands depend on
type ReplyClient interface {
	chat.Fetcher
	tui.EndpointSwitcher
	Close()
}

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(orch *chat.Orchestrator, cfg config.Config, opts ...tui.Option) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the reply client for cfg.
	NewClient func(cfg config.Config, logger *zap.Logger) (ReplyClient, error)

	// NewLogger builds the diagnostic logger for cfg.
	NewLogger func(cfg config.Config) (*zap.Logger, error)

	// TUI is the terminal user interface.
	TUI TUIInterface
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(orch *chat.Orchestrator, cfg config.Config, opts ...tui.Option) error {
	return tui.RunChat(orch, cfg, opts...)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger) (ReplyClient, error) {
			client, err := api.NewClientFromConfig(cfg, api.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		NewLogger: logging.New,
		TUI:       &DefaultTUI{},
	}
}
