package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/chat"
	"github.com/diogo/goalchat/internal/models"
	"github.com/diogo/goalchat/internal/tui"
)

func runChat(deps *Dependencies) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	logger.Info(models.StartupMessage,
		zap.String("endpoint", client.BaseURL()),
		zap.String("version", Version),
	)

	orch := chat.NewOrchestrator(client, chat.WithLogger(logger))

	return deps.TUI.RunChat(orch, cfg,
		tui.WithEndpointSwitcher(client),
		tui.WithLogger(logger),
	)
}
