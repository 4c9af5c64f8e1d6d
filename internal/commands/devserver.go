package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/devserver"
	"github.com/diogo/goalchat/internal/logging"
)

// NewDevserverCmd creates the local assistant stub command
func NewDevserverCmd(deps *Dependencies) *cobra.Command {
	var (
		addr      string
		shape     string
		echo      bool
		delay     time.Duration
		failEvery int
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local stand-in for the assistant endpoint",
		Long: `Serve POST /chat with canned World Cup answers so the client can be
tried without the real assistant. Point goalchat at it with
--endpoint http://localhost:8000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			replyShape, err := devserver.ParseShape(shape)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)

			logger, err := logging.NewConsole("info")
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			server := devserver.New(devserver.Options{
				Shape:     replyShape,
				Echo:      echo,
				Delay:     delay,
				FailEvery: failEvery,
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting devserver",
				zap.String("addr", addr),
				zap.String("shape", string(replyShape)),
				zap.Duration("delay", delay),
			)
			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&shape, "shape", string(devserver.ShapeObject), "Reply body shape: object, bare or empty")
	cmd.Flags().BoolVar(&echo, "echo", false, "Echo the question instead of a canned answer")
	cmd.Flags().DurationVar(&delay, "delay", 800*time.Millisecond, "Delay before each reply")
	cmd.Flags().IntVar(&failEvery, "fail-every", 0, "Return 500 for every nth request (0 disables)")

	return cmd
}
