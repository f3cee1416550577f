package engine

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"walletengine/src/database"
	"walletengine/src/executors"
)

type Engine struct {
}

// Start runs the wallet execution scheduler until SIGINT/SIGTERM.
func (e *Engine) Start() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	// Initialize main (read/write) database
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	logrus.Info("Starting wallet execution scheduler")

	if err := executors.StartLoop(ctx); err != nil {
		logrus.WithError(err).Error("Scheduler loop failed")
		return err
	}

	return nil
}
