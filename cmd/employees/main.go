package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/employee-registry/internal/platform/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		// セッション内の失敗は解放前に報告済みです。
		if !session.IsReported(err) {
			session.Report(os.Stderr, err)
		}
		os.Exit(1)
	}
}
