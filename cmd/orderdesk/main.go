package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal"
	"orderdesk/internal/config"
	"orderdesk/internal/llm"
	"orderdesk/internal/logger"
	"orderdesk/internal/pipeline"
	"orderdesk/internal/report"
	"orderdesk/internal/server"
	"orderdesk/internal/sheets"
	"orderdesk/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		must(runServe(cfg, log))
	case "ask":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		question := fs.String("question", "", "free-text question")
		orderID := fs.String("order-id", "", "order number")
		email := fs.String("email", "", "e-mail used to place the order")
		_ = fs.Parse(os.Args[2:])
		must(runAsk(cfg, log, internal.AskRequest{Question: *question, OrderID: *orderID, Email: *email}))
	case "report:daily":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", cfg.ReportPath, "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		must(runReport(cfg, log, *out))
	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max rows")
		_ = fs.Parse(os.Args[2:])
		must(runHistory(cfg, *limit))
	default:
		usage()
		os.Exit(1)
	}
}

func runServe(cfg config.Config, log *zap.Logger) error {
	if err := cfg.Require("OPENAI_API_KEY", cfg.OpenAIAPIKey); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader, err := sheets.NewLoader(ctx, cfg)
	if err != nil {
		return err
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := pipeline.NewService(loader, llm.NewClient(cfg), db, log)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(svc, log).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func runAsk(cfg config.Config, log *zap.Logger, req internal.AskRequest) error {
	if err := cfg.Require("OPENAI_API_KEY", cfg.OpenAIAPIKey); err != nil {
		return err
	}

	ctx := context.Background()
	loader, err := sheets.NewLoader(ctx, cfg)
	if err != nil {
		return err
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := pipeline.NewService(loader, llm.NewClient(cfg), db, log)
	reply, err := svc.Answer(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func runReport(cfg config.Config, log *zap.Logger, out string) error {
	ctx := context.Background()
	loader, err := sheets.NewLoader(ctx, cfg)
	if err != nil {
		return err
	}

	table, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	summary := report.BuildSummary(table, time.Now())
	if err := report.WriteReport(summary, out); err != nil {
		return err
	}
	log.Info("report written",
		zap.String("path", out),
		zap.Int("totalOrders", summary.TotalOrders),
		zap.Int("slaMisses", summary.SLAMisses))

	if err := report.NewNotifier(cfg.SlackWebhookURL).Post(ctx, summary); err != nil {
		log.Warn("slack notify failed", zap.Error(err))
	}

	fmt.Printf("report done orders=%d output=%s\n", summary.TotalOrders, out)
	return nil
}

func runHistory(cfg config.Config, limit int) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.ListRecentInteractions(limit)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Printf("%s  %-14s  order=%-8s  %s\n", row.CreatedAt, row.Outcome, row.OrderID, row.Reply)
	}
	return nil
}

func usage() {
	fmt.Println("usage: orderdesk <command>")
	fmt.Println("commands:")
	fmt.Println("  serve")
	fmt.Println("  ask --question=... [--order-id=...] [--email=...]")
	fmt.Println("  report:daily [--out=./out/daily_report.xlsx]")
	fmt.Println("  history [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
