package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/auth"
	"github.com/vmonares/atelierdesk/internal/backup"
	"github.com/vmonares/atelierdesk/internal/config"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/calendar"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/files"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/mcp"
	"github.com/vmonares/atelierdesk/internal/scanner"
	"github.com/vmonares/atelierdesk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("ATELIER_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureStoreDir(cfg.Store.Path); err != nil {
		logger.Error("failed to prepare store path", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	trail := audit.NewService(ctx, db, logger)
	notifications := notify.NewService(ctx, db, logger)
	clients := client.NewService(ctx, db, trail, notifications, logger)
	projects := project.NewService(ctx, db, trail, notifications, clients, logger)
	payments := payment.NewService(ctx, db, trail, notifications, logger)
	visits := visit.NewService(ctx, db, trail, logger)
	events := calendar.NewService(ctx, db, trail, notifications, logger)
	invoices := billing.NewService(ctx, db, trail, notifications, cfg.Billing.TaxPercent, logger)
	fileStore := files.NewService(db, trail, logger)

	account, err := auth.NewService(ctx, db, trail, cfg.Auth.Username, cfg.Auth.Password, logger)
	if err != nil {
		logger.Error("failed to initialize account", "error", err)
		os.Exit(1)
	}

	backups := backup.NewService(db, projects, clients, payments, visits, events,
		invoices, notifications, account, trail, logger)

	deadlines := scanner.New(payments, visits, notifications, logger)
	if err := deadlines.Start(ctx); err != nil {
		logger.Error("failed to start deadline scanner", "error", err)
		os.Exit(1)
	}
	defer deadlines.Shutdown()

	mcpServer := mcp.NewServer(mcp.Deps{
		Projects:      projects,
		Clients:       clients,
		Payments:      payments,
		Visits:        visits,
		Events:        events,
		Invoices:      invoices,
		Notifications: notifications,
		Activity:      trail,
		Files:         fileStore,
		Account:       account,
		Backup:        backups,
		Store:         db,
		Logger:        logger,
		TransportMode: cfg.Transport.Mode,
		APIToken:      cfg.Auth.APIToken,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureStoreDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
