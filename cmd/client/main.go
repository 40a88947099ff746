package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"movieBrowser/internal/client"
	"movieBrowser/internal/config"
	"movieBrowser/internal/logger"
	"movieBrowser/internal/session"
)

var (
	version   string
	buildDate string
)

func main() {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		addr        string
		sessionPath string
		logLevel    string
		showVer     bool
	)
	flag.StringVar(&addr, "addr", cfg.Client.ServerAddress, "server address")
	flag.StringVar(&sessionPath, "session", cfg.Client.SessionPath, "path of the stored session")
	flag.StringVar(&logLevel, "log-level", "error", "client log level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("movieBrowser client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if err := logger.Init(logLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	conn, err := client.Dial(addr)
	if err != nil {
		logger.Logger.Fatal("dial server", zap.String("address", addr), zap.Error(err))
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(conn, session.NewFileHolder(sessionPath), logger.Logger)
	if err := client.NewShell(c, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Logger.Error("shell", zap.Error(err))
	}
}
