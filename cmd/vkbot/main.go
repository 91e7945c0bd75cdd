package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
	"github.com/Yulia51188/HistoryQuiz/internal/logger"
	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
	"github.com/Yulia51188/HistoryQuiz/internal/store"
	"github.com/Yulia51188/HistoryQuiz/internal/transport/vk"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("vkbot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateVK(); err != nil {
		return err
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	questions, err := quiz.LoadCorpus(cfg.Quiz.CorpusPath, logger.Component("quiz"))
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	supplier, err := quiz.NewSupplier(questions)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store, logger.Component("store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	machine := quiz.NewMachine(st, supplier)
	bot, err := vk.New(cfg, machine, logger.Component("vk"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return bot.Run(ctx)
}
