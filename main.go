package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/phrasedrill/internal/config"
	"github.com/example/phrasedrill/internal/database"
	"github.com/example/phrasedrill/internal/excel"
	"github.com/example/phrasedrill/internal/judge"
	"github.com/example/phrasedrill/internal/scheduler"
	"github.com/example/phrasedrill/internal/scheduling"
	"github.com/example/phrasedrill/internal/selection"
	"github.com/example/phrasedrill/internal/server"
)

func main() {
	cfg := config.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if len(os.Args) > 1 && os.Args[1] == "import" {
		runImport(os.Args[2:])
		return
	}

	policy := scheduling.NewPolicyWithIntervals(cfg.ReviewIntervals)

	items := database.NewItemRepository()
	questions := database.NewQuestionRepository()
	states := database.NewMasteryStateRepository()
	attempts := database.NewAttemptLogRepository()

	selector := selection.NewSelector(items, states)
	binder := selection.NewBinder(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
	j := judge.New(questions, items, states, attempts, policy)

	srv := server.New(selector, binder, j, states, cfg.StoreTimeout, cfg.MasteredStage)

	reminders := scheduler.New(states, scheduler.LogNotifier{}, cfg.NotifyStartHour, cfg.NotifyEndHour)
	reminders.Start()
	defer reminders.Stop()

	go func() {
		log.Printf("Serving on %s", cfg.HTTPAddr)
		if err := srv.Run(cfg.HTTPAddr); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}

// runImport handles the "import" subcommand:
//
//	phrasedrill import -items items.xlsx -questions questions.csv
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	itemsPath := fs.String("items", "", "path to an items .xlsx or .csv file")
	questionsPath := fs.String("questions", "", "path to a questions .xlsx or .csv file")
	fs.Parse(args)

	if *itemsPath == "" && *questionsPath == "" {
		log.Fatal("import: provide -items and/or -questions")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *itemsPath != "" {
		result, err := excel.ImportItems(ctx, *itemsPath)
		if err != nil {
			log.Fatalf("import items: %v", err)
		}
		logImportResult("items", result)
	}
	if *questionsPath != "" {
		result, err := excel.ImportQuestions(ctx, *questionsPath)
		if err != nil {
			log.Fatalf("import questions: %v", err)
		}
		logImportResult("questions", result)
	}
}

func logImportResult(kind string, result *excel.ImportResult) {
	log.Printf("Imported %s: %d processed, %d created, %d skipped",
		kind, result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
