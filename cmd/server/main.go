package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/liftform/shiftcraft/internal/api"
	"github.com/liftform/shiftcraft/internal/job"
	"github.com/liftform/shiftcraft/internal/repository"
	"github.com/liftform/shiftcraft/internal/repository/memory"
	"github.com/liftform/shiftcraft/internal/repository/postgres"
	"github.com/liftform/shiftcraft/internal/scheduler"
	"github.com/liftform/shiftcraft/internal/service"
)

func main() {
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	scheduleSvc := service.NewScheduleService(db, scheduler.DefaultConfig(), nil)

	router := api.NewRouter(db, scheduleSvc)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		log.Printf("starting server on %s", addr)
		if err := router.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	redisAddr := os.Getenv("REDIS_ADDR")
	var asynqServer *asynq.Server
	if redisAddr != "" {
		asynqServer = asynq.NewServer(
			asynq.RedisClientOpt{Addr: redisAddr},
			asynq.Config{Concurrency: 5},
		)
		mux := asynq.NewServeMux()
		job.NewJobHandlers(scheduleSvc).RegisterHandlers(mux)

		go func() {
			log.Printf("starting job worker against redis %s", redisAddr)
			if err := asynqServer.Run(mux); err != nil {
				log.Fatalf("job worker failed: %v", err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	if err := router.Shutdown(); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

func openDatabase() (repository.Database, error) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Println("DATABASE_URL not set, using in-memory repository")
		return memory.NewDatabase(), nil
	}

	db, err := postgres.New(connString)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
