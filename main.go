package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
	"github.com/Shadab909/couchbase-cluster-report-automation/controller"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.Env.ReportIntervalMinutes <= 0 {
		// One-shot run, exit status carries the delivery outcome.
		if err := controller.RunReport(ctx); err != nil {
			log.Printf("Run finished with delivery failures: %v", err)
			os.Exit(1)
		}
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/actuator/health/liveness", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "ok")
		})
		mux.HandleFunc("/actuator/health/readiness", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "ready")
		})

		http.ListenAndServe(":8001", mux)
	}()

	go controller.RepeatReport(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Println("Shutdown signal received.")
	cancel()
	time.Sleep(2 * time.Second)
}
