package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/eholt/labyrinth/referee"
)

type runOutcome struct {
	result *referee.Result
	err    error
}

func main() {
	m := newMainFlags(os.Args, os.LookupEnv)
	l := stdlog.New(os.Stdout, "", stdlog.LstdFlags)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", m.signupPort))
	if err != nil {
		l.Fatalf("listening on port %d: %v", m.signupPort, err)
	}

	cfg := signupConfig(m, l)
	server, err := cfg.New(ln)
	if err != nil {
		l.Fatalf("creating signup server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan os.Signal, 2)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	resultC := make(chan runOutcome, 1)
	go func() {
		result, err := server.Run(ctx)
		resultC <- runOutcome{result: result, err: err}
	}()

	select {
	case r := <-resultC:
		if r.err != nil {
			l.Fatalf("tournament ended unexpectedly: %v", r.err)
		}
		l.Printf("tournament finished: winners=%v cheaters=%v", r.result.Winners, r.result.Cheaters)
	case sig := <-done:
		l.Printf("handled %v, shutting down", sig)
		cancel()
		<-resultC
	}
}
