package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/MathMatch/internal/server"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	cfg, err := server.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("Math Match server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Exitf("Server failed: %v", err)
	}
	klog.Flush()
}
