package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/oracle"
)

const usageText = `relayd serves funrelay classification and planning over gRPC.

Usage:
  relayd [-config <path>] [-listen <addr>]

The service is described by the embedded relay.proto; any client
generated from the same file can call Classify, Plan, PlanSignature
and Nth. SIGINT or SIGTERM drains in-flight requests and stops.
`

func main() {
	configPath := ""
	listen := ""

	argv := os.Args[1:]
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-config" || arg == "--config":
			i++
			if i >= len(argv) {
				fmt.Fprintln(os.Stderr, "Error: -config needs a path")
				os.Exit(1)
			}
			configPath = argv[i]
		case arg == "-listen" || arg == "--listen":
			i++
			if i >= len(argv) {
				fmt.Fprintln(os.Stderr, "Error: -listen needs an address")
				os.Exit(1)
			}
			listen = argv[i]
		case arg == "-help" || arg == "--help" || arg == "help":
			fmt.Print(usageText)
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", arg)
			fmt.Print(usageText)
			os.Exit(1)
		}
	}

	if err := run(configPath, listen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath, listen string) error {
	path := configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if listen != "" {
		cfg.Listen = listen
	}

	o, err := oracle.New(cfg)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Listen, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "relayd listening on %s\n", lis.Addr())
		errCh <- o.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "relayd shutting down")
	o.GracefulStop()
	return <-errCh
}
