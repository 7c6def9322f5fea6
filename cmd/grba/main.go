package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/lukaszgryglicki/grba/internal/grba"
)

func run(args []string) error {
	grba.Debug = os.Getenv("DEBUG") != ""
	grba.PNG = os.Getenv("PNG") != ""
	watch := os.Getenv("WATCH") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	cfg := "scans/config.json"
	if len(args) > 0 {
		cfg = args[0]
	}
	if !watch {
		return grba.Run(cfg)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return grba.Watch(ctx, cfg)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
