// Command bridge serves a simulated haptic device over WebSocket so the
// effects demo can run with the device out of process:
//
//	go run ./cmd/bridge -listen :9001
//	go run ./cmd/effects -bridge ws://localhost:9001/ws/device
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-haptic/internal/config"
	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/bridge"
	"github.com/teslashibe/go-haptic/pkg/device"
)

func main() {
	listen := flag.String("listen", ":9001", "Bridge listen address")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("go-haptic device bridge")
	fmt.Printf("   Listen: %s\n", *listen)
	fmt.Println()

	dev := device.NewSim()
	defer dev.Close()

	server := bridge.NewServer(dev)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		fmt.Println("\nshutting down...")
		server.Shutdown()
	}()

	if err := server.Listen(*listen); err != nil {
		log.Error("bridge server error", "err", err)
		os.Exit(1)
	}
}
