// Command effects runs the four-object haptic effects demo: a magnet
// sphere with amplified contact damping, a stick-slip sphere with
// spring-mass dynamics, and a vibrating sphere with a hysteretic
// oscillator, rendered to a web dashboard.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-haptic/internal/config"
	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/demo"
	"github.com/teslashibe/go-haptic/pkg/device"
	"github.com/teslashibe/go-haptic/pkg/freq"
	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/render"
	"github.com/teslashibe/go-haptic/pkg/web"
)

func main() {
	port := flag.String("listen", config.HTTPPort(), "Dashboard listen port")
	bridgeAddr := flag.String("bridge", config.BridgeAddr(), "Device bridge URL (empty = simulated device)")
	frameRate := flag.Int("fps", config.FrameRate(), "Render loop rate in Hz")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("go-haptic effects demo")
	fmt.Printf("   Dashboard: http://localhost:%s\n", *port)
	if *bridgeAddr != "" {
		fmt.Printf("   Device:    bridge %s\n", *bridgeAddr)
	} else {
		fmt.Println("   Device:    simulated")
	}
	fmt.Println()

	// Open the device.
	var dev haptic.Device
	if *bridgeAddr != "" {
		bridge, err := device.DialBridge(*bridgeAddr)
		if err != nil {
			log.Error("bridge connection failed", "err", err)
			os.Exit(1)
		}
		dev = bridge
	} else {
		dev = device.NewSim()
	}
	defer dev.Close()

	// Build the world from the device's limits and attach the tool.
	world := demo.Build(dev.Specs())
	tool := haptic.NewTool(dev, world.Scene)
	tool.SetWaitForSmallForce(true)

	hapticRate := freq.New()
	graphicsRate := freq.New()

	// Haptic control loop.
	loop := haptic.NewLoop(world.Scene, tool, hapticRate, world.Contributors()...)
	go loop.Run()

	// Dashboard and render loop.
	server := web.NewServer(*port)
	server.StartAsync()

	renderer := render.New(world.Scene, tool, server, hapticRate, graphicsRate, *frameRate)
	go renderer.Run()

	// Wait for shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nshutting down...")

	// Stop the loops and wait for the haptic loop to drain before
	// releasing the device.
	renderer.Stop()
	loop.Stop()
	<-loop.Done()
	<-renderer.Done()

	server.Shutdown()
	log.Info("shutdown complete", "ticks", loop.TickCount())
}
