package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/reelpad/reelpad/config"
)

func main() {
	configPath := flag.String("config", "", "path to a reelpad.yaml config file")
	projectPath := flag.String("project", "", "project JSON to open (overrides config)")
	scriptPath := flag.String("script", "", "run a tengo script against the project on startup")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *projectPath != "" {
		cfg.Project.File = *projectPath
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	clipboardOK := clipboard.Init() == nil

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	app, err := NewApp(cfg, clipboardOK)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Shutdown()

	if *scriptPath != "" {
		if err := app.RunScript(*scriptPath); err != nil {
			log.Printf("startup script: %v", err)
		}
	}

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
