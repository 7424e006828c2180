package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"autopick/internal/config"
	"autopick/internal/domain"
	"autopick/internal/eventbus"
	"autopick/internal/ui"
)

// e2eEnv makes the binary print readyMarker once the program is built, so
// the pty-driven tests know when to start typing
const (
	e2eEnv      = "AUTOPICK_E2E_TEST"
	readyMarker = "__READY__"
)

func main() {
	var configPath string
	var logPath string
	flag.StringVar(&configPath, "config", "", "Path to the TOML config file (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to the TOML config file (shorthand)")
	flag.StringVar(&logPath, "log", "autopick.log", "Log file")
	flag.Parse()

	if err := run(configPath, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns every resource the program opens, so all of them are released
// before main decides the exit code
func run(configPath, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return fmt.Errorf("Error loading config: %w", err)
	}

	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(bus, cfg)
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Forward the events the page reports in its status line
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventSearchCompleted, forward)
	bus.Subscribe(eventbus.EventSubmitted, forward)

	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			log.Printf("Selection changed in %q: %v", event.Source, domain.Values(event.Selected))
		}
	})

	if os.Getenv(e2eEnv) == "1" {
		fmt.Println(readyMarker)
	}

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("Error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// loadOrCreateConfig loads the config file, writing the defaults first when
// there is none yet
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		cfg, err := configSvc.Load()
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded config from %s", configSvc.Path())
		return cfg, nil
	}

	log.Printf("Creating default config at %s", configSvc.Path())
	cfg := config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, nil
}
