package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/stock-tracker/internal/infrastructure/inventoryapi"
	"github.com/jhoicas/stock-tracker/internal/interfaces/tui"
	"github.com/jhoicas/stock-tracker/pkg/config"
	"github.com/jhoicas/stock-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// La terminal es de la interfaz: sin LOG_FILE los logs se descartan.
	log := logger.Nop()
	if cfg.Log.File != "" {
		log, err = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, File: cfg.Log.File})
		if err != nil {
			fmt.Fprintln(os.Stderr, "iniciar logger:", err)
			os.Exit(1)
		}
		defer log.Close()
	}
	log.Info().Str("api", cfg.API.BaseURL).Msg("iniciando cliente de terminal")

	opts := []inventoryapi.Option{}
	if cfg.API.Token != "" {
		opts = append(opts, inventoryapi.WithToken(cfg.API.Token))
	}
	client := inventoryapi.New(cfg.API.BaseURL, cfg.API.Timeout, opts...)

	p := tea.NewProgram(tui.NewApp(client, cfg.API.Timeout, log.Zerolog()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("cliente de terminal finalizado con error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
