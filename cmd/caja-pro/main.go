package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tu-usuario/caja-pro/internal/engine"
	"github.com/tu-usuario/caja-pro/pkg/config"
	"github.com/tu-usuario/caja-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando motor")

	ctx := context.Background()
	eng, err := engine.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("arranque del motor")
	}
	defer eng.Close()

	// Reporte de reposición al arranque: visibilidad inmediata del inventario.
	lowStock, err := eng.Products.ListLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reporte de stock bajo")
	} else {
		for _, p := range lowStock {
			log.Warn().
				Str("producto", p.Name).
				Int64("cantidad", p.Quantity).
				Int64("umbral", p.MinStock).
				Msg("producto bajo umbral de reposición")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando motor")
}
