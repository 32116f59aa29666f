package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lerntracker/internal/api"
	"lerntracker/internal/config"
	"lerntracker/internal/logger"
	"lerntracker/internal/seed"
	"lerntracker/internal/storage"
)

func main() {
	// Kommandozeilen-Flags
	configPath := flag.String("config", "config.json", "Pfad zur Konfigurationsdatei")
	port := flag.String("port", "", "Server-Port (überschreibt die Konfiguration)")
	flag.Parse()

	// Konfiguration laden, beim ersten Start wird sie angelegt
	cfg, cfgErr := config.LoadOrCreate(*configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	envErr := cfg.ApplyEnv()
	if *port != "" {
		cfg.ServerPort = *port
	}

	log := logger.New(cfg.LogLevel)

	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Info().Msg("🎓 LERNTRACKER - Start")
	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	log.Info().Msg("📋 Lade Konfiguration...")
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("⚠️  Konnte Konfiguration nicht laden, verwende Standardwerte")
	}
	if envErr != nil {
		log.Fatal().Err(envErr).Msg("❌ Ungültige Umgebungsvariablen")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Ungültige Zeitzone")
	}
	log.Info().
		Str("zeitzone", loc.String()).
		Int("due_soon_days", cfg.DueSoonDays).
		Int("warning_days", cfg.WarningDays).
		Msg("   ✓ Konfiguration geladen")

	// Speicher initialisieren
	log.Info().Msg("💾 Initialisiere Speicher...")
	store := storage.NewMemoryStorage(
		storage.WithLocation(loc),
		storage.WithContactLimit(cfg.ContactLimit),
		storage.WithLogger(log.With().Str("component", "storage").Logger()),
	)
	if cfg.SeedDemoData {
		if err := seed.Load(store, loc); err != nil {
			log.Fatal().Err(err).Msg("❌ Fehler beim Laden der Demo-Daten")
		}
		log.Info().Int("kurse", len(store.GetAllCourses())).Msg("   ✓ Demo-Daten geladen")
	} else {
		log.Info().Msg("   ✓ Leerer Speicher")
	}

	// API-Handler und Router erstellen
	handler := api.NewHandler(store, cfg, log.With().Str("component", "api").Logger())
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info().Msg("⏹️  Server wird heruntergefahren...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Shutdown nicht sauber beendet")
			server.Close()
		}
	}()

	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Info().Msgf("✅ Server läuft auf: http://localhost:%s", cfg.ServerPort)
	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Info().Msgf("📡 Live-Updates: ws://localhost:%s/api/v1/ws", cfg.ServerPort)
	log.Info().Msg("💡 Drücke Strg+C zum Beenden")

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server-Fehler")
	}
}
