package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/boardbot/boardbot"
	"github.com/boardbot/boardbot/catalog"
	"github.com/boardbot/boardbot/embedder"
	openaiembedder "github.com/boardbot/boardbot/embedder/openai"
	"github.com/boardbot/boardbot/generator"
	openaigenerator "github.com/boardbot/boardbot/generator/openai"
	"github.com/boardbot/boardbot/index"
	"github.com/boardbot/boardbot/index/postgres"
	serverhttp "github.com/boardbot/boardbot/server/http"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the http server to listen on" default:":8080"`

		// Catalog config
		GamesCsv string `help:"Path to the board game catalog CSV" default:"data/boardgames.csv"`
		CafesCsv string `help:"Path to the cafe catalog CSV" default:"data/cafes.csv"`

		// Model config
		ApiKey         string `help:"API Key for the embedder and generator" env:"OPENAI_API_KEY" default:""`
		EmbedderModel  string `help:"Model identifier for embeddings" default:"text-embedding-3-small"`
		GeneratorModel string `help:"Model identifier for answer generation" default:"gpt-3.5-turbo"`

		// Index config
		StoreLocation string `help:"Optional postgres connection string for the vector store" default:""`
		TopK          int    `help:"Number of chunks retrieved per answer" default:"4"`

		// Conversation config
		Window      int `help:"Short-term memory window size per session; 0 keeps it unbounded" default:"0"`
		SampleCount int `help:"Number of recommendations per answer" default:"3"`

		Debug bool `help:"Enable debug logging" default:"false"`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("service", "boardbot-api").Logger()

	// Load the catalog
	store, err := catalog.LoadStore(cfg.GamesCsv, cfg.CafesCsv)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	opts := []boardbot.Option{
		boardbot.WithLogger(logger),
		boardbot.WithWindow(cfg.Window),
		boardbot.WithSampleCount(cfg.SampleCount),
		boardbot.WithTopK(cfg.TopK),
	}

	if len(cfg.ApiKey) > 0 {
		opts = append(opts,
			boardbot.WithEmbedder(openaiembedder.NewEmbedder(
				embedder.WithApiKey(cfg.ApiKey),
				embedder.WithModel(cfg.EmbedderModel),
			)),
			boardbot.WithGenerator(openaigenerator.NewGenerator(
				generator.WithApiKey(cfg.ApiKey),
				generator.WithModel(cfg.GeneratorModel),
				generator.WithTemperature(0),
			)),
		)
	}

	if len(cfg.StoreLocation) > 0 {
		// one catalog corpus serves every session; the fixed scope lets a
		// rebuild after a restart overwrite the previous rows
		pg, err := postgres.NewStore(
			postgres.WithLocation(cfg.StoreLocation),
			postgres.WithSession("catalog"),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to vector store")
		}
		opts = append(opts, boardbot.WithStoreFactory(func() index.Store { return pg }))
	}

	// Create the assistant and server
	assistant := boardbot.New(store, opts...)

	srv := serverhttp.NewServer(
		assistant,
		serverhttp.WithAddress(cfg.Address),
		serverhttp.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
		logger.Info().Msg("server stopped")
	}
}
