package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

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
)

var (
	cfg struct {
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
		Window      int    `help:"Short-term memory window size per session; 0 keeps it unbounded" default:"0"`
		SampleCount int    `help:"Number of recommendations per answer" default:"3"`
		SessionId   string `help:"Optional fixed session identifier" default:""`

		Debug bool `help:"Enable debug logging" default:"false"`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	// Load the catalog
	store, err := catalog.LoadStore(cfg.GamesCsv, cfg.CafesCsv)
	if err != nil {
		log.Fatalf("❌ failed to load catalog: %v", err)
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
			log.Fatalf("❌ failed to connect to vector store: %v", err)
		}
		opts = append(opts, boardbot.WithStoreFactory(func() index.Store { return pg }))
	}

	// Create the assistant
	assistant := boardbot.New(store, opts...)

	sess := assistant.NewSession(cfg.SessionId)
	fmt.Printf("✅ Started Session: %s\n", sess.ID())
	fmt.Println("보드게임 봇입니다. 질문을 입력하고 엔터를 누르세요.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Error reading input:", err)
			continue
		}
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			fmt.Println("Goodbye!")
			return
		}

		reply, err := assistant.Ask(ctx, sess.ID(), input)
		if err != nil {
			fmt.Println("Error generating response:", err)
			continue
		}
		fmt.Printf("%s\n", reply.Answer)
		fmt.Println("---")
	}
}
