package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"ctxreduce/internal/compare"
	"ctxreduce/internal/config"
	"ctxreduce/internal/domain"
	"ctxreduce/internal/embedding"
	"ctxreduce/internal/reducer"
	"ctxreduce/internal/segmenter"
	"ctxreduce/internal/tui"
)

func main() {
	_ = godotenv.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ctxreduce/config.yaml if not provided)")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: ctxreduce-tui [--config=config.yaml] document.txt")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	emb, seg, err := assemble(cfg)
	if err != nil {
		log.Error("failed to assemble providers", "error", err)
		os.Exit(1)
	}

	embReducer, err := reducer.NewEmbedding(emb, cfg.Reducer.TopK, cfg.Reducer.ContextBefore, cfg.Reducer.ContextAfter)
	if err != nil {
		log.Error("invalid embedding reducer parameters", "error", err)
		os.Exit(1)
	}
	segReducer, err := reducer.NewSegment(seg, cfg.Reducer.MaxSegments)
	if err != nil {
		log.Error("invalid segmentation reducer parameters", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Error("failed to read document", "path", args[0], "error", err)
		os.Exit(1)
	}

	harness := compare.NewHarness(embReducer, segReducer, string(data))
	m := tui.New(harness)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Error("tui exited with error", "error", err)
		os.Exit(1)
	}
}

// assemble builds the similarity and segmentation providers from config.
func assemble(cfg *config.AppConfig) (domain.Embedder, domain.Segmenter, error) {
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = embedding.NewTFIDF()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, nil, fmt.Errorf("openai embedder config missing")
		}
		client, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		emb = client
	default:
		return nil, nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var seg domain.Segmenter
	switch cfg.Segmenter.Type {
	case "texttiling", "":
		seg = segmenter.NewTextTiling(cfg.Segmenter.W, cfg.Segmenter.K)
	case "paragraph":
		seg = segmenter.NewParagraph(cfg.Segmenter.ParagraphsPerSegment)
	default:
		return nil, nil, fmt.Errorf("unknown segmenter: %s", cfg.Segmenter.Type)
	}
	return emb, seg, nil
}
