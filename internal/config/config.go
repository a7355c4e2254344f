package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eduforge/lms-backend/internal/pkg/envutil"
)

type Server struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type OpenAI struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	ChatModel      string `yaml:"chat_model"`
	EmbedModel     string `yaml:"embed_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Redis struct {
	Addr string `yaml:"addr"`
}

type Render struct {
	FontRegular string `yaml:"font_regular"`
	FontBold    string `yaml:"font_bold"`
}

type Workflow struct {
	AcceptScore    float64 `yaml:"accept_score"`
	MaxAttempts    int     `yaml:"max_attempts"`
	RetrievalLimit int     `yaml:"retrieval_limit"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	OpenAI   OpenAI   `yaml:"openai"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Render   Render   `yaml:"render"`
	Workflow Workflow `yaml:"workflow"`
}

// Load reads the optional YAML file at CONFIG_PATH, then applies
// environment overrides on top. Env always wins.
func Load() (*Config, error) {
	cfg := &Config{
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		OpenAI: OpenAI{
			BaseURL:        "https://openrouter.ai/api/v1",
			ChatModel:      "meta-llama/llama-4-maverick:free",
			EmbedModel:     "text-embedding-3-small",
			TimeoutSeconds: 180,
		},
		Postgres: Postgres{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "eduforge",
		},
		Workflow: Workflow{
			AcceptScore:    90.0,
			MaxAttempts:    5,
			RetrievalLimit: 5,
		},
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Server.Addr = envutil.String("SERVER_ADDR", cfg.Server.Addr)
	if origins := envutil.String("CORS_ORIGINS", ""); origins != "" {
		parts := strings.Split(origins, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		cfg.Server.CORSOrigins = out
	}

	cfg.OpenAI.APIKey = envutil.String("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.BaseURL = envutil.String("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.OpenAI.ChatModel = envutil.String("OPENAI_CHAT_MODEL", cfg.OpenAI.ChatModel)
	cfg.OpenAI.EmbedModel = envutil.String("OPENAI_EMBED_MODEL", cfg.OpenAI.EmbedModel)
	cfg.OpenAI.TimeoutSeconds = envutil.Int("OPENAI_TIMEOUT_SECONDS", cfg.OpenAI.TimeoutSeconds)

	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)

	cfg.Render.FontRegular = envutil.String("RENDER_FONT_REGULAR", cfg.Render.FontRegular)
	cfg.Render.FontBold = envutil.String("RENDER_FONT_BOLD", cfg.Render.FontBold)

	cfg.Workflow.AcceptScore = envutil.Float("GEN_ACCEPT_SCORE", cfg.Workflow.AcceptScore)
	cfg.Workflow.MaxAttempts = envutil.Int("GEN_MAX_ATTEMPTS", cfg.Workflow.MaxAttempts)
	cfg.Workflow.RetrievalLimit = envutil.Int("GEN_RETRIEVAL_LIMIT", cfg.Workflow.RetrievalLimit)

	return cfg, nil
}

func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name,
	)
}
