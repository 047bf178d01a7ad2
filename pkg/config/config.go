package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the full service configuration
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Chat      ChatConfig      `yaml:"chat"`
	LLM       LLMConfig       `yaml:"llm"`
	VectorDB  VectorDBConfig  `yaml:"vectordb"`
	Documents DocumentsConfig `yaml:"documents"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig represents HTTP server settings
type ServerConfig struct {
	Address string    `yaml:"address"`
	TLS     TLSConfig `yaml:"tls"`
}

// TLSConfig represents TLS settings
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// ChatConfig represents websocket chat settings
type ChatConfig struct {
	// ReceiveTimeout is how long a session waits for the next
	// question before being closed, in seconds.
	ReceiveTimeout int    `yaml:"receive_timeout_seconds"`
	SendRetries    int    `yaml:"send_retries"`
	Greeting       string `yaml:"greeting"`
}

// LLMConfig represents language model settings
type LLMConfig struct {
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embedding_model"`
	Temperature    float64 `yaml:"temperature"`
}

// VectorDBConfig represents vector store settings
type VectorDBConfig struct {
	Type string `yaml:"type"` // memory | sqlite | mysql | postgres
	// Path is the database file for sqlite, or a DSN for mysql/postgres.
	Path string `yaml:"path"`
	TopK int    `yaml:"top_k"`
	// MinSimilarity drops retrieved passages scoring below this threshold.
	MinSimilarity float64 `yaml:"min_similarity"`
}

// DocumentsConfig represents uploaded document settings
type DocumentsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultGreeting is sent right after a chat connection is accepted.
const DefaultGreeting = "Hello! I'm here to help with the PDF that you have uploaded. Please ask any question you may have."

// DefaultConfig returns default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Address: ":8000",
		},
		Chat: ChatConfig{
			ReceiveTimeout: 3600,
			SendRetries:    3,
			Greeting:       DefaultGreeting,
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-large",
			Temperature:    0.5,
		},
		VectorDB: VectorDBConfig{
			Type:          "sqlite",
			Path:          "./vectors.db",
			TopK:          20,
			MinSimilarity: 0.2,
		},
		Documents: DocumentsConfig{
			Dir:   "./documents",
			Watch: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	if configPath != "" {
		if err := loadFromFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string, config *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(config *AppConfig) {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		config.Server.Address = addr
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}

	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}

	if dbType := os.Getenv("VECTORDB_TYPE"); dbType != "" {
		config.VectorDB.Type = dbType
	}

	if dbPath := os.Getenv("VECTORDB_PATH"); dbPath != "" {
		config.VectorDB.Path = dbPath
	}

	if dir := os.Getenv("DOCUMENTS_DIR"); dir != "" {
		config.Documents.Dir = dir
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}

	if timeout := os.Getenv("CHAT_RECEIVE_TIMEOUT"); timeout != "" {
		if val, err := strconv.Atoi(timeout); err == nil {
			config.Chat.ReceiveTimeout = val
		}
	}
}

// Validate validates the configuration
func (c *AppConfig) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" || c.Server.TLS.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert_file or key_file missing")
		}
	}

	if c.Chat.ReceiveTimeout <= 0 {
		return fmt.Errorf("chat receive timeout must be positive")
	}

	if c.Chat.SendRetries <= 0 {
		return fmt.Errorf("chat send retries must be positive")
	}

	switch c.VectorDB.Type {
	case "memory", "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported vectordb type: %s", c.VectorDB.Type)
	}

	if c.VectorDB.Type != "memory" && c.VectorDB.Path == "" {
		return fmt.Errorf("vectordb path cannot be empty for type %s", c.VectorDB.Type)
	}

	if c.VectorDB.TopK <= 0 {
		return fmt.Errorf("vectordb top_k must be positive")
	}

	return nil
}
