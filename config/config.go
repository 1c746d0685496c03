package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	ModeKeyValue  = "keyvalue"
	ModeSubstring = "substring"
	ModeTool      = "tool"

	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type Config struct {
	// Which service answers extraction and follow-up prompts
	Provider   string     `yaml:"provider" example:"gemini" validate:"oneof=gemini openai"`
	Gemini     Gemini     `yaml:"gemini"`
	OpenAI     OpenAI     `yaml:"openai"`
	Extraction Extraction `yaml:"extraction"`
	Followup   Followup   `yaml:"followup"`
	Transcript Transcript `yaml:"transcript"`
	Log        Log        `yaml:"log"`
}

type Gemini struct {
	// Falls back to GOOGLE_API_KEY
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model" example:"gemini-2.0-flash" validate:"required"`
}

type OpenAI struct {
	// Falls back to OPENAI_API_KEY
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"omitempty,url"`
	Model   string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Extraction struct {
	// keyvalue, substring or tool
	Mode string `yaml:"mode" example:"keyvalue" validate:"oneof=keyvalue substring tool"`
	// Reject every value containing "not", as the first version did
	LegacyAccept bool `yaml:"legacy_accept" example:"false"`
}

type Followup struct {
	// Ask from local templates when the service fails
	LocalFallback bool `yaml:"local_fallback" example:"true"`
}

type Transcript struct {
	Driver string `yaml:"driver" example:"file" validate:"oneof=memory file sqlite"`
	// Directory for the file driver, database file for sqlite
	Path string `yaml:"path" example:"chat_history" validate:"required_unless=Driver memory"`
}

type Log struct {
	Level string `yaml:"level" example:"info" validate:"oneof=debug info warn error"`
	// Rotated JSON log file, disabled when empty
	File string `yaml:"file" example:"logs/intake.log"`
}

// Load reads path when it is not empty, then .env, then the environment.
func Load(path string) (*Config, error) {
	var result Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to load .env: %w", err)
	}
	applyEnv(&result)
	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}
	if result.Extraction.Mode == ModeTool && result.Provider != ProviderOpenAI {
		return nil, oops.Errorf("extraction mode %q requires provider %q", ModeTool, ProviderOpenAI)
	}

	return &result, nil
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI.APIKey
	}
	return c.Gemini.APIKey
}

func applyEnv(c *Config) {
	if v := os.Getenv("INTAKEAGENT_PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
}

func applyDefaults(c *Config) {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Extraction.Mode == "" {
		c.Extraction.Mode = ModeKeyValue
	}
	if c.Transcript.Driver == "" {
		c.Transcript.Driver = DriverFile
	}
	if c.Transcript.Path == "" {
		switch c.Transcript.Driver {
		case DriverFile:
			c.Transcript.Path = "chat_history"
		case DriverSQLite:
			c.Transcript.Path = "chat_history.db"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
