package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	PersonaDir string `env:"PERSONA_DIR" envDefault:"personas"`

	// Backend de generacion. Con LLM_ENABLED=false (o sin API key) se usa
	// el cliente echo local.
	LLMEnabled bool   `env:"LLM_ENABLED" envDefault:"false"`
	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Opcionales: log de transcripciones y limite de turnos.
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TurnRateWindowSeconds int `env:"TURN_RATE_WINDOW_SECONDS" envDefault:"60"`
	TurnRateMax           int `env:"TURN_RATE_MAX" envDefault:"30"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
