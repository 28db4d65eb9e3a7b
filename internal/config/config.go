package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config - глобальная конфигурация бота
type Config struct {
	Env string `envconfig:"ENV" default:"local"` // "local", "prod"

	Telegram struct {
		BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	}

	Quote struct {
		// HTTP-эндпоинт котировок TWSE MIS (подменяется на cmd/mockquote при локальной отладке)
		BaseURL string        `envconfig:"QUOTE_BASE_URL" default:"https://mis.twse.com.tw/stock/api"`
		Timeout time.Duration `envconfig:"QUOTE_TIMEOUT" default:"3s"`
	}

	// Период цикла проверки порогов
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"10s"`
}

// Load читает настройки из окружения. .env подхватываем, если он есть:
// в проде файла обычно нет, поэтому ошибку игнорируем.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
