package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Zaif API 설정
	Zaif struct {
		APIKey     string        `envconfig:"ZAIF_API_KEY"`
		SecretKey  string        `envconfig:"ZAIF_API_SECRET"`
		PublicURL  string        `envconfig:"ZAIF_PUBLIC_URL" default:"https://api.zaif.jp/api/1"`
		PrivateURL string        `envconfig:"ZAIF_PRIVATE_URL" default:"https://api.zaif.jp/tapi"`
		StreamURL  string        `envconfig:"ZAIF_STREAM_URL" default:"wss://ws.zaif.jp/stream"`
		Timeout    time.Duration `envconfig:"ZAIF_TIMEOUT" default:"10s"`
	}

	// 애플리케이션 설정
	App struct {
		LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
		WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"1m"`
	}
}

// HasCredentials는 비공개 API 인증 정보가 설정되었는지 반환합니다
func (c *Config) HasCredentials() bool {
	return c.Zaif.APIKey != "" && c.Zaif.SecretKey != ""
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if (cfg.Zaif.APIKey == "") != (cfg.Zaif.SecretKey == "") {
		return fmt.Errorf("ZAIF_API_KEY와 ZAIF_API_SECRET은 함께 설정해야 합니다")
	}

	for name, raw := range map[string]string{
		"ZAIF_PUBLIC_URL":  cfg.Zaif.PublicURL,
		"ZAIF_PRIVATE_URL": cfg.Zaif.PrivateURL,
		"ZAIF_STREAM_URL":  cfg.Zaif.StreamURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s가 올바른 URL이 아닙니다: %q", name, raw)
		}
	}

	if cfg.Zaif.Timeout <= 0 {
		return fmt.Errorf("ZAIF_TIMEOUT은 0보다 커야 합니다")
	}

	if cfg.App.WatchInterval < time.Second {
		return fmt.Errorf("WATCH_INTERVAL은 1초 이상이어야 합니다")
	}

	switch cfg.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL은 debug, info, warn, error 중 하나여야 합니다: %q", cfg.App.LogLevel)
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
// .env 파일은 있으면 읽고, 없으면 환경변수만 사용합니다.
func LoadConfig(filenames ...string) (*Config, error) {
	// .env 파일 로드
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env 파일 로드 실패: %w", err)
	}

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
