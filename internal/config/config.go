package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Analysis AnalysisConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	analysis, err := loadAnalysisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Analysis: analysis}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey            string
	AccessKey         string
	SecretKey         string
	Model             string
	BaseURL           string
	Region            string
	Temperature       *float64
	TopP              *float64
	MaxTokens         *int
	ClassifierEnabled bool
	ClassifierTimeout time.Duration
}

// AnalysisConfig 描述规则打分与会话分析的可调参数。
type AnalysisConfig struct {
	WindowSize     int
	StrongWeight   float64
	ModerateWeight float64
	BoosterWeight  float64
	TieMargin      float64
	MaxTextLength  int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	classifierEnabled, err := parseBoolEnv("AI_CLASSIFIER_ENABLED", false)
	if err != nil {
		return AIConfig{}, err
	}

	classifierTimeout := 10 * time.Second
	if timeoutOverride, err := parseOptionalIntEnv("AI_CLASSIFIER_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if timeoutOverride != nil && *timeoutOverride > 0 {
		classifierTimeout = time.Duration(*timeoutOverride) * time.Second
	}

	return AIConfig{
		APIKey:            strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:         strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:         strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:             strings.TrimSpace(os.Getenv("Model")),
		BaseURL:           getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:            getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:       temperature,
		TopP:              topP,
		MaxTokens:         maxTokens,
		ClassifierEnabled: classifierEnabled,
		ClassifierTimeout: classifierTimeout,
	}, nil
}

func loadAnalysisConfig() (AnalysisConfig, error) {
	cfg := AnalysisConfig{
		WindowSize:     5,
		StrongWeight:   4,
		ModerateWeight: 2,
		BoosterWeight:  1,
		TieMargin:      1.0,
		MaxTextLength:  1000,
	}

	if windowSize, err := parseOptionalIntEnv("ANALYSIS_WINDOW_SIZE"); err != nil {
		return AnalysisConfig{}, err
	} else if windowSize != nil {
		if *windowSize < 1 {
			return AnalysisConfig{}, fmt.Errorf("ANALYSIS_WINDOW_SIZE must be at least 1, got %d", *windowSize)
		}
		cfg.WindowSize = *windowSize
	}

	if maxLen, err := parseOptionalIntEnv("TEXT_MAX_LENGTH"); err != nil {
		return AnalysisConfig{}, err
	} else if maxLen != nil && *maxLen > 0 {
		cfg.MaxTextLength = *maxLen
	}

	weights := []struct {
		key    string
		target *float64
	}{
		{"SCORE_STRONG_WEIGHT", &cfg.StrongWeight},
		{"SCORE_MODERATE_WEIGHT", &cfg.ModerateWeight},
		{"SCORE_BOOSTER_WEIGHT", &cfg.BoosterWeight},
		{"SCORE_TIE_MARGIN", &cfg.TieMargin},
	}
	for _, w := range weights {
		override, err := parseOptionalFloatEnv(w.key)
		if err != nil {
			return AnalysisConfig{}, err
		}
		if override != nil {
			if *override < 0 {
				return AnalysisConfig{}, fmt.Errorf("%s must not be negative, got %v", w.key, *override)
			}
			*w.target = *override
		}
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
