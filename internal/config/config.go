package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Groq struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"groq"`
	Builder struct {
		AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
		ChromePath       string        `mapstructure:"chrome_path"`
	} `mapstructure:"builder"`
}

func LoadConfig() (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, reading environment only")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "3000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("auth.token_lifespan", "24h")
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "compound-beta")
	viper.SetDefault("builder.autosave_interval", "60s")

	viper.BindEnv("app.port", "APP_PORT", "PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DATABASE_URL")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("groq.base_url", "GROQ_API_URL")
	viper.BindEnv("groq.api_key", "GROQ_API_KEY")
	viper.BindEnv("groq.model", "GROQ_MODEL")
	viper.BindEnv("builder.autosave_interval", "AUTOSAVE_INTERVAL")
	viper.BindEnv("builder.chrome_path", "CHROME_PATH")

	err = viper.Unmarshal(&cfg)
	return
}
