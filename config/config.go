package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Everything is env-driven with sane
// defaults so a local run needs nothing but AWS credentials.
type Config struct {
	Port      string
	AWSRegion string

	RedisAddr     string
	RedisPassword string

	S3Bucket string

	// MessageSecret feeds key derivation for the at-rest message cipher;
	// MessageIVSeed pins the (static) IV.
	MessageSecret string
	MessageIVSeed string

	PresenceTTL      time.Duration
	ChatSendLimit    int
	ChatSendWindow   time.Duration
	MaxMessageLength int
}

// Load reads configuration from the environment.
func Load() *Config {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("S3_BUCKET_NAME", "")
	viper.SetDefault("MESSAGE_SECRET", "")
	viper.SetDefault("MESSAGE_IV_SEED", "")
	viper.SetDefault("PRESENCE_TTL_SECONDS", 120)
	viper.SetDefault("CHAT_SEND_LIMIT", 30)
	viper.SetDefault("CHAT_SEND_WINDOW_SECONDS", 60)
	viper.SetDefault("MAX_MESSAGE_LENGTH", 2000)

	return &Config{
		Port:             viper.GetString("PORT"),
		AWSRegion:        viper.GetString("AWS_REGION"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		S3Bucket:         viper.GetString("S3_BUCKET_NAME"),
		MessageSecret:    viper.GetString("MESSAGE_SECRET"),
		MessageIVSeed:    viper.GetString("MESSAGE_IV_SEED"),
		PresenceTTL:      time.Duration(viper.GetInt("PRESENCE_TTL_SECONDS")) * time.Second,
		ChatSendLimit:    viper.GetInt("CHAT_SEND_LIMIT"),
		ChatSendWindow:   time.Duration(viper.GetInt("CHAT_SEND_WINDOW_SECONDS")) * time.Second,
		MaxMessageLength: viper.GetInt("MAX_MESSAGE_LENGTH"),
	}
}
