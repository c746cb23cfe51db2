package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           int
	BaseURL        string // Public base URL of this API (e.g. http://localhost:8080)
	GameOriginURL  string // Origin that hosts provider game bundles, prepended to launcher directive paths
	ProviderImgURL string // CDN base for provider artwork

	UploadDir       string // Local root for proof-of-payment uploads (mounted bucket)
	UploadPublicURL string // Base URL fronting UploadDir

	SMTPHost       string
	SMTPPort       int
	SMTPFrom       string
	SMTPPass       string
	SMTPReplyTo    string
	SMTPRecipients string // comma separated

	TelegramBotToken string
	TelegramChatID   string

	SessionIdleTimeout time.Duration // inactivity window before auto-logout
	SessionWarning     time.Duration // remaining-idle threshold surfaced to clients
}

func Load() *Config {
	port := 8080
	// Prefer PORT (Render, Fly.io, Railway, etc.) then PORTAL_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("PORTAL_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	baseURL := os.Getenv("PORTAL_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	gameOrigin := os.Getenv("GAME_ORIGIN_BASE_URL")
	if gameOrigin == "" {
		gameOrigin = "https://kudetabet98mejackpot.net"
	}
	providerImg := os.Getenv("PROVIDER_IMAGE_BASE_URL")
	if providerImg == "" {
		providerImg = "https://d33egg70nrp50s.cloudfront.net/Images/providers-v2"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploadPublicURL := os.Getenv("UPLOAD_PUBLIC_URL")
	if uploadPublicURL == "" {
		uploadPublicURL = baseURL + "/uploads"
	}
	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			smtpPort = v
		}
	}
	idle := 5 * time.Minute
	if d := os.Getenv("SESSION_IDLE_TIMEOUT"); d != "" {
		if v, err := time.ParseDuration(d); err == nil && v > 0 {
			idle = v
		}
	}
	warning := time.Minute
	if d := os.Getenv("SESSION_WARNING"); d != "" {
		if v, err := time.ParseDuration(d); err == nil && v > 0 {
			warning = v
		}
	}
	return &Config{
		Port:               port,
		BaseURL:            baseURL,
		GameOriginURL:      gameOrigin,
		ProviderImgURL:     providerImg,
		UploadDir:          uploadDir,
		UploadPublicURL:    uploadPublicURL,
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           smtpPort,
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		SMTPReplyTo:        os.Getenv("SMTP_REPLY_TO"),
		SMTPRecipients:     os.Getenv("SMTP_RECIPIENTS"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
		SessionIdleTimeout: idle,
		SessionWarning:     warning,
	}
}
