package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"reportserver/gemini"
	healthget "reportserver/handlers/health/get"
	summarizepost "reportserver/handlers/summarize/post"
	"reportserver/pdftext"
	"reportserver/prompt"

	"github.com/rs/cors"
)

type ServeCommand struct {
	Port            int           `help:"The port to listen on." env:"PORT" default:"4000"`
	FrontendURL     string        `help:"The front-end origin allowed by CORS." env:"FRONTEND_URL" default:"http://localhost:5173"`
	GoogleAPIKey    string        `help:"The API key for the generative-language API." env:"GOOGLE_API_KEY" default:""`
	GeminiAPIKey    string        `help:"Alternative API key, used when --google-api-key is not set." env:"GEMINI_API_KEY" default:""`
	UpstreamURL     string        `help:"The base URL of the generative-language API." env:"GENERATIVE_LANGUAGE_URL" default:"https://generativelanguage.googleapis.com"`
	Model           string        `help:"The model to summarize with." env:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	UpstreamTimeout time.Duration `help:"The timeout on the outbound summarization call." env:"UPSTREAM_TIMEOUT" default:"2m"`
	MaxBodyBytes    int64         `help:"The maximum request body size in bytes." env:"MAX_BODY_BYTES" default:"52428800"`
	PromptFile      string        `help:"A file containing a custom instruction block." env:"PROMPT_FILE" default:""`
	TLSCertFile     string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile      string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel        string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(contents), nil
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	instructions, err := readFileOrDefault(c.PromptFile, prompt.DefaultInstructions)
	if err != nil {
		return fmt.Errorf("failed to read prompt file: %w", err)
	}

	apiKey := c.GoogleAPIKey
	if apiKey == "" {
		apiKey = c.GeminiAPIKey
	}
	var summarizer summarizepost.Summarizer
	if apiKey != "" {
		httpClient := &http.Client{Timeout: c.UpstreamTimeout}
		summarizer = gemini.New(log, c.UpstreamURL, apiKey, c.Model, httpClient)
	} else {
		log.Warn("no API key configured, summarization requests will fail")
	}

	extractor := pdftext.New()

	mux := http.NewServeMux()

	sph := summarizepost.New(log, extractor, summarizer, instructions, c.MaxBodyBytes)
	mux.Handle("POST /api/summarize", sph)

	hgh := healthget.New()
	mux.Handle("GET /health", hgh)

	withCORSMux := cors.New(cors.Options{
		AllowedOrigins: []string{c.FrontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)

	addr := fmt.Sprintf(":%d", c.Port)
	log.Info("Listening", slog.String("addr", addr))
	s := &http.Server{
		Addr:    addr,
		Handler: withCORSMux,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
