package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/webqa"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Service   webqa.QueryService
	Fetcher   webqa.Fetcher
	Extractor webqa.Extractor
	Metrics   http.Handler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config `embed:""`

	Serve   ServeCmd   `cmd:"" help:"Serve the prediction API over HTTP"`
	Ask     AskCmd     `cmd:"" help:"Answer a single question and print the response as JSON"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch a page and print the text the pipeline would see"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// Config holds settings shared by all commands. Every flag can also be set
// through its environment variable.
type Config struct {
	LogLevel  string `name:"log-level" env:"LOGGING_LEVEL" default:"debug" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" env:"LOG_FORMAT" default:"text" enum:"text,json" help:"Log format (text, json)"`

	LLM               string        `name:"llm" env:"LLM_PROVIDER" default:"openai" enum:"openai,gemini" help:"LLM provider (openai, gemini)"`
	APIKey            string        `name:"api-key" env:"OPENAI_API_KEY" help:"API key for the OpenAI-compatible endpoint"`
	Endpoint          string        `name:"endpoint" env:"OPENAI_ENDPOINT" help:"Base URL of the OpenAI-compatible endpoint"`
	GeminiAPIKey      string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"API key for Google Gemini"`
	Model             string        `name:"model" env:"OPENAI_MODEL_NAME" help:"Model name (defaults to the provider's default)"`
	SystemInstruction string        `name:"system-instruction" env:"SYSTEM_INSTRUCTION" help:"System message sent with every prompt"`
	LLMTimeout        time.Duration `name:"llm-timeout" env:"LLM_TIMEOUT" default:"60s" help:"Timeout for a single LLM call"`

	Search        string        `name:"search" env:"SEARCH_BACKEND" default:"duckduckgo" enum:"duckduckgo,google" help:"Search backend (duckduckgo, google)"`
	SearchTimeout time.Duration `name:"search-timeout" env:"SEARCH_TIMEOUT" default:"15s" help:"Timeout for a search request"`
	MaxLinks      int           `name:"max-links" env:"MAX_LINKS" default:"1" help:"Number of search results used as sources"`

	FetchBackend string        `name:"fetcher" env:"FETCH_BACKEND" default:"http" enum:"http,rod" help:"Page fetcher (http, rod)"`
	Extractor    string        `name:"extractor" env:"EXTRACTOR" default:"text" enum:"text,trafilatura,readability,markdown" help:"Page text extractor (text, trafilatura, readability, markdown)"`
	FetchTimeout time.Duration `name:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10s" help:"Timeout for a single page fetch"`
	Concurrency  int           `name:"concurrency" env:"FETCH_CONCURRENCY" default:"1" help:"Pages fetched at once"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Address        string        `env:"APP_ADDRESS" default:"0.0.0.0" help:"Address to listen on"`
	Port           int           `env:"APP_PORT" default:"8080" help:"Port to listen on"`
	Prefix         string        `env:"API_PREFIX" default:"/api" help:"Path prefix for API routes"`
	Name           string        `env:"APP_NAME" default:"webqa" help:"Application name reported by /healthz"`
	AppVersion     string        `name:"app-version" env:"APP_VERSION" default:"0.0.1" help:"Application version reported by /healthz"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"120s" help:"Timeout for a whole prediction request"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Query string `arg:"" help:"Question, optionally followed by numbered options"`
	ID    int    `default:"0" help:"Request id echoed in the response"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
