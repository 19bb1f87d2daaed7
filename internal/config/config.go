package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by POKENATOR_ENV (or .env by default),
// then the matching .secret sidecar if present. All config is flat env vars
// read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("POKENATOR_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is optional; without it the server loads the catalog from files
// and the similarity endpoint stays unregistered.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// CandidatesPath points at the candidate catalog written by the extractor.
func CandidatesPath() string {
	p := os.Getenv("CANDIDATES_PATH")
	if p == "" {
		return "data/pokemon.json"
	}
	return p
}

func QuestionsPath() string {
	p := os.Getenv("QUESTIONS_PATH")
	if p == "" {
		return "data/questions.json"
	}
	return p
}

// SessionTTL is how long an untouched session survives before the sweeper
// reclaims it. Defaults to 30 minutes.
func SessionTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// RateLimitRPS returns requests per second limit. Defaults to 100.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting. Defaults to 20.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error). Defaults to info.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// PokeAPIBaseURL allows pointing the extractor at a mirror.
func PokeAPIBaseURL() string {
	u := os.Getenv("POKEAPI_BASE_URL")
	if u == "" {
		return "https://pokeapi.co/api/v2"
	}
	return u
}

// ExtractInterval paces extractor requests against the public API.
// Defaults to one request per second.
func ExtractInterval() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("EXTRACT_INTERVAL_MS"))
	if err != nil || ms <= 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}
