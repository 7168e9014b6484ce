package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by INTROSPECT_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("INTROSPECT_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
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

// DataDir is the directory holding the four persisted documents: the episodic
// log, beliefs, cognitive patterns, and tensions.
func DataDir() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		return "experience"
	}
	return dir
}

// LLMProvider returns the configured LLM provider.
// Valid values: ollama, mock. Defaults to "ollama".
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "ollama"
	}
	return p
}

func OllamaURL() string {
	return os.Getenv("OLLAMA_URL")
}

func LLMModel() string {
	m := os.Getenv("LLM_MODEL")
	if m == "" {
		return "mistral"
	}
	return m
}

// LLMTimeout is the per-call adapter timeout. Model calls are the only slow
// operation in the system, so the default is generous.
func LLMTimeout() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("LLM_TIMEOUT_SECONDS"))
	if err != nil || secs <= 0 {
		return 180 * time.Second
	}
	return time.Duration(secs) * time.Second
}

// ReflectionWindow is how many recent interactions each reflection run reads.
func ReflectionWindow() int {
	n, err := strconv.Atoi(os.Getenv("REFLECTION_WINDOW"))
	if err != nil || n <= 0 {
		return 50
	}
	return n
}

// SynthesisWindow is recognized but reserved: synthesis currently considers
// the full belief set, not a windowed subset.
func SynthesisWindow() int {
	n, err := strconv.Atoi(os.Getenv("SYNTHESIS_WINDOW"))
	if err != nil || n <= 0 {
		return 200
	}
	return n
}

// MinBeliefConfidence is the filter floor applied to reflection output.
func MinBeliefConfidence() float64 {
	return floatEnv("MIN_BELIEF_CONFIDENCE", 0.6)
}

// MinPatternConfidence is the documented floor for synthesis output. It is
// carried in the prompt contract, not separately enforced.
func MinPatternConfidence() float64 {
	return floatEnv("MIN_PATTERN_CONFIDENCE", 0.65)
}

func ReflectTemperature() float64 {
	return floatEnv("REFLECT_TEMPERATURE", 0.3)
}

func SynthesizeTemperature() float64 {
	return floatEnv("SYNTHESIZE_TEMPERATURE", 0.25)
}

func TransferTemperature() float64 {
	return floatEnv("TRANSFER_TEMPERATURE", 0.5)
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func floatEnv(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}
	return v
}
