// Package ingest imports social media exports into the episodic log.
//
// Supported platforms and their export formats:
//
//	WhatsApp    .txt       (Settings -> Chats -> Export Chat)
//	Twitter/X   tweets.js  (Settings -> Your Account -> Download Archive)
//	LinkedIn    posts.csv and messages.csv
//	Instagram   JSON       (Download Your Information)
//	Telegram    result.json (Desktop App -> Export Telegram Data)
//	Generic     .csv or .json with any flat text structure
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"go.uber.org/zap"
)

const (
	PlatformWhatsApp         = "whatsapp"
	PlatformTwitter          = "twitter"
	PlatformLinkedInPosts    = "linkedin_posts"
	PlatformLinkedInMessages = "linkedin_messages"
	PlatformInstagram        = "instagram"
	PlatformTelegram         = "telegram"
	PlatformCSV              = "csv"
	PlatformJSON             = "json"
)

// SupportedPlatforms lists every platform key Ingest accepts.
var SupportedPlatforms = []string{
	PlatformWhatsApp, PlatformTwitter, PlatformLinkedInPosts,
	PlatformLinkedInMessages, PlatformInstagram, PlatformTelegram,
	PlatformCSV, PlatformJSON,
}

// ErrUnknownPlatform is returned when the platform key is not one of
// SupportedPlatforms.
var ErrUnknownPlatform = fmt.Errorf("unknown platform (supported: %s)", strings.Join(SupportedPlatforms, ", "))

// Journal is the sink ingested exchanges are appended to.
type Journal interface {
	Append(ctx context.Context, question, answer string, extraTags []string) (*domain.Interaction, error)
}

// Result reports what an ingest run parsed and wrote.
type Result struct {
	Platform      string   `json:"platform"`
	TotalParsed   int      `json:"total_parsed"`
	TotalIngested int      `json:"total_ingested"`
	Skipped       int      `json:"skipped"`
	Errors        []string `json:"errors,omitempty"`
}

// Summary renders the result as a single log-friendly line.
func (r *Result) Summary() string {
	s := fmt.Sprintf("[%s] %d ingested | %d skipped | %d total parsed",
		r.Platform, r.TotalIngested, r.Skipped, r.TotalParsed)
	if len(r.Errors) > 0 {
		s += fmt.Sprintf(" | %d errors", len(r.Errors))
	}
	return s
}

// exchange is one normalised question/answer pair extracted from an export.
// Posts (monologues) carry an empty question; chats carry the other party's
// preceding message as the question.
type exchange struct {
	Question  string
	Answer    string
	ExtraTags []string
}

// makeExchange attaches the platform provenance tags every ingested entry
// carries.
func makeExchange(question, answer, platform string, extraTags ...string) exchange {
	tags := append([]string{"source:" + platform, "social_media"}, extraTags...)
	return exchange{
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		ExtraTags: tags,
	}
}

// Service parses platform exports and appends the extracted exchanges to the
// episodic log through the journal.
type Service struct {
	journal Journal
	logger  *zap.Logger
}

func NewService(journal Journal, logger *zap.Logger) *Service {
	return &Service{journal: journal, logger: logger}
}

// Ingest parses source as a platform export and writes the extracted
// exchanges to the log. userHandle identifies the user's own messages in chat
// exports; posts-only platforms ignore it.
func (s *Service) Ingest(ctx context.Context, source, platform, userHandle string) (*Result, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	result := &Result{Platform: platform}

	var entries []exchange
	switch platform {
	case PlatformWhatsApp:
		entries = parseWhatsApp(source, userHandle)
	case PlatformTwitter:
		entries = parseTwitter(source)
	case PlatformLinkedInPosts:
		entries = parseLinkedInPosts(source)
	case PlatformLinkedInMessages:
		entries = parseLinkedInMessages(source, userHandle)
	case PlatformInstagram:
		entries = parseInstagram(source, userHandle)
	case PlatformTelegram:
		entries = parseTelegram(source, userHandle)
	case PlatformCSV:
		entries = parseGenericCSV(source)
	case PlatformJSON:
		entries = parseGenericJSON(source)
	default:
		return nil, fmt.Errorf("%q: %w", platform, ErrUnknownPlatform)
	}

	result.TotalParsed = len(entries)

	for _, e := range entries {
		if e.Answer == "" {
			result.Skipped++
			continue
		}
		if _, err := s.journal.Append(ctx, e.Question, e.Answer, e.ExtraTags); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.TotalIngested++
	}

	s.logger.Info("ingest complete",
		zap.String("platform", platform),
		zap.Int("parsed", result.TotalParsed),
		zap.Int("ingested", result.TotalIngested),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// IngestFile reads an export file and ingests it. An empty platform is
// auto-detected from the filename.
func (s *Service) IngestFile(ctx context.Context, path, platform, userHandle string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	if platform == "" {
		platform = DetectPlatform(filepath.Base(path))
	}
	return s.Ingest(ctx, string(data), platform, userHandle)
}

// DetectPlatform guesses the platform from an export filename.
func DetectPlatform(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "whatsapp") || strings.HasSuffix(name, ".txt"):
		return PlatformWhatsApp
	case strings.Contains(name, "tweet"):
		return PlatformTwitter
	case strings.Contains(name, "message") && strings.HasSuffix(name, ".csv"):
		return PlatformLinkedInMessages
	case strings.HasSuffix(name, ".csv"):
		return PlatformLinkedInPosts
	case strings.Contains(name, "telegram") || strings.Contains(name, "result"):
		return PlatformTelegram
	case strings.HasSuffix(name, ".json"):
		return PlatformInstagram
	default:
		return PlatformJSON
	}
}
