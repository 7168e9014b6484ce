package ingest

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/introspect/internal/annotate"
	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/service"
	"github.com/Harshitk-cp/introspect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type loggedEntry struct {
	question string
	answer   string
	tags     []string
}

type recordingJournal struct {
	entries []loggedEntry
	err     error
}

func (j *recordingJournal) Append(_ context.Context, question, answer string, extraTags []string) (*domain.Interaction, error) {
	if j.err != nil {
		return nil, j.err
	}
	j.entries = append(j.entries, loggedEntry{question: question, answer: answer, tags: extraTags})
	return &domain.Interaction{Question: question, Answer: answer, Tags: extraTags}, nil
}

func newIngest(t *testing.T) (*Service, *recordingJournal) {
	t.Helper()
	journal := &recordingJournal{}
	return NewService(journal, zap.NewNop()), journal
}

const whatsappExport = `12/01/24, 9:41 AM - Priya: How did you decide between Postgres and Mongo for the new service?
12/01/24, 9:43 AM - Ashish: Postgres. The access patterns are relational
and I want transactions I can reason about.
12/01/24, 9:44 AM - Priya: Makes sense.
12/01/24, 9:45 AM - Ashish: ok`

func TestIngestWhatsAppPairsExchanges(t *testing.T) {
	svc, journal := newIngest(t)

	result, err := svc.Ingest(context.Background(), whatsappExport, "whatsapp", "Ashish")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalParsed)
	assert.Equal(t, 2, result.TotalIngested)
	require.Len(t, journal.entries, 2)

	first := journal.entries[0]
	assert.Equal(t, "How did you decide between Postgres and Mongo for the new service?", first.question)
	assert.Equal(t, "Postgres. The access patterns are relational and I want transactions I can reason about.", first.answer)
	assert.Contains(t, first.tags, "source:whatsapp")
	assert.Contains(t, first.tags, "social_media")
	assert.Contains(t, first.tags, "chat")
}

func TestIngestWhatsAppWithoutHandleKeepsLongMessages(t *testing.T) {
	svc, journal := newIngest(t)

	result, err := svc.Ingest(context.Background(), whatsappExport, "whatsapp", "")
	require.NoError(t, err)

	// Short messages ("Makes sense.", "ok") are dropped.
	assert.Equal(t, 2, result.TotalIngested)
	for _, e := range journal.entries {
		assert.Empty(t, e.question)
	}
}

const tweetsExport = `window.YTD.tweets.part0 = [
  {"tweet": {"full_text": "RT @someone: great thread on distributed consensus"}},
  {"tweet": {"full_text": "@friend totally agree", "in_reply_to_user_id": "12345"}},
  {"tweet": {"full_text": "Shipped the belief extraction pipeline today. Local models only, no API keys. https://t.co/abc123"}},
  {"tweet": {"full_text": "short"}}
]`

func TestIngestTwitterFiltersAndCleans(t *testing.T) {
	svc, journal := newIngest(t)

	result, err := svc.Ingest(context.Background(), tweetsExport, "twitter", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalIngested)
	require.Len(t, journal.entries, 1)
	assert.Equal(t, "Shipped the belief extraction pipeline today. Local models only, no API keys.", journal.entries[0].answer)
	assert.Contains(t, journal.entries[0].tags, "tweet")
	assert.Contains(t, journal.entries[0].tags, "post")
}

const telegramExport = `{
  "messages": [
    {"type": "service", "from": "Ashish", "text": "joined the group"},
    {"type": "message", "from": "Rahul", "text": "Why do you always self-host instead of using managed services?"},
    {"type": "message", "from": "Ashish", "text": [
      "Control. When ",
      {"type": "mention", "text": "@vendor"},
      " changes pricing I do not want to renegotiate my architecture."
    ]}
  ]
}`

func TestIngestTelegramFlattensEntities(t *testing.T) {
	svc, journal := newIngest(t)

	result, err := svc.Ingest(context.Background(), telegramExport, "telegram", "Ashish")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalIngested)
	require.Len(t, journal.entries, 1)
	e := journal.entries[0]
	assert.Equal(t, "Why do you always self-host instead of using managed services?", e.question)
	assert.Contains(t, e.answer, "Control.")
	assert.Contains(t, e.answer, "@vendor")
	assert.Contains(t, e.tags, "source:telegram")
}

func TestIngestLinkedInPosts(t *testing.T) {
	svc, journal := newIngest(t)

	csvExport := "Date,ShareCommentary,Visibility\n" +
		"2024-01-01,\"Lessons from running inference locally for a year: latency is a feature.\",PUBLIC\n" +
		"2024-01-02,short,PUBLIC\n"

	result, err := svc.Ingest(context.Background(), csvExport, "linkedin_posts", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalIngested)
	require.Len(t, journal.entries, 1)
	assert.Contains(t, journal.entries[0].tags, "source:linkedin")
	assert.Contains(t, journal.entries[0].tags, "post")
}

func TestIngestGenericJSONUnwrapsContainers(t *testing.T) {
	svc, journal := newIngest(t)

	source := `{"posts": [
		{"text": "A long enough post about preferring boring technology choices."},
		{"text": "too short"},
		"A bare string item that is definitely long enough to keep."
	]}`

	result, err := svc.Ingest(context.Background(), source, "json", "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalIngested)
	assert.Contains(t, journal.entries[0].tags, "imported")
}

func TestIngestGenericCSVFindsTextColumn(t *testing.T) {
	svc, journal := newIngest(t)

	source := "id,Content\n1,\"An exported comment that easily clears the length threshold.\"\n2,nope\n"

	result, err := svc.Ingest(context.Background(), source, "csv", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalIngested)
	require.Len(t, journal.entries, 1)
	assert.Contains(t, journal.entries[0].tags, "source:generic")
}

func TestIngestUnknownPlatform(t *testing.T) {
	svc, _ := newIngest(t)

	_, err := svc.Ingest(context.Background(), "data", "myspace", "")
	require.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestDetectPlatform(t *testing.T) {
	cases := map[string]string{
		"WhatsApp Chat with Priya.txt": PlatformWhatsApp,
		"tweets.js":                    PlatformTwitter,
		"messages.csv":                 PlatformLinkedInMessages,
		"Shares.csv":                   PlatformLinkedInPosts,
		"result.json":                  PlatformTelegram,
		"posts_1.json":                 PlatformInstagram,
		"export.dat":                   PlatformJSON,
	}
	for filename, want := range cases {
		assert.Equal(t, want, DetectPlatform(filename), filename)
	}
}

func TestResultSummary(t *testing.T) {
	r := &Result{Platform: "twitter", TotalParsed: 10, TotalIngested: 7, Skipped: 3}
	assert.Equal(t, "[twitter] 7 ingested | 3 skipped | 10 total parsed", r.Summary())

	r.Errors = append(r.Errors, "boom")
	assert.Contains(t, r.Summary(), "| 1 errors")
}

func TestIngestWritesThroughRealJournal(t *testing.T) {
	dir := t.TempDir()
	logStore := store.NewLogStore(dir)
	journal := service.NewJournalService(logStore, annotate.NewRegexTagger(), annotate.NewHedgeScorer(), zap.NewNop())
	svc := NewService(journal, zap.NewNop())
	ctx := context.Background()

	result, err := svc.Ingest(ctx, whatsappExport, "whatsapp", "Ashish")
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalIngested)

	entries, err := logStore.Load(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Tags, "source:whatsapp")
	assert.NotZero(t, entries[0].Confidence)
}
