package ingest

import (
	"encoding/csv"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Message line of a WhatsApp export: "12/31/23, 9:41 PM - Sender: text".
var whatsappLine = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s+` +
		`(\d{1,2}:\d{2}(?::\d{2})?(?:\s?[AP]M)?)\s+-\s+` +
		`([^:]+):\s+` +
		`(.+)$`)

var (
	tcoURL  = regexp.MustCompile(`https://t\.co/\S+`)
	mention = regexp.MustCompile(`@\w+`)
	// JS assignment wrapper of a Twitter archive: window.YTD.tweets.part0 = [...]
	jsWrapper = regexp.MustCompile(`^window\.[^=]+=\s*`)
)

type chatMessage struct {
	sender  string
	content string
}

// parseWhatsApp extracts exchanges from a WhatsApp chat export. With a user
// handle, the user's messages become answers and the other party's preceding
// message the question. Without one, every message over 20 runes becomes a
// standalone post.
func parseWhatsApp(text, userHandle string) []exchange {
	var messages []chatMessage
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := whatsappLine.FindStringSubmatch(trimmed); m != nil {
			messages = append(messages, chatMessage{
				sender:  strings.TrimSpace(m[3]),
				content: strings.TrimSpace(m[4]),
			})
		} else if len(messages) > 0 && trimmed != "" && !strings.HasPrefix(line, "‎") {
			// continuation of the previous message
			messages[len(messages)-1].content += " " + trimmed
		}
	}

	var entries []exchange
	if userHandle != "" {
		handle := strings.ToLower(userHandle)
		for i, msg := range messages {
			if strings.ToLower(msg.sender) != handle {
				continue
			}
			question := ""
			if i > 0 && strings.ToLower(messages[i-1].sender) != handle {
				question = messages[i-1].content
			}
			entries = append(entries, makeExchange(question, msg.content, PlatformWhatsApp, "chat"))
		}
		return entries
	}

	for _, msg := range messages {
		if utf8.RuneCountInString(msg.content) > 20 {
			entries = append(entries, makeExchange("", msg.content, PlatformWhatsApp, "chat"))
		}
	}
	return entries
}

// parseTwitter extracts original tweets from a tweets.js archive. Retweets
// and replies to others are dropped, and t.co links and mentions are stripped
// from the surviving text.
func parseTwitter(text string) []exchange {
	clean := jsWrapper.ReplaceAllString(strings.TrimSpace(text), "")

	var data any
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		if err := json.Unmarshal([]byte(text), &data); err != nil {
			return nil
		}
	}

	items, ok := data.([]any)
	if !ok {
		if wrapper, ok := data.(map[string]any); ok {
			items, _ = wrapper["tweets"].([]any)
		}
	}

	var entries []exchange
	for _, item := range items {
		tweet, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if inner, ok := tweet["tweet"].(map[string]any); ok {
			tweet = inner
		}
		content := stringField(tweet, "full_text")
		if content == "" {
			content = stringField(tweet, "text")
		}

		if strings.HasPrefix(content, "RT @") {
			continue
		}
		if strings.HasPrefix(content, "@") {
			// keep only self-replies, marked by an empty in_reply_to_user_id
			if reply, ok := tweet["in_reply_to_user_id"].(string); !ok || reply != "" {
				continue
			}
		}

		content = strings.TrimSpace(tcoURL.ReplaceAllString(content, ""))
		content = strings.TrimSpace(mention.ReplaceAllString(content, ""))
		if utf8.RuneCountInString(content) < 15 {
			continue
		}
		entries = append(entries, makeExchange("", content, PlatformTwitter, "post", "tweet"))
	}
	return entries
}

// parseLinkedInPosts extracts post text from a LinkedIn posts.csv export.
// Column names vary between export versions, so several are tried.
func parseLinkedInPosts(text string) []exchange {
	var entries []exchange
	for _, row := range readCSV(text) {
		content := firstNonEmpty(row, "ShareCommentary", "Content", "Text", "Description")
		if utf8.RuneCountInString(content) < 20 {
			continue
		}
		entries = append(entries, makeExchange("", content, "linkedin", "post"))
	}
	return entries
}

// parseLinkedInMessages extracts the user's messages from a LinkedIn
// messages.csv export, pairing each with the previous message from the other
// party as the question.
func parseLinkedInMessages(text, userHandle string) []exchange {
	rows := readCSV(text)
	handle := strings.ToLower(userHandle)

	var entries []exchange
	for i, row := range rows {
		sender := strings.TrimSpace(firstNonEmpty(row, "SENDER NAME", "From"))
		content := strings.TrimSpace(firstNonEmpty(row, "CONTENT", "Body"))

		if content == "" || utf8.RuneCountInString(content) < 10 {
			continue
		}
		if handle != "" && strings.ToLower(sender) != handle {
			continue
		}

		question := ""
		if i > 0 {
			prev := rows[i-1]
			prevSender := strings.TrimSpace(firstNonEmpty(prev, "SENDER NAME", "From"))
			prevContent := strings.TrimSpace(firstNonEmpty(prev, "CONTENT", "Body"))
			if !strings.EqualFold(prevSender, sender) && prevContent != "" {
				question = prevContent
			}
		}
		entries = append(entries, makeExchange(question, content, "linkedin", "message", "chat"))
	}
	return entries
}

// parseInstagram handles both Instagram export shapes: a posts list where
// each item carries a "media" array with captions, and a DM thread with a
// "messages" array.
func parseInstagram(text, userHandle string) []exchange {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}

	var entries []exchange

	if items, ok := data.([]any); ok {
		for _, item := range items {
			post, ok := item.(map[string]any)
			if !ok {
				continue
			}
			media, _ := post["media"].([]any)
			for _, m := range media {
				mm, ok := m.(map[string]any)
				if !ok {
					continue
				}
				caption := strings.TrimSpace(stringField(mm, "title"))
				if utf8.RuneCountInString(caption) > 20 {
					entries = append(entries, makeExchange("", caption, PlatformInstagram, "post", "caption"))
				}
			}
		}
		return entries
	}

	wrapper, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	messages, _ := wrapper["messages"].([]any)
	handle := strings.ToLower(userHandle)

	for i, raw := range messages {
		msg, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		sender := strings.TrimSpace(stringField(msg, "sender_name"))
		content := strings.TrimSpace(stringField(msg, "content"))

		if content == "" || utf8.RuneCountInString(content) < 10 {
			continue
		}
		if handle != "" && strings.ToLower(sender) != handle {
			continue
		}

		question := ""
		if i > 0 {
			if prev, ok := messages[i-1].(map[string]any); ok {
				if !strings.EqualFold(stringField(prev, "sender_name"), sender) {
					question = strings.TrimSpace(stringField(prev, "content"))
				}
			}
		}
		entries = append(entries, makeExchange(question, content, PlatformInstagram, "dm", "chat"))
	}
	return entries
}

// parseTelegram extracts exchanges from a Telegram result.json export.
// Message text may be a plain string or a list of text entities.
func parseTelegram(text, userHandle string) []exchange {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}
	messages, _ := data["messages"].([]any)
	handle := strings.ToLower(userHandle)

	var entries []exchange
	for i, raw := range messages {
		msg, ok := raw.(map[string]any)
		if !ok || stringField(msg, "type") != "message" {
			continue
		}
		sender := strings.TrimSpace(stringField(msg, "from"))
		content := strings.TrimSpace(telegramText(msg["text"]))

		if content == "" || utf8.RuneCountInString(content) < 10 {
			continue
		}
		if handle != "" && strings.ToLower(sender) != handle {
			continue
		}

		question := ""
		if i > 0 {
			if prev, ok := messages[i-1].(map[string]any); ok && stringField(prev, "type") == "message" {
				prevSender := strings.TrimSpace(stringField(prev, "from"))
				if !strings.EqualFold(prevSender, sender) {
					question = strings.TrimSpace(telegramText(prev["text"]))
				}
			}
		}
		entries = append(entries, makeExchange(question, content, PlatformTelegram, "chat", "message"))
	}
	return entries
}

// telegramText flattens a Telegram text field, which is either a string or a
// list mixing strings and {"text": ...} entity objects.
func telegramText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, part := range t {
			switch p := part.(type) {
			case string:
				parts = append(parts, p)
			case map[string]any:
				parts = append(parts, stringField(p, "text"))
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Column and key names probed by the generic parsers, in priority order.
var (
	genericTextCols = []string{"text", "content", "message", "post", "body",
		"caption", "description", "comment", "reply"}
	genericTextKeys = []string{"text", "content", "message", "post", "body",
		"caption", "description", "comment"}
	genericWrapperKeys = []string{"posts", "messages", "data", "items", "tweets"}
)

// parseGenericCSV takes the first text-like column over 20 runes per row.
func parseGenericCSV(text string) []exchange {
	var entries []exchange
	for _, row := range readCSV(text) {
		content := ""
		for _, col := range genericTextCols {
			for key, val := range row {
				if strings.ToLower(strings.TrimSpace(key)) == col && utf8.RuneCountInString(strings.TrimSpace(val)) > 20 {
					content = strings.TrimSpace(val)
					break
				}
			}
			if content != "" {
				break
			}
		}
		if content != "" {
			entries = append(entries, makeExchange("", content, "generic", "imported"))
		}
	}
	return entries
}

// parseGenericJSON accepts a list of strings, a list of objects with a
// text-like key, or a container object wrapping such a list.
func parseGenericJSON(text string) []exchange {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}

	if wrapper, ok := data.(map[string]any); ok {
		for _, key := range genericWrapperKeys {
			if inner, exists := wrapper[key]; exists {
				data = inner
				break
			}
		}
	}

	items, ok := data.([]any)
	if !ok {
		return nil
	}

	var entries []exchange
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if utf8.RuneCountInString(v) > 20 {
				entries = append(entries, makeExchange("", v, "generic", "imported"))
			}
		case map[string]any:
			for _, key := range genericTextKeys {
				if val, ok := v[key].(string); ok && utf8.RuneCountInString(val) > 20 {
					entries = append(entries, makeExchange("", val, "generic", "imported"))
					break
				}
			}
		}
	}
	return entries
}

// readCSV parses CSV text into header-keyed rows. Malformed input yields
// whatever rows parsed cleanly.
func readCSV(text string) []map[string]string {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func firstNonEmpty(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
