package telegram

// Sends rendered charts to a Telegram chat.
// PNG files go out as photos, SVG files as documents (Telegram does not preview SVG).

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"activity-charts/internal/activity"
	"activity-charts/internal/features/pipeline"
	"activity-charts/internal/infra/fs"
	"activity-charts/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Publisher implements pipeline.Publisher.
type Publisher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewPublisher connects with token (getMe is called once) and targets chatID.
func NewPublisher(token, chatID string) (*Publisher, error) {
	return NewPublisherWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewPublisherWithEndpoint is NewPublisher against a custom Bot API endpoint
// (format "https://host/bot%s/%s").
func NewPublisherWithEndpoint(token, chatID, endpoint string) (*Publisher, error) {
	id, err := ParseChatID(chatID)
	if err != nil {
		return nil, err
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.LogInfo("Telegram publisher ready", zap.String("bot", bot.Self.UserName), zap.Int64("chat_id", id))
	return &Publisher{bot: bot, chatID: id}, nil
}

// ParseChatID accepts numeric ids, including negative group ids.
func ParseChatID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", s, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid telegram chat id %q", s)
	}
	return id, nil
}

// Publish uploads chart.Path with a caption listing the records.
func (p *Publisher) Publish(ctx context.Context, chart pipeline.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	size, err := fs.CheckFile(chart.Path)
	if err != nil {
		return err
	}

	file := tgbotapi.FilePath(chart.Path)
	var msg tgbotapi.Chattable
	if strings.EqualFold(filepath.Ext(chart.Path), ".png") {
		photo := tgbotapi.NewPhoto(p.chatID, file)
		photo.Caption = Caption(chart)
		photo.ParseMode = tgbotapi.ModeHTML
		msg = photo
	} else {
		doc := tgbotapi.NewDocument(p.chatID, file)
		doc.Caption = Caption(chart)
		doc.ParseMode = tgbotapi.ModeHTML
		msg = doc
	}

	sent, err := p.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", filepath.Base(chart.Path), err)
	}
	log.LogSuccess("Chart sent to Telegram",
		zap.String("path", chart.Path),
		zap.Int64("size", size),
		zap.Int("message_id", sent.MessageID))
	return nil
}

// Caption - "<b>Title</b> (theme)" followed by one line per record
func Caption(chart pipeline.Chart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>", escapeHTML(chart.Title))
	if chart.Theme != "" {
		fmt.Fprintf(&b, " (%s)", chart.Theme)
	}
	for _, r := range chart.Records {
		fmt.Fprintf(&b, "\n%s: %s", escapeHTML(r.Label), activity.FormatDuration(r.Seconds))
	}
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }
