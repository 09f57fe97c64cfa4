package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

// TelegramSink posts transition messages to one group chat.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logging.Logger
}

func NewTelegramSink(token string, chatID int64, logger *logging.Logger) (*TelegramSink, error) {
	if logger == nil {
		logger = logging.Default()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramSink{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (s *TelegramSink) Deliver(ctx context.Context, event tracking.Event) error {
	text := FormatEvent(event)
	msg := tgbotapi.NewMessage(s.chatID, text)

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	s.logger.DebugContext(ctx, "telegram message sent",
		"kind", string(event.Kind),
		"participant", event.Participant,
	)
	return nil
}

// FormatEvent renders one transition in the group's established
// message shapes.
func FormatEvent(event tracking.Event) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	switch event.Kind {
	case tracking.KindGoal:
		_, _ = buf.WriteString("Goal for ")
		_, _ = buf.WriteString(event.Participant)
		_, _ = buf.WriteString(": ")
		writeScoreline(buf, event)
		if event.Minute != "" {
			_, _ = buf.WriteString(" - ")
			_, _ = buf.WriteString(event.Minute)
		}
	case tracking.KindBTTS:
		_, _ = buf.WriteString("BTTS ")
		_, _ = buf.WriteString(event.Participant)
		_, _ = buf.WriteString(": Both teams have scored - ")
		writeScoreline(buf, event)
		if event.Minute != "" {
			_, _ = buf.WriteString(" (")
			_, _ = buf.WriteString(event.Minute)
			_, _ = buf.WriteString(")")
		}
	case tracking.KindFullTime:
		_, _ = buf.WriteString("FT ")
		_, _ = buf.WriteString(event.Participant)
		_, _ = buf.WriteString(": ")
		writeScoreline(buf, event)
	default:
		_, _ = buf.WriteString(event.Participant)
		_, _ = buf.WriteString(": ")
		writeScoreline(buf, event)
	}

	return buf.String()
}

func writeScoreline(buf *bytebufferpool.ByteBuffer, event tracking.Event) {
	_, _ = buf.WriteString(event.HomeTeam)
	_, _ = buf.WriteString(" ")
	_, _ = buf.WriteString(strconv.Itoa(event.HomeScore))
	_, _ = buf.WriteString(" ")
	_, _ = buf.WriteString(event.AwayTeam)
	_, _ = buf.WriteString(" ")
	_, _ = buf.WriteString(strconv.Itoa(event.AwayScore))
}
