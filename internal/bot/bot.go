package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg_archiver/internal/archive"
	"tg_archiver/internal/config"
	"tg_archiver/internal/correlator"
	"tg_archiver/internal/fetcher"
	"tg_archiver/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that archives received media.
type Bot struct {
	api     telegramAPI
	store   storage.Storage
	cfg     *config.Config
	fetcher *fetcher.Fetcher
	files   *archive.Store
	groups  *correlator.Cache
	log     *slog.Logger
}

// New creates a Bot from the given config, journal storage and logger.
func New(cfg *config.Config, store storage.Storage, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	groups, err := correlator.New(cfg.GroupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create media group cache: %w", err)
	}

	log.Info("authorized", "bot", api.Self.UserName)

	return &Bot{
		api:     api,
		store:   store,
		cfg:     cfg,
		fetcher: fetcher.New(http.DefaultClient, cfg.MaxDownloadBytes),
		files:   archive.NewStore(),
		groups:  groups,
		log:     log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Updates are handled one at a time in arrival order.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || !b.cfg.IsUserAllowed(msg.From.UserName) {
		b.log.Warn("unallowed user trying to send something",
			"username", senderName(msg.From),
			"chat_id", chatID(msg),
		)
		return
	}

	switch m := classify(msg).(type) {
	case textMessage:
		b.handleText(ctx, msg, m)
	case photoMessage:
		b.handlePhoto(ctx, msg, m)
	case stickerMessage:
		b.handleSticker(ctx, msg, m)
	case otherMessage:
		b.log.Debug("ignoring message", "message_id", msg.MessageID, "chat_id", chatID(msg))
	}
}

func (b *Bot) reply(to *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(chatID(to), text)
	msg.ReplyToMessageID = to.MessageID
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send reply", "chat_id", chatID(to), "message_id", to.MessageID, "error", err)
	}
}

func senderName(u *tgbotapi.User) string {
	switch {
	case u == nil:
		return "<unknown>"
	case u.UserName != "":
		return u.UserName
	default:
		return u.FirstName
	}
}

func chatID(msg *tgbotapi.Message) int64 {
	if msg.Chat == nil {
		return 0
	}
	return msg.Chat.ID
}
