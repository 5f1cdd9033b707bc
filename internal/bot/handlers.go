package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg_archiver/internal/archive"
	"tg_archiver/internal/model"
	"tg_archiver/internal/tokens"
)

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, m textMessage) {
	if !msg.IsCommand() {
		b.log.Info("text message", "username", senderName(msg.From), "text", m.text)
		b.reply(msg, FormatEcho(msg.From.FirstName, m.text))
		return
	}

	b.log.Debug("command", "cmd", msg.Command(), "chat_id", chatID(msg))

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "recent":
		b.handleRecent(ctx, msg, msg.CommandArguments())
	default:
		b.reply(msg, "Unknown command. Use /help for a list of commands.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.reply(msg, `Welcome to the media archiver!

Send me photos or stickers and I will save them to disk.
Hashtags in the caption become folders, the first plain word becomes the file name.

Use /help for details.`)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.reply(msg, `How files are named:
#tag — adds a folder level (in order)
first plain word — file name, otherwise file_<date_time>
existing names get _1, _2, ... appended

An album shares the caption of whichever photo carries it.

Commands:
/recent [n] — last n saved files (default 10, max 50)
/help — this message`)
}

func (b *Bot) handleRecent(ctx context.Context, msg *tgbotapi.Message, args string) {
	limit, err := ParseLimitArg(args)
	if err != nil {
		b.reply(msg, err.Error())
		return
	}

	files, err := b.store.ListRecent(ctx, chatID(msg), limit)
	if err != nil {
		b.reply(msg, fmt.Sprintf("Error: %v", err))
		return
	}
	total, err := b.store.CountFiles(ctx, chatID(msg))
	if err != nil {
		b.reply(msg, fmt.Sprintf("Error: %v", err))
		return
	}

	b.reply(msg, FormatRecent(files, total))
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, m photoMessage) {
	caption, _ := b.groups.Resolve(m.groupID, m.caption)

	photo, ok := biggestPhoto(m.sizes)
	if !ok {
		b.log.Warn("strange photo without file", "message_id", msg.MessageID, "chat_id", chatID(msg))
		return
	}

	toks := append(tokens.Hashtags(b.cfg.ImageTags), tokens.Parse(caption)...)
	b.saveAndReply(ctx, msg, fileRequest{
		fileID:  photo.FileID,
		kind:    model.KindPhoto,
		groupID: m.groupID,
		tokens:  toks,
	})
}

func (b *Bot) handleSticker(ctx context.Context, msg *tgbotapi.Message, m stickerMessage) {
	if m.sticker.Thumbnail == nil {
		b.log.Info("strange sticker without thumb",
			"message_id", msg.MessageID,
			"set", m.sticker.SetName,
			"emoji", m.sticker.Emoji,
		)
		return
	}

	b.saveAndReply(ctx, msg, fileRequest{
		fileID: m.sticker.Thumbnail.FileID,
		kind:   model.KindSticker,
		tokens: tokens.Hashtags(b.cfg.StickerTags),
	})
}

type fileRequest struct {
	fileID  string
	kind    model.MediaKind
	groupID string
	tokens  []tokens.Token
}

func (b *Bot) saveAndReply(ctx context.Context, msg *tgbotapi.Message, req fileRequest) {
	path, err := b.saveFile(ctx, msg, req)
	if err != nil {
		b.log.Error("save file",
			"kind", req.kind,
			"message_id", msg.MessageID,
			"chat_id", chatID(msg),
			"error", err,
		)
		b.reply(msg, fmt.Sprintf("Failed to save file: %v", err))
		return
	}
	b.reply(msg, FormatSaved(path))
}

// saveFile resolves the Telegram file, picks a free destination path,
// downloads the bytes and writes them to disk.
func (b *Bot) saveFile(ctx context.Context, msg *tgbotapi.Message, req fileRequest) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: req.fileID})
	if err != nil {
		return "", fmt.Errorf("get file info: %w", err)
	}

	path, err := archive.BuildPath(b.cfg.TargetDir, req.tokens, file.FilePath, messageTime(msg))
	if err != nil {
		return "", fmt.Errorf("build path: %w", err)
	}

	b.log.Info("downloading file", "path", path, "size", file.FileSize)

	data, err := b.fetcher.Download(ctx, file.Link(b.cfg.TelegramBotToken))
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if err := b.files.Save(path, data); err != nil {
		return "", err
	}

	entry := &model.ArchivedFile{
		ChatID:       chatID(msg),
		MessageID:    msg.MessageID,
		Kind:         req.kind,
		MediaGroupID: req.groupID,
		Username:     senderName(msg.From),
		Path:         path,
		Size:         int64(len(data)),
	}
	if err := b.store.RecordFile(ctx, entry); err != nil {
		b.log.Error("record archived file", "path", path, "error", err)
	}

	return path, nil
}

// biggestPhoto returns the variant with the largest known size.
// A known size beats an unknown one; on ties the first variant wins.
func biggestPhoto(sizes []tgbotapi.PhotoSize) (tgbotapi.PhotoSize, bool) {
	if len(sizes) == 0 {
		return tgbotapi.PhotoSize{}, false
	}
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.FileSize > best.FileSize {
			best = p
		}
	}
	return best, true
}

func messageTime(msg *tgbotapi.Message) time.Time {
	return msg.Time().UTC()
}
