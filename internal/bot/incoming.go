package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// incoming is the closed set of message kinds the bot distinguishes.
type incoming interface {
	isIncoming()
}

type textMessage struct {
	text string
}

type photoMessage struct {
	sizes   []tgbotapi.PhotoSize
	caption string
	groupID string
}

type stickerMessage struct {
	sticker *tgbotapi.Sticker
}

type otherMessage struct{}

func (textMessage) isIncoming()    {}
func (photoMessage) isIncoming()   {}
func (stickerMessage) isIncoming() {}
func (otherMessage) isIncoming()   {}

func classify(msg *tgbotapi.Message) incoming {
	switch {
	case msg.Text != "":
		return textMessage{text: msg.Text}
	case msg.Photo != nil:
		return photoMessage{sizes: msg.Photo, caption: msg.Caption, groupID: msg.MediaGroupID}
	case msg.Sticker != nil:
		return stickerMessage{sticker: msg.Sticker}
	default:
		return otherMessage{}
	}
}
