package bot

import (
	"fmt"
	"strings"

	"tg_archiver/internal/model"
)

// FormatSaved is the reply sent after a file has been written.
func FormatSaved(path string) string {
	return "File saved to " + path
}

// FormatEcho acknowledges a plain text message.
func FormatEcho(firstName, text string) string {
	return fmt.Sprintf("Hi, %s! You wrote '%s'", firstName, text)
}

// FormatRecent lists the most recently archived files of a chat.
func FormatRecent(files []model.ArchivedFile, total int) string {
	if len(files) == 0 {
		return "Nothing archived yet. Send a photo or a sticker."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Last %d of %d saved files:\n", len(files), total)
	for _, f := range files {
		fmt.Fprintf(&b, "\n%s [%s] %s", f.CreatedAt.Format("2006-01-02 15:04"), f.Kind, f.Path)
		if f.MediaGroupID != "" {
			fmt.Fprintf(&b, " (album %s)", f.MediaGroupID)
		}
	}
	return b.String()
}
