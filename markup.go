package main

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"
)

// messageHTML extracts the markup-bearing text of a message: the text with
// its entities rendered as HTML, falling back to the caption. Returns ""
// when the message carries no text at all.
func messageHTML(msg *models.Message) string {
	if msg.Text != "" {
		return entityHTML(msg.Text, msg.Entities)
	}
	if msg.Caption != "" {
		return entityHTML(msg.Caption, msg.CaptionEntities)
	}
	return ""
}

// entityHTML rebuilds the HTML view of a Telegram message from its plain
// text and entity spans. Entity offsets and lengths are in UTF-16 code
// units, per the Bot API.
func entityHTML(text string, entities []models.MessageEntity) string {
	if len(entities) == 0 {
		return html.EscapeString(text)
	}

	units := utf16.Encode([]rune(text))

	// Telegram guarantees entities are disjoint or properly nested; outer
	// spans sort before the spans they contain.
	sorted := make([]models.MessageEntity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Offset != sorted[j].Offset {
			return sorted[i].Offset < sorted[j].Offset
		}
		return sorted[i].Length > sorted[j].Length
	})

	var b strings.Builder
	writeSpan(&b, units, sorted, 0, len(units))
	return b.String()
}

// writeSpan renders units[start:end), wrapping each top-level entity in its
// tag pair and recursing for the entities nested inside it.
func writeSpan(b *strings.Builder, units []uint16, entities []models.MessageEntity, start, end int) {
	pos := start
	for len(entities) > 0 {
		e := entities[0]
		entEnd := e.Offset + e.Length
		if e.Offset >= end {
			break
		}
		if e.Offset < pos || entEnd > end {
			// Malformed span, skip it.
			entities = entities[1:]
			continue
		}

		b.WriteString(escapeUnits(units[pos:e.Offset]))

		open, closing := entityTags(e)
		b.WriteString(open)
		inner := 1
		for inner < len(entities) && entities[inner].Offset < entEnd {
			inner++
		}
		writeSpan(b, units, entities[1:inner], e.Offset, entEnd)
		b.WriteString(closing)

		pos = entEnd
		entities = entities[inner:]
	}
	b.WriteString(escapeUnits(units[pos:end]))
}

func escapeUnits(units []uint16) string {
	return html.EscapeString(string(utf16.Decode(units)))
}

// entityTags maps a formatting entity to its HTML tag pair. Non-formatting
// entities (mentions, hashtags, plain urls) need no tags: their text is
// already part of the message.
func entityTags(e models.MessageEntity) (string, string) {
	switch e.Type {
	case "bold":
		return "<b>", "</b>"
	case "italic":
		return "<i>", "</i>"
	case "underline":
		return "<u>", "</u>"
	case "strikethrough":
		return "<s>", "</s>"
	case "spoiler":
		return "<tg-spoiler>", "</tg-spoiler>"
	case "code":
		return "<code>", "</code>"
	case "pre":
		return "<pre>", "</pre>"
	case "blockquote":
		return "<blockquote>", "</blockquote>"
	case "text_link":
		return fmt.Sprintf(`<a href="%s">`, html.EscapeString(e.URL)), "</a>"
	default:
		return "", ""
	}
}
