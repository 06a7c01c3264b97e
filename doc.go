package rulesbot

import "strings"

// Doc is a single search result row.
type Doc struct {
	ShortName string `json:"shortName"`
	FullName  string `json:"fullName"`
	Kind      string `json:"kind"`
	URL       string `json:"url"`
}

// ScoredDoc is a Doc paired with the score it was ranked with.
type ScoredDoc struct {
	Score float64
	Doc   Doc
}

// ShortName derives the display name of a fully-qualified inventory name.
// The leading package segment is dropped, and a segment that merely repeats
// its predecessor is dropped too, so "telethon.telethon.TelegramClient"
// becomes "TelegramClient" and "telethon.events.NewMessage" becomes
// "events.NewMessage". Names without a dot are returned unchanged.
func ShortName(fullName string) string {
	bits := strings.Split(fullName, ".")
	if len(bits) < 2 {
		return fullName
	}
	short := bits[1:]
	if len(bits) > 2 && (strings.EqualFold(bits[0], bits[1]) || strings.EqualFold(bits[1], bits[2])) {
		short = bits[2:]
	}
	return strings.Join(short, ".")
}
