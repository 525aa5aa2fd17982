package packindex

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)

// chunkDocument splits body into paragraph records. Start/End are character
// (rune) offsets into the full document, offset being the byte position of
// body inside it.
func chunkDocument(pack, relPath, source, content, body string, offset int) []Record {
	var out []Record
	emit := func(from, to int) {
		raw := body[from:to]
		text := strings.TrimSpace(raw)
		if text == "" {
			return
		}
		lead := strings.Index(raw, text)
		startByte := offset + from + lead
		endByte := startByte + len(text)
		out = append(out, Record{
			Pack:   pack,
			DocID:  relPath + "#" + strconv.Itoa(len(out)),
			Source: source,
			Text:   text,
			Start:  utf8.RuneCountInString(content[:startByte]),
			End:    utf8.RuneCountInString(content[:endByte]),
		})
	}

	prev := 0
	for _, loc := range paragraphBreak.FindAllStringIndex(body, -1) {
		emit(prev, loc[0])
		prev = loc[1]
	}
	emit(prev, len(body))
	return out
}
