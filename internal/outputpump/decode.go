package outputpump

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decode applies the decoding ladder from spec.md §4.2 to a single write
// buffer: UTF-8 strict, then UTF-16LE (even length only), then
// Windows-1252 (accepted only if the decoder reports no errors), then
// IBM CP437 (same condition). Grounded on
// original_source/src/pkg/logs_writer.rs's LogWriter::try_decode, ported
// onto golang.org/x/text's decoders instead of encoding_rs.
func decode(buf []byte) (string, bool) {
	if utf8.Valid(buf) {
		return string(buf), true
	}

	if len(buf)%2 == 0 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		if out, err := dec.Bytes(buf); err == nil && utf8.Valid(out) {
			return string(out), true
		}
	}

	if s, ok := decodeNoErrors(charmap.Windows1252, buf); ok {
		return s, true
	}

	if s, ok := decodeNoErrors(charmap.CodePage437, buf); ok {
		return s, true
	}

	return "", false
}

// decodeNoErrors decodes buf with a charmap.Charmap, accepting the result
// only if no byte decoded to the Unicode replacement character — the
// Go equivalent of encoding_rs's "had_errors" flag for 8-bit code pages.
func decodeNoErrors(cm *charmap.Charmap, buf []byte) (string, bool) {
	out, err := cm.NewDecoder().Bytes(buf)
	if err != nil {
		return "", false
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// hexDump renders the fallback ERROR record payload for bytes that
// survive none of the decoding ladder's steps.
func hexDump(buf []byte) string {
	const hextable = "0123456789abcdef"
	var b strings.Builder
	b.WriteString("<unreadable data: ")
	for i, c := range buf {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(hextable[c>>4])
		b.WriteByte(hextable[c&0xf])
	}
	b.WriteString(">")
	return b.String()
}
