package pdf

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// decodeTextBytes turns the raw bytes of a PDF string into text. Strings
// carrying a UTF-16 byte order mark are decoded accordingly; everything else
// is treated byte-per-rune.
func decodeTextBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return decodeUTF16(b[2:], true)
	}
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE {
		return decodeUTF16(b[2:], false)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func decodeUTF16(b []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		var u uint16
		if bigEndian {
			u = uint16(b[i])<<8 | uint16(b[i+1])
		} else {
			u = uint16(b[i+1])<<8 | uint16(b[i])
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// decodeLiteral resolves the escape sequences of a literal string body
// (the bytes between the outer parentheses).
func decodeLiteral(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(raw) {
			break
		}
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '(', ')', '\\':
			out = append(out, raw[i])
		case '\r':
			// Escaped line break continues the string.
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				v := 0
				n := 0
				for n < 3 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7' {
					v = v*8 + int(raw[i]-'0')
					i++
					n++
				}
				i--
				out = append(out, byte(v))
			} else {
				// Unknown escape: the backslash is dropped.
				out = append(out, raw[i])
			}
		}
	}
	return out
}

// encodeTextString serializes s as a PDF string token. ASCII text becomes a
// literal string; anything else a UTF-16BE hex string with a BOM.
func encodeTextString(s string) string {
	ascii := true
	for _, r := range s {
		if r > 0x7E || (r < 0x20 && r != '\n' && r != '\r' && r != '\t') {
			ascii = false
			break
		}
	}
	if ascii {
		var b strings.Builder
		b.WriteByte('(')
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(', ')', '\\':
				b.WriteByte('\\')
				b.WriteByte(s[i])
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteByte(s[i])
			}
		}
		b.WriteByte(')')
		return b.String()
	}

	var b strings.Builder
	b.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	b.WriteByte('>')
	return b.String()
}

// encodeName serializes s as a PDF name token, escaping irregular
// characters with #xx.
func encodeName(s string) string {
	var b strings.Builder
	b.WriteByte('/')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c > 0x7E || strings.IndexByte("()<>[]{}/%#", c) >= 0 {
			fmt.Fprintf(&b, "#%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decodeName resolves #xx escapes in a name's regular characters.
func decodeName(s string) string {
	if !strings.ContainsRune(s, '#') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && i+2 < len(s) {
			var v byte
			if _, err := fmt.Sscanf(s[i+1:i+3], "%02x", &v); err == nil {
				b.WriteByte(v)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
