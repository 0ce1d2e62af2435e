package pdf

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/quilltools/pdfmeta/pkg/core"
)

func errTruncatedDict() error {
	return fmt.Errorf("%w: information dictionary is truncated", core.ErrUnreadableDocument)
}

func isWhitespace(c byte) bool {
	switch c {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

// skipWS advances past whitespace and comments.
func skipWS(data []byte, i int) int {
	for i < len(data) {
		if isWhitespace(data[i]) {
			i++
			continue
		}
		if data[i] == '%' {
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
			continue
		}
		break
	}
	return i
}

// parseNameToken reads a name whose leading slash is at i.
func parseNameToken(data []byte, i int) (string, int) {
	j := i + 1
	for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
		j++
	}
	return decodeName(string(data[i+1 : j])), j
}

func parseBareToken(data []byte, i int) (string, int) {
	j := i
	for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
		j++
	}
	return string(data[i:j]), j
}

func isNumberToken(tok string) bool {
	if tok == "" {
		return false
	}
	for k := 0; k < len(tok); k++ {
		c := tok[k]
		if (c < '0' || c > '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isIntegerToken(tok string) bool {
	if tok == "" {
		return false
	}
	for k := 0; k < len(tok); k++ {
		if tok[k] < '0' || tok[k] > '9' {
			return false
		}
	}
	return true
}

// scanLiteralString returns the index just past the closing parenthesis of
// the literal string starting at i, or -1 if unbalanced.
func scanLiteralString(data []byte, i int) int {
	depth := 0
	for j := i; j < len(data); j++ {
		switch data[j] {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return -1
}

// scanBalanced returns the index just past the structure starting at i,
// where open and close are one- or two-byte markers (dicts and arrays).
// Literal strings inside are skipped so their bytes cannot unbalance it.
func scanBalanced(data []byte, i int, open, closing string) int {
	depth := 0
	j := i
	for j < len(data) {
		if data[j] == '(' {
			end := scanLiteralString(data, j)
			if end < 0 {
				return -1
			}
			j = end
			continue
		}
		if strings.HasPrefix(string(data[j:min(j+len(open), len(data))]), open) {
			depth++
			j += len(open)
			continue
		}
		if strings.HasPrefix(string(data[j:min(j+len(closing), len(data))]), closing) {
			depth--
			j += len(closing)
			if depth == 0 {
				return j
			}
			continue
		}
		j++
	}
	return -1
}

// parseValueToken decodes the object starting at i into a core.Value.
// Strings decode to text; names, numbers and booleans coerce to their
// textual form but keep their raw token; references, arrays and nested
// dictionaries are unrepresentable and pass through raw.
func parseValueToken(data []byte, i int) (core.Value, int, error) {
	if i >= len(data) {
		return core.Value{}, i, errTruncatedDict()
	}

	switch data[i] {
	case '(':
		end := scanLiteralString(data, i)
		if end < 0 {
			return core.Value{}, i, errTruncatedDict()
		}
		text := decodeTextBytes(decodeLiteral(data[i+1 : end-1]))
		return core.TextValue(text), end, nil

	case '<':
		if i+1 < len(data) && data[i+1] == '<' {
			end := scanBalanced(data, i, "<<", ">>")
			if end < 0 {
				return core.Value{}, i, errTruncatedDict()
			}
			return core.UnrepresentableValue(string(data[i:end]), "nested dictionary"), end, nil
		}
		j := i + 1
		for j < len(data) && data[j] != '>' {
			j++
		}
		if j >= len(data) {
			return core.Value{}, i, errTruncatedDict()
		}
		digits := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, string(data[i+1:j]))
		if len(digits)%2 != 0 {
			digits += "0"
		}
		raw, err := hex.DecodeString(digits)
		if err != nil {
			return core.UnrepresentableValue(string(data[i:j+1]), "malformed hex string"), j + 1, nil
		}
		return core.TextValue(decodeTextBytes(raw)), j + 1, nil

	case '[':
		end := scanBalanced(data, i, "[", "]")
		if end < 0 {
			return core.Value{}, i, errTruncatedDict()
		}
		return core.UnrepresentableValue(string(data[i:end]), "array value"), end, nil

	case '/':
		name, end := parseNameToken(data, i)
		return core.Value{Text: name, Raw: string(data[i:end])}, end, nil
	}

	tok, end := parseBareToken(data, i)
	if tok == "" {
		return core.Value{}, i, errTruncatedDict()
	}

	// An integer may start an indirect reference: "N G R".
	if isIntegerToken(tok) {
		j := skipWS(data, end)
		gen, genEnd := parseBareToken(data, j)
		if isIntegerToken(gen) {
			k := skipWS(data, genEnd)
			if k < len(data) && data[k] == 'R' &&
				(k+1 >= len(data) || isWhitespace(data[k+1]) || isDelimiter(data[k+1])) {
				raw := fmt.Sprintf("%s %s R", tok, gen)
				return core.UnrepresentableValue(raw, "indirect object reference"), k + 1, nil
			}
		}
	}

	if isNumberToken(tok) || tok == "true" || tok == "false" || tok == "null" {
		return core.Value{Text: tok, Raw: tok}, end, nil
	}
	return core.UnrepresentableValue(tok, "unrecognized value"), end, nil
}

// parseInfoDict decodes the dictionary whose "<<" follows pos, preserving
// encounter order. A key written twice keeps its first position with the
// later value, so the mapping stays free of duplicates.
func parseInfoDict(data []byte, pos int) (core.Mapping, error) {
	i := skipWS(data, pos)
	if i+1 >= len(data) || data[i] != '<' || data[i+1] != '<' {
		return nil, errTruncatedDict()
	}
	i += 2

	var mapping core.Mapping
	for {
		i = skipWS(data, i)
		if i+1 < len(data) && data[i] == '>' && data[i+1] == '>' {
			break
		}
		if i >= len(data) {
			return nil, errTruncatedDict()
		}
		if data[i] != '/' {
			return nil, fmt.Errorf("%w: expected name in information dictionary", core.ErrUnreadableDocument)
		}

		key, next := parseNameToken(data, i)
		i = skipWS(data, next)

		value, next, err := parseValueToken(data, i)
		if err != nil {
			return nil, err
		}
		i = next

		replaced := false
		for n := range mapping {
			if mapping[n].Key == key {
				mapping[n].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			mapping = append(mapping, core.Entry{Key: key, Value: value})
		}
	}

	if mapping == nil {
		mapping = core.Mapping{}
	}
	return mapping, nil
}
