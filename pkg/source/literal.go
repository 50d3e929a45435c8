package source

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// IsTrue reports whether node is the literal True.
func IsTrue(node *sitter.Node) bool {
	return node != nil && node.Type() == "true"
}

// StringLiteral returns the value of a plain str literal. f-strings, byte
// strings and anything that is not a string literal report false.
// Adjacent literals ("a" "b") are joined and escape sequences are decoded.
func StringLiteral(node *sitter.Node, src []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "string":
		return stringValue(node, src)
	case "concatenated_string":
		var sb strings.Builder
		for i := 0; i < int(node.NamedChildCount()); i++ {
			part, ok := stringValue(node.NamedChild(i), src)
			if !ok {
				return "", false
			}
			sb.WriteString(part)
		}
		return sb.String(), true
	case "parenthesized_expression":
		if node.NamedChildCount() == 1 {
			return StringLiteral(node.NamedChild(0), src)
		}
	}
	return "", false
}

func stringValue(node *sitter.Node, src []byte) (string, bool) {
	if node == nil || node.Type() != "string" {
		return "", false
	}

	raw := node.Content(src)
	var prefix string
	if quote := strings.IndexAny(raw, `"'`); quote > 0 {
		prefix = strings.ToLower(raw[:quote])
	}
	if strings.ContainsAny(prefix, "fb") {
		return "", false
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "interpolation" {
			return "", false
		}
	}

	body := unquote(raw)
	if strings.Contains(prefix, "r") {
		return body, true
	}
	return decodeEscapes(body), true
}

// decodeEscapes interprets backslash escapes in a non-raw string body.
// Unrecognized escapes such as \d keep their backslash.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for len(s) > 0 {
		i := strings.IndexByte(s, '\\')
		if i < 0 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:i])
		s = s[i:]

		if len(s) >= 2 {
			switch s[1] {
			case '\'', '"':
				sb.WriteByte(s[1])
				s = s[2:]
				continue
			case '\n':
				s = s[2:]
				continue
			case '\r':
				s = strings.TrimPrefix(s[2:], "\n")
				continue
			}
		}

		value, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			sb.WriteByte('\\')
			s = s[1:]
			continue
		}
		sb.WriteRune(value)
		s = tail
	}
	return sb.String()
}

// unquote strips the prefix and the surrounding quotes of a string token.
func unquote(raw string) string {
	start := strings.IndexAny(raw, `"'`)
	if start < 0 {
		return raw
	}
	body := raw[start:]
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(quote) && strings.HasPrefix(body, quote) && strings.HasSuffix(body, quote) {
			return body[len(quote) : len(body)-len(quote)]
		}
	}
	return body
}
