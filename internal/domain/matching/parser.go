package matching

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoCandidates means neither a direct parse nor recovery produced a usable object.
var ErrNoCandidates = errors.New("no usable candidates in model response")

// Mode records how a response was decoded.
type Mode string

const (
	ModeDirect    Mode = "direct"
	ModeRecovered Mode = "recovered"
)

// NormalizeResponse strips a leading ``` or ```json fence, a trailing ``` fence
// and surrounding whitespace.
func NormalizeResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// HasEmployeeID reports whether obj carries a numeric employeeId.
func HasEmployeeID(obj gjson.Result) bool {
	return obj.Get("employeeId").Type == gjson.Number
}

// ParseCandidates decodes a matching response into raw candidate objects.
func ParseCandidates(raw string) ([]json.RawMessage, Mode, error) {
	return DecodeArray(raw, HasEmployeeID)
}

// DecodeArray returns the elements of the response when it is a JSON array.
// Otherwise it falls back to ExtractObjects with keep and fails with
// ErrNoCandidates when that finds nothing.
func DecodeArray(raw string, keep func(gjson.Result) bool) ([]json.RawMessage, Mode, error) {
	text := NormalizeResponse(raw)

	var direct []json.RawMessage
	if err := json.Unmarshal([]byte(text), &direct); err == nil && direct != nil {
		return direct, ModeDirect, nil
	}

	recovered := ExtractObjects(text, keep)
	if len(recovered) == 0 {
		return nil, ModeRecovered, ErrNoCandidates
	}
	return recovered, ModeRecovered, nil
}

// DecodeObject returns the response when it is a JSON object accepted by keep,
// or else the first recovered object keep accepts.
func DecodeObject(raw string, keep func(gjson.Result) bool) (json.RawMessage, Mode, error) {
	text := NormalizeResponse(raw)

	if gjson.Valid(text) {
		r := gjson.Parse(text)
		if r.IsObject() && (keep == nil || keep(r)) {
			return json.RawMessage(text), ModeDirect, nil
		}
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, ModeRecovered, ErrNoCandidates
	}
	objs := extractFrom(text, start, keep)
	if len(objs) == 0 {
		return nil, ModeRecovered, ErrNoCandidates
	}
	return objs[0], ModeRecovered, nil
}

// ExtractObjects salvages complete JSON objects from malformed or truncated
// text. Scanning starts after the first '[' (or at the beginning when there is
// none). Every '{' opens a candidate that ends at its matching '}'; braces inside
// string literals are ignored. Candidates that parse and satisfy keep (nil keeps
// all) are returned and skipped over. Rejected or unterminated candidates are
// scanned into, so objects nested in a wrapper are still found.
func ExtractObjects(text string, keep func(gjson.Result) bool) []json.RawMessage {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		start = 0
	} else {
		start++
	}
	return extractFrom(text, start, keep)
}

func extractFrom(text string, start int, keep func(gjson.Result) bool) []json.RawMessage {
	var out []json.RawMessage
	i := start
	for i < len(text) {
		if text[i] != '{' {
			i++
			continue
		}

		end := objectEnd(text, i)
		if end < 0 {
			i++
			continue
		}

		candidate := text[i : end+1]
		if gjson.Valid(candidate) && (keep == nil || keep(gjson.Parse(candidate))) {
			out = append(out, json.RawMessage(candidate))
			i = end + 1
			continue
		}
		i++
	}
	return out
}

// objectEnd returns the index of the brace that closes the object opened at
// text[start], or -1 when the text ends first.
func objectEnd(text string, start int) int {
	var sc braceScanner
	for j := start; j < len(text); j++ {
		if sc.step(text[j]) {
			return j
		}
	}
	return -1
}

type scanState uint8

const (
	stateCode scanState = iota
	stateString
	stateEscape
)

// braceScanner tracks object nesting over a byte stream. The structural bytes
// it reacts to are ASCII, so multi-byte UTF-8 sequences pass through untouched.
type braceScanner struct {
	state scanState
	depth int
}

// step consumes c and reports whether it closed the outermost object.
func (s *braceScanner) step(c byte) bool {
	switch s.state {
	case stateEscape:
		s.state = stateString
	case stateString:
		switch c {
		case '\\':
			s.state = stateEscape
		case '"':
			s.state = stateCode
		}
	case stateCode:
		switch c {
		case '"':
			s.state = stateString
		case '{':
			s.depth++
		case '}':
			if s.depth > 0 {
				s.depth--
				return s.depth == 0
			}
		}
	}
	return false
}
