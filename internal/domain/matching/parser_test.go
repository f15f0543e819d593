package matching

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func rawStrings(in []json.RawMessage) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, string(r))
	}
	return out
}

func TestNormalizeResponse(t *testing.T) {
	cases := map[string]string{
		"```json\n[{\"employeeId\":1}]\n```":  `[{"employeeId":1}]`,
		"```JSON [1]```":                      `[1]`,
		"```\n[1]\n```":                       `[1]`,
		"  [1]  ":                             `[1]`,
		"[1]\n```":                            `[1]`,
		"```json\n[{\"employeeId\":1},{\"emp": `[{"employeeId":1},{"emp`,
	}
	for in, want := range cases {
		if got := NormalizeResponse(in); got != want {
			t.Fatalf("NormalizeResponse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCandidatesFencedMatchesPlain(t *testing.T) {
	plain, plainMode, err := ParseCandidates(`[{"employeeId":1,"score":90}]`)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	fenced, fencedMode, err := ParseCandidates("```json\n[{\"employeeId\":1,\"score\":90}]\n```")
	if err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if diff := cmp.Diff(rawStrings(plain), rawStrings(fenced)); diff != "" {
		t.Fatalf("fenced result differs (-plain +fenced):\n%s", diff)
	}
	if plainMode != ModeDirect || fencedMode != ModeDirect {
		t.Fatalf("modes = %s, %s; want direct", plainMode, fencedMode)
	}
}

func TestParseCandidatesRecovery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "truncated trailing object is dropped",
			in:   `[{"employeeId":3,"score":77},{"employeeId":5,"sc`,
			want: []string{`{"employeeId":3,"score":77}`},
		},
		{
			name: "braces and escaped quotes inside strings",
			in:   `[{"employeeId":1,"reason":"likes {braces} and \"quoted}\" text"},{"employeeId":2,"reason":"cut`,
			want: []string{`{"employeeId":1,"reason":"likes {braces} and \"quoted}\" text"}`},
		},
		{
			name: "wrapped array inside an object",
			in:   `{"matches":[{"employeeId":1,"score":80},{"employeeId":2,"score":70}]}`,
			want: []string{`{"employeeId":1,"score":80}`, `{"employeeId":2,"score":70}`},
		},
		{
			name: "prose around objects without array",
			in:   `Sure! {"employeeId": 4, "score": 80} and also {"employeeId": "x"} done`,
			want: []string{`{"employeeId": 4, "score": 80}`},
		},
		{
			name: "adjacent objects",
			in:   `[{"employeeId":1}{"employeeId":2}`,
			want: []string{`{"employeeId":1}`, `{"employeeId":2}`},
		},
		{
			name: "nested object inside a candidate stays inside it",
			in:   `[{"employeeId":7,"meta":{"employeeId":8}},`,
			want: []string{`{"employeeId":7,"meta":{"employeeId":8}}`},
		},
		{
			name: "object inside an unterminated wrapper",
			in:   `[{"team": {"employeeId": 9, "score": "85%"}`,
			want: []string{`{"employeeId": 9, "score": "85%"}`},
		},
		{
			name: "multibyte text",
			in:   `[{"employeeId":1,"employeeName":"Zoë Ñandú 日本"},{"employeeId":`,
			want: []string{`{"employeeId":1,"employeeName":"Zoë Ñandú 日本"}`},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, mode, err := ParseCandidates(tc.in)
			if err != nil {
				t.Fatalf("ParseCandidates: %v", err)
			}
			if mode != ModeRecovered {
				t.Fatalf("mode = %s, want recovered", mode)
			}
			if diff := cmp.Diff(tc.want, rawStrings(got)); diff != "" {
				t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCandidatesNoCandidates(t *testing.T) {
	for _, in := range []string{
		"",
		"I cannot help with that.",
		`[{"employeeId":"1"},{"name":"x"}`,
		`{"employeeId":`,
		`{"matches": "none"}`,
	} {
		got, _, err := ParseCandidates(in)
		if !errors.Is(err, ErrNoCandidates) {
			t.Fatalf("ParseCandidates(%q) err = %v, want ErrNoCandidates", in, err)
		}
		if len(got) != 0 {
			t.Fatalf("ParseCandidates(%q) returned %d candidates", in, len(got))
		}
	}
}

func TestParseCandidatesDirectKeepsAllElements(t *testing.T) {
	got, mode, err := ParseCandidates(`[]`)
	if err != nil || mode != ModeDirect || len(got) != 0 {
		t.Fatalf("empty array: got %v %s %v", got, mode, err)
	}

	got, _, err = ParseCandidates(`[{"employeeId":1},{"employeeId":"x"},3]`)
	if err != nil {
		t.Fatalf("ParseCandidates: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("direct parse returned %d elements, want 3", len(got))
	}
}

func TestDecodeObject(t *testing.T) {
	hasProb := func(r gjson.Result) bool { return r.Get("successProbability").Exists() }

	obj, mode, err := DecodeObject("```json\n{\"successProbability\":80}\n```", hasProb)
	if err != nil || mode != ModeDirect || string(obj) != `{"successProbability":80}` {
		t.Fatalf("direct: %s %s %v", obj, mode, err)
	}

	obj, mode, err = DecodeObject(`Result: {"successProbability":65,"risks":["a"]} trailing {`, hasProb)
	if err != nil || mode != ModeRecovered || string(obj) != `{"successProbability":65,"risks":["a"]}` {
		t.Fatalf("recovered: %s %s %v", obj, mode, err)
	}

	if _, _, err := DecodeObject(`[1,2]`, hasProb); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("array input err = %v", err)
	}
}

func TestBraceScanner(t *testing.T) {
	cases := []struct {
		in  string
		end int
	}{
		{`{}`, 1},
		{`{"a":{"b":1}} tail`, 12},
		{`{"a":"}"}`, 8},
		{`{"a":"\"}"}`, 10},
		{`{"a":"\\"}`, 9},
		{`{"a":{`, -1},
		{`{"a":"}`, -1},
	}
	for _, tc := range cases {
		if got := objectEnd(tc.in, 0); got != tc.end {
			t.Fatalf("objectEnd(%q) = %d, want %d", tc.in, got, tc.end)
		}
	}
}

func TestBraceScannerIgnoresStrayClosingBrace(t *testing.T) {
	var s braceScanner
	for _, c := range []byte(`}}`) {
		if s.step(c) {
			t.Fatalf("stray '}' reported as object end")
		}
	}
	if s.depth != 0 || s.state != stateCode {
		t.Fatalf("scanner state = %+v", s)
	}
}
