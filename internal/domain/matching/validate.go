package matching

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Match is a candidate that passed the shape filter.
type Match struct {
	EmployeeID int64
	Score      *float64
}

// Rejection explains why a candidate was dropped by the shape filter.
type Rejection struct {
	Raw    string
	Reason string
}

const maxSafeID = 1<<53 - 1

// ValidateCandidates keeps candidates whose employeeId is an integer greater
// than zero. score becomes a number when it is one, a numeric string or a
// percentage string, and nil otherwise. Repeated employees keep their first
// occurrence.
func ValidateCandidates(candidates []json.RawMessage) ([]Match, []Rejection) {
	valid := make([]Match, 0, len(candidates))
	var rejected []Rejection
	seen := make(map[int64]struct{}, len(candidates))

	for _, raw := range candidates {
		obj := gjson.ParseBytes(raw)
		if !obj.IsObject() {
			rejected = append(rejected, Rejection{Raw: string(raw), Reason: "not an object"})
			continue
		}

		id, ok := EmployeeID(obj.Get("employeeId"))
		if !ok {
			rejected = append(rejected, Rejection{Raw: string(raw), Reason: "employeeId is not a positive integer"})
			continue
		}
		if _, dup := seen[id]; dup {
			rejected = append(rejected, Rejection{Raw: string(raw), Reason: "duplicate employeeId"})
			continue
		}
		seen[id] = struct{}{}

		valid = append(valid, Match{EmployeeID: id, Score: CoerceScore(obj.Get("score"))})
	}
	return valid, rejected
}

// EmployeeID reads an integral, positive employee id from a JSON number.
func EmployeeID(v gjson.Result) (int64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > maxSafeID || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// CoerceScore converts a reported score to a number, or nil when it has none.
func CoerceScore(v gjson.Result) *float64 {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Float()
	case gjson.String:
		s := strings.TrimSpace(v.String())
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// IDs returns the employee ids of matches in order.
func IDs(matches []Match) []int64 {
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.EmployeeID)
	}
	return out
}
