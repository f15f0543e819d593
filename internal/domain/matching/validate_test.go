package matching

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, s := range items {
		out = append(out, json.RawMessage(s))
	}
	return out
}

func f(v float64) *float64 { return &v }

func TestValidateCandidatesShapeFilter(t *testing.T) {
	valid, rejected := ValidateCandidates(raws(
		`{"employeeId":1,"score":90}`,
		`{"employeeId":2,"score":"85%"}`,
		`{"employeeId":3,"score":" 72.5 "}`,
		`{"employeeId":4}`,
		`{"employeeId":5,"score":"high"}`,
		`{"employeeId":6,"score":null}`,
		`{"employeeId":0,"score":50}`,
		`{"employeeId":-3}`,
		`{"employeeId":2.5}`,
		`{"employeeId":"7"}`,
		`{"score":99}`,
		`42`,
		`{"employeeId":1,"score":10}`,
	))

	want := []Match{
		{EmployeeID: 1, Score: f(90)},
		{EmployeeID: 2, Score: f(85)},
		{EmployeeID: 3, Score: f(72.5)},
		{EmployeeID: 4},
		{EmployeeID: 5},
		{EmployeeID: 6},
	}
	if diff := cmp.Diff(want, valid); diff != "" {
		t.Fatalf("valid mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, rejected, 7)
	assert.Equal(t, "duplicate employeeId", rejected[len(rejected)-1].Reason)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, IDs(valid))
}

func TestValidateCandidatesEmpty(t *testing.T) {
	valid, rejected := ValidateCandidates(nil)
	assert.Empty(t, valid)
	assert.Empty(t, rejected)
}

func TestCoerceScore(t *testing.T) {
	assert.Nil(t, CoerceScore(gjson.Parse(`true`)))
	assert.Nil(t, CoerceScore(gjson.Parse(`"%"`)))
	assert.Nil(t, CoerceScore(gjson.Parse(`{"v":1}`)))
	require.NotNil(t, CoerceScore(gjson.Parse(`"100 %"`)))
	assert.InDelta(t, 100, *CoerceScore(gjson.Parse(`"100 %"`)), 1e-9)
	assert.InDelta(t, 0, *CoerceScore(gjson.Parse(`0`)), 1e-9)
}
