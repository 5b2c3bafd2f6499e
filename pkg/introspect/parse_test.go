package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/errors"
)

func TestParseColumnsFlatRecordNativeList(t *testing.T) {
	lines := dbt.ParseLogLines(`{"code": "Z999", "msg": "Running with dbt"}
{"code": "M011", "msg": ["id", "customer_id", "amount"]}`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "customer_id", "amount"}, columns)
}

func TestParseColumnsFlatRecordStringLiteral(t *testing.T) {
	lines := dbt.ParseLogLines(`{"code": "M011", "msg": "['id', 'amount']"}`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "amount"}, columns)
}

func TestParseColumnsNestedInfoRecord(t *testing.T) {
	lines := dbt.ParseLogLines(`{"info": {"code": "A001", "msg": "Running"}}
{"info": {"code": "I062", "msg": "['id', 'created_at']"}}`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "created_at"}, columns)
}

func TestParseColumnsNestedDataFallback(t *testing.T) {
	lines := dbt.ParseLogLines(`{"info": {"code": "I062"}, "data": {"msg": "['id']"}}`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, columns)
}

func TestParseColumnsLastMatchWins(t *testing.T) {
	lines := dbt.ParseLogLines(`{"code": "M011", "msg": "['stale']"}
{"code": "M011", "msg": "['fresh']"}`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, columns)
}

func TestParseColumnsLiteralFallback(t *testing.T) {
	// Older dbt versions print plain lines; the first is banner output and
	// the last bracketed line holds the list.
	lines := dbt.ParseLogLines(`Running with dbt=0.18.1
Found 12 models
['id', 'order date', 'amount']`)

	columns, err := ParseColumns(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "order date", "amount"}, columns)
}

func TestParseColumnsLiteralFallbackIgnoresFirstLine(t *testing.T) {
	// A bracketed first line alone is banner output, not a column list.
	lines := dbt.ParseLogLines(`[warn] something happened
no list here`)

	_, err := ParseColumns(lines)
	require.Error(t, err)
}

func TestParseColumnsUnparseable(t *testing.T) {
	lines := dbt.ParseLogLines(`Running with dbt=1.5.0
nothing useful at all`)

	_, err := ParseColumns(lines)
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.RawOutput, "nothing useful at all")
}

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    []string
	}{
		{"single quotes", `['a', 'b']`, []string{"a", "b"}},
		{"double quotes", `["a", "b"]`, []string{"a", "b"}},
		{"empty list", `[]`, []string{}},
		{"comma inside quotes", `['a,b', 'c']`, []string{"a,b", "c"}},
		{"spaces in names", `['order date', 'total amount']`, []string{"order date", "total amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseListLiteral(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
