// Package introspect turns dbt's line-oriented, log-intermixed output into
// an ordered list of column names. The log schema has changed across dbt
// versions, so extraction runs an ordered chain of parser strategies and
// the first successful match wins; the chain stays open for extension as
// new formats appear.
package introspect

import (
	"strings"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/errors"
)

// columnLogCodes are the diagnostic codes dbt has used for macro log
// output across versions. A record carrying one of these holds the
// column list in its message field.
var columnLogCodes = map[string]bool{
	"M011": true, // legacy macro event code
	"I062": true, // structured-logging jinja log code
}

// recordStrategy extracts a (code, message) pair from one log record
// shape. Strategies are tried in order; nesting of the code and message
// fields has moved between dbt releases.
type recordStrategy func(record map[string]any) (code string, msg any, ok bool)

// recordStrategies is the ordered list of known record shapes.
var recordStrategies = []recordStrategy{
	// Flat records: {"code": "M011", "msg": ...}
	func(record map[string]any) (string, any, bool) {
		code, ok := record["code"].(string)
		if !ok {
			return "", nil, false
		}
		return code, record["msg"], true
	},
	// Nested info: {"info": {"code": "I062", "msg": ...}}
	func(record map[string]any) (string, any, bool) {
		info, ok := record["info"].(map[string]any)
		if !ok {
			return "", nil, false
		}
		code, ok := info["code"].(string)
		if !ok {
			return "", nil, false
		}
		if msg, present := info["msg"]; present {
			return code, msg, true
		}
		// Some releases moved the message under "data".
		if data, ok := record["data"].(map[string]any); ok {
			return code, data["msg"], true
		}
		return "", nil, false
	},
}

// ParseColumns extracts the ordered column list from dbt run-operation
// output. Structured records with a known diagnostic code are preferred;
// the last matching record wins, which defends against duplicate or
// retried log lines. Without any coded record, the last bracketed literal
// among the lines after the first is decoded instead. Output matching
// neither branch yields a ParseError carrying the raw output.
func ParseColumns(lines []dbt.LogLine) ([]string, error) {
	// Branch 1: structured log records with a known code.
	var lastMsg any
	found := false
	for _, line := range lines {
		if line.Record == nil {
			continue
		}
		for _, strategy := range recordStrategies {
			code, msg, ok := strategy(line.Record)
			if ok && columnLogCodes[code] {
				lastMsg = msg
				found = true
				break
			}
		}
	}
	if found {
		columns, err := decodeMessage(lastMsg)
		if err != nil {
			return nil, errors.NewParseError("columns", err.Error(), rawOutput(lines))
		}
		return columns, nil
	}

	// Branch 2: no coded record. Treat all lines after the first as
	// literal message lines and decode the last bracketed one.
	var lastLiteral string
	for i, line := range lines {
		if i == 0 {
			continue
		}
		candidate := strings.TrimSpace(line.Raw)
		if looksLikeList(candidate) {
			lastLiteral = candidate
		}
	}
	if lastLiteral != "" {
		columns, err := parseListLiteral(lastLiteral)
		if err != nil {
			return nil, errors.NewParseError("columns", err.Error(), rawOutput(lines))
		}
		return columns, nil
	}

	return nil, errors.NewParseError("columns",
		"no column list found in dbt output", rawOutput(lines))
}

// decodeMessage turns a log record's message field into a column list.
// The field is either a native list of strings or a string-encoded list
// literal, depending on dbt version.
func decodeMessage(msg any) ([]string, error) {
	switch v := msg.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if looksLikeList(trimmed) {
			return parseListLiteral(trimmed)
		}
		return nil, errors.New("log message is not a list literal: " + trimmed)
	case []any:
		columns := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("log message list contains a non-string item")
			}
			columns = append(columns, s)
		}
		return columns, nil
	default:
		return nil, errors.New("log message has no decodable column list")
	}
}

// looksLikeList reports whether s is a bracketed list literal.
func looksLikeList(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// parseListLiteral decodes a string-encoded list literal such as
// ['id', 'customer_id', 'amount'] into its string items.
func parseListLiteral(s string) ([]string, error) {
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if inner == "" {
		return []string{}, nil
	}

	var columns []string
	for _, item := range splitListItems(inner) {
		item = strings.TrimSpace(item)
		item = strings.Trim(item, `'"`)
		columns = append(columns, item)
	}
	return columns, nil
}

// splitListItems splits the inside of a list literal on commas, keeping
// commas inside quoted items intact.
func splitListItems(inner string) []string {
	var items []string
	var current strings.Builder
	var quote rune

	for _, r := range inner {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',':
			items = append(items, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	items = append(items, current.String())
	return items
}

// rawOutput reassembles the raw lines for error diagnostics.
func rawOutput(lines []dbt.LogLine) string {
	raw := make([]string, len(lines))
	for i, line := range lines {
		raw[i] = line.Raw
	}
	return strings.Join(raw, "\n")
}
