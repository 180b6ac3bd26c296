package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lattixdb/cyphercore/pkg/logging"
)

func TestQueryStartLogsQueryText(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("info")
	l.SetOutput(&buf)

	l.QueryStart("MATCH (n) RETURN n")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "query.start" {
		t.Fatalf("msg = %v, want query.start", entry["msg"])
	}
	if entry["query"] != "MATCH (n) RETURN n" {
		t.Fatalf("query field = %v", entry["query"])
	}
}

func TestQueryCommitIncludesRowsAndElapsed(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("info")
	l.SetOutput(&buf)

	l.QueryCommit("RETURN 1", 5*time.Millisecond, 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["rows"].(float64) != 1 {
		t.Fatalf("rows = %v, want 1", entry["rows"])
	}
	if !strings.Contains(entry["elapsed"].(string), "ms") {
		t.Fatalf("elapsed = %v, want a millisecond duration string", entry["elapsed"])
	}
}

func TestQueryErrorIncludesErrorKind(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("info")
	l.SetOutput(&buf)

	l.QueryError("MATCH (p RETURN p", 0, "SyntaxError", errBoom{})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["error_kind"] != "SyntaxError" {
		t.Fatalf("error_kind = %v, want SyntaxError", entry["error_kind"])
	}
	if entry["level"] != "error" {
		t.Fatalf("level = %v, want error", entry["level"])
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestWithFieldsAloneWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("info")
	l.SetOutput(&buf)

	l.WithFields(nil) // exercise WithFields without adding real fields

	if buf.Len() != 0 {
		t.Fatalf("expected no output yet, got %q", buf.String())
	}
}
