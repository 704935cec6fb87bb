package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/veritas/internal/model"
)

// mockChecker implements Checker
type mockChecker struct {
	failOn string
}

func (m *mockChecker) Check(ctx context.Context, session model.Session, input string) (*model.CheckResult, error) {
	time.Sleep(5 * time.Millisecond)
	if m.failOn != "" && strings.Contains(input, m.failOn) {
		return nil, errors.New("check error")
	}
	return &model.CheckResult{
		SessionID: session.ID,
		Input:     input,
		Verdict:   model.VerdictUnverified,
	}, nil
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inputs.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessInputs(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)
	session := model.Session{ID: "web-1"}

	inputs := []string{"claim one", "claim two", "claim three", "claim four"}
	results := processor.ProcessInputs(context.Background(), session, inputs)

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}

	for i, res := range results {
		if res.Index != i || res.Input != inputs[i] {
			t.Errorf("expected result %d for %q, got %d for %q", i, inputs[i], res.Index, res.Input)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Input, res.Error)
		}
		if res.Result == nil || res.Result.SessionID != "web-1" {
			t.Errorf("expected result carrying the session id, got %+v", res.Result)
		}
	}
}

func TestBatchProcessor_ProcessInputs_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{failOn: "bad"}, 2)

	results := processor.ProcessInputs(context.Background(), model.Session{}, []string{"good", "bad"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("expected success for first input, got %v", results[0].Error)
	}
	if results[1].Error == nil || results[1].Result != nil {
		t.Errorf("expected error and nil result for second input, got %+v", results[1])
	}
}

func TestBatchProcessor_ProcessInputs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)

	results := processor.ProcessInputs(context.Background(), model.Session{}, nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadLinesFromFile(t *testing.T) {
	path := writeTempFile(t, "The Eiffel Tower is in Paris\n# comment\nhttps://example.com/story\n   \nWater boils at 100C   \nThe Eiffel Tower is in Paris\n")

	lines, err := ReadLinesFromFile(path)
	if err != nil {
		t.Fatalf("ReadLinesFromFile failed: %v", err)
	}

	expected := []string{"The Eiffel Tower is in Paris", "https://example.com/story", "Water boils at 100C"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i, line := range lines {
		if line != expected[i] {
			t.Errorf("expected %q at index %d, got %q", expected[i], i, line)
		}
	}
}

func TestReadLinesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadLinesFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestCheckResult_GetError(t *testing.T) {
	r1 := &CheckResult{Input: "x"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("check failed")
	r2 := &CheckResult{Input: "x", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeTempFile(t, "claim a\nclaim b\n# comment\n\nclaim c\n")
	processor := NewBatchProcessor(&mockChecker{}, 2)

	results, err := processor.ProcessFile(context.Background(), model.Session{}, path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)

	if _, err := processor.ProcessFile(context.Background(), model.Session{}, "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
