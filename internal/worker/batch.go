package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// Checker runs one fact-check
type Checker interface {
	Check(ctx context.Context, session model.Session, input string) (*model.CheckResult, error)
}

// CheckJob represents one input line to verify
type CheckJob struct {
	Index   int
	Input   string
	Session model.Session
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	result, err := j.Checker.Check(ctx, j.Session, j.Input)
	if err != nil {
		return &CheckResult{Index: j.Index, Input: j.Input, Error: err}
	}
	return &CheckResult{Index: j.Index, Input: j.Input, Result: result}
}

// CheckResult represents the result of a check job
type CheckResult struct {
	Index  int
	Input  string
	Result *model.CheckResult
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks many inputs concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessInputs checks every input within one session and returns results in input order
func (b *BatchProcessor) ProcessInputs(ctx context.Context, session model.Session, inputs []string) []*CheckResult {
	if len(inputs) == 0 {
		return []*CheckResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, input := range inputs {
		pool.Submit(&CheckJob{
			Index:   i,
			Input:   input,
			Session: session,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, 0, len(results))
	for _, result := range results {
		checkResults = append(checkResults, result.(*CheckResult))
	}
	sort.Slice(checkResults, func(i, j int) bool {
		return checkResults[i].Index < checkResults[j].Index
	})

	return checkResults
}

// ProcessFile reads inputs from a file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, session model.Session, filePath string) ([]*CheckResult, error) {
	inputs, err := ReadLinesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, session, inputs), nil
}

// ReadLinesFromFile reads one input per line, skipping blanks, # comments
// and exact duplicates
func ReadLinesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
