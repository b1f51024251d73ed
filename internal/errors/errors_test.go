package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{name: "validation error", err: Validation("title", "must not be empty"), expected: "Error: invalid title: must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to load %s", "wishes")
	if result != "Error: failed to load wishes" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestTaxonomyMatchesThroughWrapping(t *testing.T) {
	cause := NotFound("wishes", "abc")
	batch := &BatchFailure{Op: "delete", Size: 3, Err: cause}
	wrapped := fmt.Errorf("deleting selection: %w", batch)

	if !IsBatchFailure(wrapped) {
		t.Error("IsBatchFailure() = false for wrapped batch failure")
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound() = false for batch failure caused by a missing document")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation() = true for unrelated error")
	}

	var nf *NotFoundError
	if !errors.As(wrapped, &nf) || nf.ID != "abc" {
		t.Errorf("errors.As() did not recover NotFoundError, got %+v", nf)
	}
}

func TestTransient(t *testing.T) {
	if Transient("query wishes", nil) != nil {
		t.Error("Transient(nil) should be nil")
	}

	cause := errors.New("connection refused")
	err := Transient("query wishes", cause)
	if !IsTransient(err) {
		t.Error("IsTransient() = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
	if err.Error() != "query wishes: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
