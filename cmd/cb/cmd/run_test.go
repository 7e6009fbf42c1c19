package cmd

import (
	"bytes"
	"os"
	"testing"
)

// TestRunSample exercises "cb run <sample>" directly against the registered
// sample programs, capturing stdout with the same os.Pipe swap the teacher's
// run_semantic_test.go uses for stderr.
func TestRunSample(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	runErr := runSample(nil, []string{"hello"})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	out := buf.String()

	if runErr != nil {
		t.Fatalf("runSample(hello) returned error: %v", runErr)
	}
	if !bytes.Contains([]byte(out), []byte("Hello from Cb!")) {
		t.Errorf("expected output to contain greeting, got: %q", out)
	}
}

func TestRunSampleUnknown(t *testing.T) {
	if err := runSample(nil, []string{"does-not-exist"}); err == nil {
		t.Fatal("expected an error for an unregistered sample name")
	}
}

func TestSampleListRunE(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	listErr := sampleListCmd.RunE(sampleListCmd, nil)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	out := buf.String()

	if listErr != nil {
		t.Fatalf("sample list returned error: %v", listErr)
	}
	if !bytes.Contains([]byte(out), []byte("hello")) {
		t.Errorf("expected sample list output to mention the hello sample, got: %q", out)
	}
}
