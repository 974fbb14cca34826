package queue

import (
	"context"
	"strings"
	"testing"
)

func TestExecutorSuccess(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "echo hi", 0)
	if !res.Success {
		t.Fatalf("expected success, got %#v", res)
	}
	if res.Output != "hi" {
		t.Fatalf("expected output 'hi', got %q", res.Output)
	}
}

func TestExecutorSuccessWithNoOutput(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "true", 0)
	if !res.Success {
		t.Fatalf("expected success, got %#v", res)
	}
	if res.Output != "Command executed successfully" {
		t.Fatalf("expected default message, got %q", res.Output)
	}
}

func TestExecutorNonZeroExit(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "exit 1", 0)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res)
	}
	if res.ErrMessage != "Command exited with code 1" {
		t.Fatalf("unexpected error message: %q", res.ErrMessage)
	}
}

func TestExecutorNonZeroExitWithStderr(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "echo boom 1>&2; exit 1", 0)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res)
	}
	if res.ErrMessage != "boom" {
		t.Fatalf("expected stderr to surface, got %q", res.ErrMessage)
	}
}

func TestExecutorTimeout(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "sleep 5", 1)
	if res.Success {
		t.Fatalf("expected timeout failure, got %#v", res)
	}
	if !strings.Contains(res.ErrMessage, "timed out after 1 seconds") {
		t.Fatalf("unexpected error message: %q", res.ErrMessage)
	}
}

func TestExecutorCommandNotFound(t *testing.T) {
	e := NewExecutor()
	res := e.Run(context.Background(), "this-command-does-not-exist-anywhere", 0)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res)
	}
	if !strings.Contains(res.ErrMessage, "Command not found") {
		t.Fatalf("expected command-not-found message, got %q", res.ErrMessage)
	}
}
