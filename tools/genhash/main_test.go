package main

import (
	"bytes"
	"strings"
	"testing"
)

const abc123SHA256 = "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090"

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestRunUsesEnvironmentPassword(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, env(map[string]string{"PWHASH_PASSWORD": "abc123"}), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != abc123SHA256 {
		t.Fatalf("unexpected digest %q", stdout.String())
	}
}

func TestRunFlagOverridesEnvironment(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-password", "abc123"}, env(map[string]string{"PWHASH_PASSWORD": "other"}), &stdout, &stderr)
	if code != 0 || strings.TrimSpace(stdout.String()) != abc123SHA256 {
		t.Fatalf("expected flag password to win, got %d %q", code, stdout.String())
	}
}

func TestRunRejectsConfirmMismatch(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-password", "abc123", "-confirm", "abc124"}, env(nil), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "passwords do not match") {
		t.Fatalf("expected mismatch message, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("no digest expected on mismatch, got %q", stdout.String())
	}
}

func TestRunRequiresPassword(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run(nil, env(nil), &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "password not entered") {
		t.Fatalf("expected not-entered message, got %q", stderr.String())
	}
}

func TestRunRejectsUnknownAlgorithm(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-algo", "md5"}, env(map[string]string{"PWHASH_PASSWORD": "abc123"}), &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("no digest expected, got %q", stdout.String())
	}
}
