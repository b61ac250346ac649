package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"console"},
		{"serve"},
		{"migrate"},
		{"worker"},
		{"company", "add"},
		{"job", "post"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not found: %v", path, err)
		}
	}
}

func TestJobPostRequiresFlags(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"job", "post", "--title", "Dev"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "company-id") {
		t.Fatalf("expected a missing company-id error, got %v", err)
	}
}
