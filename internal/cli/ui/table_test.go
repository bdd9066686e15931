package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Group", "Soundness", "Rules")
	table.AddRow("commutativity", "fp-safe", "6")
	table.AddRow("id-reduce", "exact", "12")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Group"+strings.Repeat(" ", 10)+"Soundness  Rules" {
		t.Errorf("header not padded: %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("missing rule line: %q", lines[1])
	}
	col := strings.Index(lines[2], "fp-safe")
	if col != strings.Index(lines[3], "exact") {
		t.Errorf("second column misaligned:\n%s\n%s", lines[2], lines[3])
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTableShortRow(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "A", "B")
	table.AddRow("only")
	table.Render()

	if !strings.Contains(buf.String(), "only") {
		t.Errorf("row missing: %q", buf.String())
	}
}

func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, true).Render()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestTableCountsRunes(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Op", "Arity")
	table.AddRow("→", "1")
	table.AddRow("ab", "2")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[2] != "→   1" {
		t.Errorf("multi-byte cell padded by bytes: %q", lines[2])
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Cost", "1")
	kv.AddRow("Stop reason", "saturated")
	kv.Render()

	want := "Cost:" + strings.Repeat(" ", 8) + "1\nStop reason: saturated\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Rules", true)
	if buf.String() != "Rules\n─────\n" {
		t.Errorf("got %q", buf.String())
	}
}
