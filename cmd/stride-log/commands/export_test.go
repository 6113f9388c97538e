package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExportJSONL(t *testing.T) {
	path := writeTestLog(t)
	out := filepath.Join(t.TempDir(), "events.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %v, want 4", len(lines))
	}
	for i, line := range lines {
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Errorf("line %d not valid JSON: %v", i, err)
		}
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeTestLog(t)
	out := filepath.Join(t.TempDir(), "events.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	// Header plus four events.
	if len(rows) != 5 {
		t.Fatalf("rows = %v, want 5", len(rows))
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][2] != "ANOMALY" {
		t.Errorf("rows[2] category = %v, want ANOMALY", rows[2][2])
	}
	if !strings.Contains(rows[2][4], "distance CLAMP") {
		t.Errorf("rows[2] detail = %v", rows[2][4])
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeTestLog(t)

	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("RunExport() error = nil for unknown format")
	}
}
