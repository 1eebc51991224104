package history

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
	"time"

	"signalgen-go/internal/signal"
)

func TestJSONLRecorder(t *testing.T) {
	tmp := t.TempDir()
	path := tmp + "/samples.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	sample := signal.Sample{ID: "temperature", Ts: time.Now().UTC(), Value: 42.42, Status: signal.StatusNormal}
	recorder.Record(sample)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded signal.Sample
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.ID != sample.ID || decoded.Value != sample.Value || decoded.Status != sample.Status {
		t.Fatalf("unexpected decoded sample: %+v", decoded)
	}
}

func TestJSONLRecorderCloseIdempotent(t *testing.T) {
	recorder, err := NewJSONLRecorder(t.TempDir() + "/samples.jsonl")
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}
