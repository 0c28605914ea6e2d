package asnval

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// submissionTime is the wall clock the fixtures are written against:
// Wednesday 2024-03-13 02:00 local, ten hours before the valid
// fixture's ship time.
func submissionTime() time.Time {
	return time.Date(2024, time.March, 13, 2, 0, 0, 0, time.Local)
}

func fixedClock() func() time.Time {
	return func() time.Time { return submissionTime() }
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}

func parseFixture(t *testing.T, name string) *Document {
	t.Helper()
	doc, err := ParseEDI(loadFixture(t, name))
	if err != nil {
		t.Fatalf("parsing fixture %s: %v", name, err)
	}
	doc.Name = name
	return doc
}

func parseText(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseEDI(text)
	if err != nil {
		t.Fatalf("parsing inline document: %v", err)
	}
	return doc
}
