package service

import (
	"path/filepath"
	"reflect"
	"testing"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
)

func TestCountErrorsScenario(t *testing.T) {
	root, _, _ := scenarioRoot(t)

	out, err := newEngine(t).CountErrors([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"ERROR x": 2, "ERROR y": 1}
	if !reflect.DeepEqual(out.Counts, want) {
		t.Errorf("counts = %v, want %v", out.Counts, want)
	}
}

func TestCountDuplicateErrorsScenario(t *testing.T) {
	root, _, _ := scenarioRoot(t)

	out, err := newEngine(t).CountDuplicateErrors([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"ERROR x": 1}
	if !reflect.DeepEqual(out.Counts, want) {
		t.Errorf("counts = %v, want %v", out.Counts, want)
	}
	if out.Report != "Error: ERROR x, Count: 1\n" {
		t.Errorf("unexpected report %q", out.Report)
	}
}

func TestFrequencySharedAcrossRoots(t *testing.T) {
	r1 := t.TempDir()
	r2 := t.TempDir()
	writeLog(t, filepath.Join(r1, "a.log"), "dup\nonce\ndup\n", day(1))
	writeLog(t, filepath.Join(r2, "b.log"), "dup\n dup\n", day(1))

	e := newEngine(t)
	all, err := e.CountErrors([]string{r1, filepath.Join(r1, "missing"), r2})
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"dup": 3, "once": 1, " dup": 1}; !reflect.DeepEqual(all.Counts, want) {
		t.Errorf("all = %v, want %v", all.Counts, want)
	}
	if len(all.Failures) != 1 || all.Failures[0].Kind != logerr.DirectoryNotFound {
		t.Errorf("unexpected failures %v", all.Failures)
	}

	dups, err := e.CountDuplicateErrors([]string{r1, r2})
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"dup": 2}; !reflect.DeepEqual(dups.Counts, want) {
		t.Errorf("duplicates = %v, want %v", dups.Counts, want)
	}
}

func TestCountErrorsReportOrder(t *testing.T) {
	root := t.TempDir()
	writeLog(t, filepath.Join(root, "a.log"), "b\na\nb\n", day(1))

	out, err := newEngine(t).CountErrors([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if want := "Error: b, Count: 2\nError: a, Count: 1\n"; out.Report != want {
		t.Errorf("report = %q, want %q", out.Report, want)
	}
}

func TestCountErrorsInvalidInput(t *testing.T) {
	if _, err := newEngine(t).CountErrors(nil); !logerr.HasKind(err, logerr.InvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestFormatReportNilTable(t *testing.T) {
	if _, err := FormatReport(nil); !logerr.HasKind(err, logerr.AggregationFailure) {
		t.Errorf("expected AggregationFailure, got %v", err)
	}
}
