package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"graphgrade/internal/score"
	"graphgrade/internal/spec"
	"graphgrade/internal/testutil"
	"graphgrade/internal/vcs"
)

const runStandard = `[
  {"id": "0", "difficulty": "easy", "category": "Connectivity", "conversations": [
    {"from": "human", "value": "How many nodes and edges?"},
    {"from": "gpt", "value": "There are 10 nodes and 2 edges."},
    {"from": "human", "value": "List the edges."},
    {"from": "gpt", "value": "The edges are represented by the tuples:\n(5, 7), (7, 9)."},
    {"from": "human", "value": "Is there a path between node 5 and node 9?"},
    {"from": "gpt", "value": "Yes, there is a path between node 5 and node 9."}
  ]},
  {"id": "2", "difficulty": "easy", "category": "Connectivity", "conversations": [
    {"from": "human", "value": "How many nodes and edges?"},
    {"from": "gpt", "value": "There are 10 nodes and 2 edges."},
    {"from": "human", "value": "List the edges."},
    {"from": "gpt", "value": "The edges are represented by the tuples:\n(5, 7), (7, 9)."},
    {"from": "human", "value": "Is there a path between node 5 and node 9?"},
    {"from": "gpt", "value": "Yes, there is a path between node 5 and node 9."}
  ]}
]`

const runResults = `[
  {"id": 0, "image_url": "/img/Connectivity_easy/0.png", "segment3": "Yes, the path is 5-7-9."},
  {"id": 1, "image_url": "/short", "segment3": "Yes."},
  {"id": 2, "image_url": "/img/Connectivity_easy/2.png", "segment3": "Yes, the path is 5-9"},
  {"id": 3, "image_url": "/img/Connectivity_easy/3.png", "segment3": "Yes, the path is 5-7-9."}
]`

func writeRunInputs(t *testing.T) (string, spec.Config) {
	t.Helper()
	root := t.TempDir()
	for name, body := range map[string]string{"standard.json": runStandard, "results.json": runResults} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	cfg := spec.Config{
		Version:  1,
		Inputs:   spec.InputsConfig{Results: "results.json", Standard: "standard.json"},
		Profile:  "chatgpt",
		Segments: []string{"segment3"},
		Schema: spec.SchemaConfig{
			CategorySegment:   2,
			CategorySeparator: "_",
			DifficultySource:  spec.DifficultyFromStandard,
		},
		Locator:   spec.LocatorConfig{Type: spec.LocatorDirect},
		OutputDir: "out",
		Workers:   2,
	}
	return root, cfg
}

func fixedDeps() RunDependencies {
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return RunDependencies{
		RunID: func() (string, error) { return "run-1", nil },
		Now:   func() time.Time { return clock },
		RepoMetadataLoader: func(_ context.Context, root string, _ ...string) (vcs.Metadata, error) {
			return vcs.Metadata{Name: filepath.Base(root), VCS: "git", Commit: "commit", Branch: "main", Dirty: false}, nil
		},
	}
}

// TestRunGradesInInputOrder checks outcomes, failures and the summary of a
// small mixed batch.
func TestRunGradesInInputOrder(t *testing.T) {
	root, cfg := writeRunInputs(t)
	ctx := testutil.Context(t, time.Second)
	results, err := Run(ctx, cfg, RunParams{Root: root, Deps: fixedDeps()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []score.Kind{score.KindCorrect, score.KindUnsupported, score.KindRough, score.KindLookupFailed}
	if len(results.Outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %+v", len(want), results.Outcomes)
	}
	for i, kind := range want {
		if results.Outcomes[i].Index != i || results.Outcomes[i].Kind != kind {
			t.Fatalf("outcome %d: expected %s, got %+v", i, kind, results.Outcomes[i])
		}
	}
	if len(results.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %+v", results.Failures)
	}
	summary := results.Summary
	if summary.Records != 4 || summary.Counted != 2 || summary.Correct != 1 || summary.Accuracy != 0.5 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	exact, ok := results.Ratio(score.Row{Category: "Connectivity", Difficulty: "easy", Metric: score.MetricExact})
	if !ok || exact != 0.5 {
		t.Fatalf("expected exact 0.5, got %v (%v)", exact, ok)
	}
	rough, ok := results.Ratio(score.Row{Category: "Connectivity", Metric: score.MetricRough})
	if !ok || rough != 1 {
		t.Fatalf("expected rough total 1, got %v (%v)", rough, ok)
	}
	if results.RunID != "run-1" || results.Profile != "chatgpt" || results.Workers != 2 {
		t.Fatalf("unexpected run metadata %+v", results)
	}
}

func TestRunDefaultIDNamesProfileAndStart(t *testing.T) {
	root, cfg := writeRunInputs(t)
	deps := fixedDeps()
	deps.RunID = nil
	results, err := Run(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: deps})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(results.RunID, "20240102T030405Z-chatgpt-") {
		t.Fatalf("expected id from start time and profile, got %q", results.RunID)
	}
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	root, cfg := writeRunInputs(t)
	cfg.Profile = "bard"
	if _, err := Run(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: fixedDeps()}); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}

func TestRunRejectsUnknownSegment(t *testing.T) {
	root, cfg := writeRunInputs(t)
	cfg.Segments = []string{"segment9"}
	if _, err := Run(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: fixedDeps()}); err == nil {
		t.Fatalf("expected unknown segment error")
	}
}

// TestRunVerboseLogsEveryOutcome checks verbose output lists each graded
// answer after the header.
func TestRunVerboseLogsEveryOutcome(t *testing.T) {
	root, cfg := writeRunInputs(t)
	var stdout, logFile bytes.Buffer
	_, err := Run(testutil.Context(t, time.Second), cfg, RunParams{
		Root:          root,
		Verbose:       true,
		VerboseWriter: &stdout,
		VerboseLog:    &logFile,
		NoColor:       true,
		Deps:          fixedDeps(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	output := stdout.String()
	for _, fragment := range []string{
		"[verbose] Run run-1: profile=chatgpt segments=segment3 workers=2",
		"#0 id=0 Connectivity/easy segment3 -> correct",
		"#2 id=2 Connectivity/easy segment3 -> rough",
		"#3 id=3",
		"Graded 4 answers: 2 counted, 1 correct (50.0%), 2 excluded",
	} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in verbose output:\n%s", fragment, output)
		}
	}
	if logFile.String() != output {
		t.Fatalf("expected log file to mirror unstyled output")
	}
}

func TestRunObserverSeesEveryOutcome(t *testing.T) {
	root, cfg := writeRunInputs(t)
	observer := &recordingObserver{}
	results, err := Run(testutil.Context(t, time.Second), cfg, RunParams{
		Root:     root,
		Observer: MultiObserver{observer, nil},
		Deps:     fixedDeps(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	observer.mu.Lock()
	defer observer.mu.Unlock()
	if observer.runID != "run-1" || observer.records != 4 {
		t.Fatalf("unexpected run start %q %d", observer.runID, observer.records)
	}
	if len(observer.outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(observer.outcomes))
	}
	if observer.end.RunID != results.RunID {
		t.Fatalf("expected run end with results")
	}
}

func TestRunRecordsRepoMetadata(t *testing.T) {
	root, cfg := writeRunInputs(t)
	results, err := Run(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: fixedDeps()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Repo == nil || results.Repo.Commit != "commit" || results.Repo.Branch != "main" {
		t.Fatalf("unexpected repo metadata %+v", results.Repo)
	}
}

func TestRunPassesInputsToRepoInspection(t *testing.T) {
	root, cfg := writeRunInputs(t)
	deps := fixedDeps()
	var inspected []string
	deps.RepoMetadataLoader = func(_ context.Context, dir string, paths ...string) (vcs.Metadata, error) {
		inspected = append([]string{dir}, paths...)
		return vcs.Metadata{VCS: "git", Commit: "c", Dirty: true, Modified: []string{"results.json"}}, nil
	}
	results, err := Run(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: deps})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{root, filepath.Join(root, "results.json"), filepath.Join(root, "standard.json")}
	if strings.Join(inspected, "|") != strings.Join(want, "|") {
		t.Fatalf("expected inspection of %v, got %v", want, inspected)
	}
	if results.Repo == nil || !results.Repo.Dirty || len(results.Repo.InputsModified) != 1 {
		t.Fatalf("unexpected repo metadata %+v", results.Repo)
	}
}

func TestRunWithoutGitWarnsAndContinues(t *testing.T) {
	root, cfg := writeRunInputs(t)
	deps := fixedDeps()
	deps.RepoMetadataLoader = func(context.Context, string, ...string) (vcs.Metadata, error) {
		return vcs.Metadata{}, errors.New("not a git repository")
	}
	var stdout bytes.Buffer
	results, err := Run(testutil.Context(t, time.Second), cfg, RunParams{
		Root:          root,
		Verbose:       true,
		VerboseWriter: &stdout,
		NoColor:       true,
		Deps:          deps,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Repo != nil {
		t.Fatalf("expected no repo metadata, got %+v", results.Repo)
	}
	if !strings.Contains(stdout.String(), "No git metadata") {
		t.Fatalf("expected warning, got %q", stdout.String())
	}
	if results.Summary.Graded != 4 {
		t.Fatalf("expected the run to complete, got %+v", results.Summary)
	}
}

func TestRunAndWriteUsesOutputDir(t *testing.T) {
	root, cfg := writeRunInputs(t)
	_, paths, err := RunAndWrite(testutil.Context(t, time.Second), cfg, RunParams{Root: root, Deps: fixedDeps()})
	if err != nil {
		t.Fatalf("run and write: %v", err)
	}
	if paths.RunDir() != filepath.Join(root, "out", "run-1") {
		t.Fatalf("unexpected run dir %s", paths.RunDir())
	}
	if _, err := os.Stat(paths.ResultsPath()); err != nil {
		t.Fatalf("missing results: %v", err)
	}
}

// recordingObserver stores callbacks for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	runID    string
	records  int
	outcomes []score.Outcome
	end      Results
}

func (o *recordingObserver) OnRunStart(runID string, records int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runID = runID
	o.records = records
}

func (o *recordingObserver) OnOutcome(outcome score.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) OnRunEnd(results Results) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.end = results
}
