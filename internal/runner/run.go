package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"graphgrade/internal/config"
	"graphgrade/internal/dataset"
	"graphgrade/internal/extract"
	"graphgrade/internal/score"
	"graphgrade/internal/spec"
	"graphgrade/internal/validate"
	"graphgrade/internal/vcs"
)

// RunDependencies allows injecting the run id source, clock and repository
// metadata.
type RunDependencies struct {
	RunID              func() (string, error)
	Now                func() time.Time
	RepoMetadataLoader func(ctx context.Context, root string, paths ...string) (vcs.Metadata, error)
}

// RunParams configures a run invocation.
type RunParams struct {
	// Root resolves relative input and output paths.
	Root      string
	OutputDir string
	// Workers overrides the configured worker count when positive.
	Workers       int
	Verbose       bool
	VerboseWriter io.Writer
	VerboseLog    io.Writer
	NoColor       bool
	Observer      RunObserver
	Render        ReportRenderer
	Deps          RunDependencies
}

// Run grades the configured results file against the standard set.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	startedAt := now()

	profile, err := extract.ProfileByName(cfg.Profile)
	if err != nil {
		return Results{}, err
	}
	runID, err := ensureRunID(params.Deps.RunID, startedAt, profile.Name)
	if err != nil {
		return Results{}, err
	}
	segments, err := parseSegments(cfg.Segments)
	if err != nil {
		return Results{}, err
	}

	workers := cfg.Workers
	if params.Workers > 0 {
		workers = params.Workers
	}
	workers = max(workers, 1)
	logger := verboseLogger{
		enabled: params.Verbose,
		stdout:  params.VerboseWriter,
		log:     params.VerboseLog,
		noColor: params.NoColor,
	}

	inputs := InputFiles{
		Results:  config.ResolvePath(params.Root, cfg.Inputs.Results),
		Standard: config.ResolvePath(params.Root, cfg.Inputs.Standard),
	}
	standard, err := dataset.LoadStandard(inputs.Standard)
	if err != nil {
		return Results{}, err
	}
	records, err := dataset.LoadResults(inputs.Results)
	if err != nil {
		return Results{}, err
	}
	logger.printf(styleTask, "Run %s: profile=%s segments=%s workers=%d", runID, profile.Name, joinSegments(segments), workers)
	logger.printf(styleDefault, "Loaded %d result records and %d standard records", len(records), len(standard))

	repo := repoMetadata(ctx, params.Root, inputs, params.Deps.RepoMetadataLoader, logger)

	locator, err := dataset.BuildLocator(cfg.Locator, standard)
	if err != nil {
		return Results{}, err
	}
	opts := score.Options{
		Facts:            dataset.BuildFacts(standard),
		Registry:         validate.NewRegistry(profile),
		Locator:          locator,
		Segments:         segments,
		Workers:          workers,
		RecordDifficulty: cfg.Schema.DifficultySource != spec.DifficultyFromResult,
	}
	if params.Observer != nil {
		opts.Observer = scoreObserver{observer: params.Observer}
		params.Observer.OnRunStart(runID, len(records))
	}
	scorer, err := score.NewScorer(opts)
	if err != nil {
		return Results{}, err
	}

	items, rejected := dataset.Items(records, cfg.Schema)
	if params.Observer != nil {
		for _, outcome := range rejected {
			params.Observer.OnOutcome(outcome)
		}
	}
	report, err := scorer.Score(ctx, items)
	if err != nil {
		return Results{}, err
	}

	outcomes := append(slices.Clone(rejected), report.Outcomes...)
	slices.SortStableFunc(outcomes, func(x, y score.Outcome) int {
		return x.Index - y.Index
	})
	for _, outcome := range outcomes {
		logOutcome(logger, outcome)
	}

	results := Results{
		RunID:      runID,
		Repo:       repo,
		Profile:    profile.Name,
		Inputs:     inputs,
		Segments:   segments,
		Workers:    workers,
		StartedAt:  startedAt,
		FinishedAt: now(),
		Outcomes:   outcomes,
		Accuracy:   report.Accuracy.Rows(),
		Totals:     report.Accuracy.Totals(),
		EdgeRates:  report.Accuracy.RateRows(),
		Failures:   failures(outcomes),
		Summary:    summarize(len(records), outcomes),
	}
	logger.printf(styleMetrics, "Graded %d answers: %d counted, %d correct (%.1f%%), %d excluded",
		results.Summary.Graded, results.Summary.Counted, results.Summary.Correct,
		results.Summary.Accuracy*100, len(results.Failures))
	if params.Observer != nil {
		params.Observer.OnRunEnd(results)
	}
	return results, nil
}

// RunAndWrite runs the grader and writes results.json and report.html.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.OutputDir
	}
	outputDir = config.ResolvePath(params.Root, outputDir)
	paths, err := WriteRunOutputs(results, outputDir, params.Render)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

// repoMetadata records the git state of the project root and whether the
// input files carry uncommitted changes. Projects outside git are graded
// without it.
func repoMetadata(ctx context.Context, root string, inputs InputFiles, loader func(context.Context, string, ...string) (vcs.Metadata, error), logger verboseLogger) *RepoMetadata {
	if loader == nil {
		loader = vcs.Inspect
	}
	dir := root
	if dir == "" {
		dir = filepath.Dir(inputs.Results)
	}
	meta, err := loader(ctx, dir, inputs.Results, inputs.Standard)
	if err != nil {
		logger.printf(styleWarn, "No git metadata for %s: %v", orDash(dir), err)
		return nil
	}
	if len(meta.Modified) > 0 {
		logger.printf(styleWarn, "Inputs have uncommitted changes: %s", strings.Join(meta.Modified, ", "))
	}
	return &RepoMetadata{
		Name:           meta.Name,
		VCS:            meta.VCS,
		Commit:         meta.Commit,
		Branch:         meta.Branch,
		Dirty:          meta.Dirty,
		InputsModified: meta.Modified,
	}
}

func ensureRunID(source func() (string, error), startedAt time.Time, profile string) (string, error) {
	if source == nil {
		source = func() (string, error) { return NewRunID(startedAt, profile) }
	}
	runID, err := source()
	if err != nil {
		return "", fmt.Errorf("run id: %w", err)
	}
	if strings.TrimSpace(runID) == "" {
		return "", fmt.Errorf("run id is empty")
	}
	return runID, nil
}

func parseSegments(names []string) ([]validate.Segment, error) {
	if len(names) == 0 {
		return []validate.Segment{validate.Segment3}, nil
	}
	segments := make([]validate.Segment, 0, len(names))
	for _, name := range names {
		segment := validate.Segment(strings.ToLower(strings.TrimSpace(name)))
		if !segment.Known() {
			return nil, fmt.Errorf("unknown segment %q", name)
		}
		if !slices.Contains(segments, segment) {
			segments = append(segments, segment)
		}
	}
	return segments, nil
}

func joinSegments(segments []validate.Segment) string {
	names := make([]string, 0, len(segments))
	for _, segment := range segments {
		names = append(names, string(segment))
	}
	return strings.Join(names, ",")
}

func failures(outcomes []score.Outcome) []score.Outcome {
	var out []score.Outcome
	for _, outcome := range outcomes {
		if !outcome.Kind.Counted() {
			out = append(out, outcome)
		}
	}
	return out
}
