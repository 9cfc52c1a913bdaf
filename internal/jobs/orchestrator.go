package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/common"
	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
	"github.com/ternarybob/sitesmith/internal/services/architect"
	"github.com/ternarybob/sitesmith/internal/services/dataset"
	"github.com/ternarybob/sitesmith/internal/services/deploy"
	"github.com/ternarybob/sitesmith/internal/services/generator"
	"github.com/ternarybob/sitesmith/internal/services/intent"
	"github.com/ternarybob/sitesmith/internal/services/validator"
)

// jobTimeout bounds one end-to-end pipeline run
const jobTimeout = 20 * time.Minute

// Orchestrator owns the generation pipeline: it accepts requests, registers
// jobs, and runs each job's pipeline on its own goroutine. All job state
// flows through the store; the orchestrator goroutine is the only writer for
// its job.
type Orchestrator struct {
	store     interfaces.JobStore
	rephraser *intent.Rephraser
	analyzer  *intent.Analyzer
	verifier  *intent.Verifier
	details   *intent.DetailsExtractor
	planner   *architect.Planner
	generator *generator.Generator
	validator *validator.Validator
	deployer  *deploy.Deployer
	datasets  *dataset.Service
	outputDir string
	logger    arbor.ILogger
}

// NewOrchestrator wires the pipeline services around one shared text client
func NewOrchestrator(cfg *common.Config, store interfaces.JobStore, client interfaces.TextClient, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		rephraser: intent.NewRephraser(client, logger),
		analyzer:  intent.NewAnalyzer(client, logger),
		verifier:  intent.NewVerifier(client, logger),
		details:   intent.NewDetailsExtractor(client, logger),
		planner:   architect.NewPlanner(client, logger),
		generator: generator.NewGenerator(client, logger),
		validator: validator.NewValidator(client, logger),
		deployer:  deploy.NewDeployer(cfg.Deploy, logger),
		datasets:  dataset.NewService(cfg.Datasets.Dir, cfg.Datasets.DefaultCollection, logger),
		outputDir: cfg.Output.Dir,
		logger:    logger,
	}
}

// StartGeneration registers a job and starts its pipeline asynchronously.
// The returned job is immediately pollable; all further progress is visible
// through the store.
func (o *Orchestrator) StartGeneration(req *models.GenerateRequest) *models.GenerationJob {
	job := &models.GenerationJob{
		ID:        common.NewJobID(),
		Status:    models.JobStatusInProgress,
		Message:   "Generation started",
		CreatedAt: time.Now(),
	}
	o.store.CreateJob(job)

	go o.run(job, req)

	return job
}

func (o *Orchestrator) run(job *models.GenerationJob, req *models.GenerateRequest) {
	jl := NewJobLogger(job.ID, o.store, o.logger)

	defer func() {
		if r := recover(); r != nil {
			jl.Errorf("Pipeline panicked: %v", r)
			job.MarkFailed(fmt.Sprintf("internal error: %v", r))
			o.store.UpdateJob(job)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := o.pipeline(ctx, job, req, jl); err != nil {
		jl.Errorf("Generation failed: %v", err)
		job.MarkFailed(err.Error())
		o.store.UpdateJob(job)
	}
}

// pipeline runs the full generation sequence for one job. Model-assisted
// steps (rephrase, analyze, verify, details, plan, validate) degrade
// internally and never return errors; only dataset IO, file generation, and
// disk writes can fail the job.
func (o *Orchestrator) pipeline(ctx context.Context, job *models.GenerationJob, req *models.GenerateRequest, jl *JobLogger) error {
	log := jl.Logger()

	jl.Infof("Rephrasing request")
	rephrased := o.rephraser.Rephrase(ctx, req.Intent, req.Model)

	jl.Infof("Analyzing intent")
	analysis := o.analyzer.Analyze(ctx, rephrased, req.Model)

	jl.Infof("Verifying data source %q", analysis.DataSource)
	analysis.DataSource = o.verifier.Verify(ctx, rephrased, analysis.DataSource, req.Model)

	jl.Infof("Loading %s data", analysis.DataSource)
	data, err := o.datasets.FilterData(analysis.DataSource, analysis.Filters, analysis.Limit)
	if err != nil {
		return fmt.Errorf("dataset load failed: %w", err)
	}
	jl.Infof("Selected %d records from %s", len(data), analysis.DataSource)

	details := req.Branding()
	if details == nil {
		jl.Infof("Extracting branding from request")
		extracted := o.details.Extract(ctx, rephrased, req.Model)
		details = &extracted
	}

	jl.Infof("Planning site architecture")
	plan := o.planner.Plan(ctx, rephrased, req.Model)
	jl.Infof("Planned files: %s", strings.Join(plan.FileNames(), ", "))

	palette := generator.ChoosePalette(rephrased)
	log.Debug().Str("palette", palette.Name).Msg("Palette chosen")

	files := make(map[string]string, len(plan.Files))
	for _, planned := range plan.Files {
		if planned.Kind == models.FileKindData {
			continue
		}
		jl.Infof("Generating %s", planned.FileName)
		content, err := o.generator.GenerateFile(ctx, generator.FileRequest{
			Request: rephrased,
			File:    planned,
			Plan:    plan,
			Data:    data,
			Details: details,
			Palette: palette,
			Model:   req.Model,
		})
		if err != nil {
			return err
		}
		files[planned.FileName] = content
	}

	jl.Infof("Validating generated files")
	if fixed := o.validator.ValidateAndFix(ctx, files, rephrased, req.Model); len(fixed) > 0 {
		jl.Infof("Validator rewrote: %s", strings.Join(fixed, ", "))
	}

	projectDir := filepath.Join(o.outputDir, job.ID)
	jl.Infof("Writing project to %s", projectDir)
	if err := writeProject(projectDir, files, data); err != nil {
		return err
	}

	job.OutputDir = projectDir
	job.ProjectURL = filepath.Join(projectDir, architect.IndexFileName)
	o.store.UpdateJob(job)

	result, deployErr := o.deployer.Deploy(ctx, projectDir)
	switch {
	case deployErr != nil:
		// The site exists on disk; a hosting failure downgrades to a
		// completed job with a warning, never a failed one.
		jl.Warnf("Deployment failed: %v", deployErr)
		job.MarkCompleted(fmt.Sprintf("Website generated at %s; deployment failed: %v", projectDir, deployErr))
	case result.Skipped:
		jl.Infof("Deployment skipped (no token configured)")
		job.MarkCompleted(fmt.Sprintf("Website generated at %s (deployment skipped)", projectDir))
	default:
		job.DeployedURL = result.URL
		jl.Infof("Deployed to %s", result.URL)
		job.MarkCompleted(fmt.Sprintf("Website generated and deployed to %s", result.URL))
	}

	o.store.UpdateJob(job)
	return nil
}

// writeProject writes the generated files plus the dataset snapshot into the
// project directory
func writeProject(dir string, files map[string]string, data []models.DataItem) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := dataset.WriteDataFile(dir, data); err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// GeneratePage generates one additional page into a completed job's output
// directory. Synchronous; the new page reuses the job's dataset snapshot and
// the pages already on disk as its plan.
func (o *Orchestrator) GeneratePage(ctx context.Context, jobID string, req *models.AddPageRequest) (string, error) {
	job, ok := o.store.GetJob(jobID)
	if !ok {
		return "", fmt.Errorf("unknown job %s", jobID)
	}
	if job.Status != models.JobStatusCompleted {
		return "", fmt.Errorf("job %s is %s; pages can only be added to completed jobs", jobID, job.Status)
	}

	jl := NewJobLogger(jobID, o.store, o.logger)

	data, err := dataset.ReadDataFile(job.OutputDir)
	if err != nil {
		return "", fmt.Errorf("failed to load job dataset: %w", err)
	}

	plan, err := planFromDir(job.OutputDir)
	if err != nil {
		return "", err
	}

	pageName := req.PageName
	if !strings.HasSuffix(pageName, ".html") {
		pageName += ".html"
	}

	planned := models.PlannedFile{FileName: pageName, Purpose: req.Purpose, Kind: models.FileKindPage}
	if !plan.Contains(pageName) {
		plan.Files = append(plan.Files, planned)
	}

	jl.Infof("Generating additional page %s", pageName)
	content, err := o.generator.GenerateFile(ctx, generator.FileRequest{
		Request: req.Purpose,
		File:    planned,
		Plan:    plan,
		Data:    data,
		Details: &models.WebsiteDetails{},
		Palette: generator.ChoosePalette(req.Purpose),
		Model:   "",
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(job.OutputDir, filepath.Base(pageName))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", pageName, err)
	}

	jl.Infof("Added page %s", pageName)
	return path, nil
}

// planFromDir reconstructs an architecture plan from the files already in a
// project directory
func planFromDir(dir string) (models.ArchitecturePlan, error) {
	var plan models.ArchitecturePlan

	entries, err := os.ReadDir(dir)
	if err != nil {
		return plan, fmt.Errorf("failed to read project directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var kind models.FileKind
		switch {
		case strings.HasSuffix(name, ".html"):
			kind = models.FileKindPage
		case name == dataset.DataFileName:
			kind = models.FileKindData
		case strings.HasSuffix(name, ".js"):
			kind = models.FileKindScript
		case strings.HasSuffix(name, ".css"):
			kind = models.FileKindStyle
		default:
			continue
		}
		plan.Files = append(plan.Files, models.PlannedFile{FileName: name, Kind: kind})
	}
	return plan, nil
}
