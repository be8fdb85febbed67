package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homeprice/internal/artifacts"
	"homeprice/internal/boost"
	"homeprice/internal/dataset"
	"homeprice/internal/evaluate"
	"homeprice/internal/exporter"
	"homeprice/internal/features"
)

// LoadStep reads the raw listings snapshot and runs field cleaning.
type LoadStep struct {
	logger *slog.Logger
}

// NewLoadStep creates the load step.
func NewLoadStep(logger *slog.Logger) *LoadStep {
	return &LoadStep{logger: logger}
}

func (s *LoadStep) ID() string   { return "load" }
func (s *LoadStep) Name() string { return "Load Dataset" }

func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	loader, err := dataset.NewLoader(state.Config, s.logger)
	if err != nil {
		return fmt.Errorf("creating loader: %w", err)
	}

	rows, report, err := loader.Load(ctx, state.Config.Data.InputPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", state.Config.Data.InputPath, err)
	}

	state.Rows = rows
	state.Report = *report
	state.AmenityCols = loader.AmenityColumns()

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", state.Config.Data.InputPath),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("kept", report.Kept),
		slog.Int("dropped_no_price", report.DroppedNoPrice))
	return nil
}

// FilterOutliersStep removes rows outside the IQR fences, first on price and
// then on size. Rows with missing size fall at the size fence.
type FilterOutliersStep struct {
	logger *slog.Logger
}

// NewFilterOutliersStep creates the outlier step.
func NewFilterOutliersStep(logger *slog.Logger) *FilterOutliersStep {
	return &FilterOutliersStep{logger: logger}
}

func (s *FilterOutliersStep) ID() string   { return "filter_outliers" }
func (s *FilterOutliersStep) Name() string { return "Filter Outliers" }

func (s *FilterOutliersStep) Execute(ctx context.Context, state *State) error {
	multiplier := state.Config.Outlier.Multiplier
	before := len(state.Rows)

	rows, priceFence, err := features.FilterRows(state.Rows,
		func(r dataset.Listing) (float64, bool) { return r.Price, true },
		multiplier)
	if err != nil {
		return fmt.Errorf("price fence: %w", err)
	}

	rows, sizeFence, err := features.FilterRows(rows,
		func(r dataset.Listing) (float64, bool) { return r.Size, r.HasSize },
		multiplier)
	if err != nil {
		return fmt.Errorf("size fence: %w", err)
	}

	state.Rows = rows
	state.PriceFence = priceFence
	state.SizeFence = sizeFence

	s.logger.InfoContext(ctx, "outliers filtered",
		slog.Int("before", before),
		slog.Int("after", len(rows)),
		slog.Float64("price_lower", priceFence.Lower),
		slog.Float64("price_upper", priceFence.Upper),
		slog.Float64("size_lower", sizeFence.Lower),
		slog.Float64("size_upper", sizeFence.Upper))
	return nil
}

// SplitStep partitions the cleaned rows into train and test sets.
type SplitStep struct {
	logger *slog.Logger
}

// NewSplitStep creates the split step.
func NewSplitStep(logger *slog.Logger) *SplitStep {
	return &SplitStep{logger: logger}
}

func (s *SplitStep) ID() string   { return "split" }
func (s *SplitStep) Name() string { return "Split Train/Test" }

func (s *SplitStep) Execute(ctx context.Context, state *State) error {
	train, test, err := dataset.Split(state.Rows,
		state.Config.Split.TestFraction, state.Config.Split.Seed)
	if err != nil {
		return fmt.Errorf("splitting rows: %w", err)
	}

	state.Train = train
	state.Test = test

	s.logger.InfoContext(ctx, "dataset split",
		slog.Int("train", len(train)),
		slog.Int("test", len(test)),
		slog.Float64("test_fraction", state.Config.Split.TestFraction))
	return nil
}

// FitStep fits the feature pipeline and the booster on the training rows.
type FitStep struct {
	logger *slog.Logger
}

// NewFitStep creates the fit step.
func NewFitStep(logger *slog.Logger) *FitStep {
	return &FitStep{logger: logger}
}

func (s *FitStep) ID() string   { return "fit" }
func (s *FitStep) Name() string { return "Fit Model" }

func (s *FitStep) Execute(ctx context.Context, state *State) error {
	table, err := features.BuildTable(state.Train, state.AmenityCols)
	if err != nil {
		return fmt.Errorf("building train table: %w", err)
	}

	pipeline, err := features.NewPipeline(
		features.DefaultGroups(state.AmenityCols),
		state.Config.Cleaning.MissingToken)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	x, err := pipeline.FitTransform(table)
	if err != nil {
		return fmt.Errorf("fitting pipeline: %w", err)
	}
	y := features.LogTargets(state.Train)

	booster, err := boost.New(boost.Params{
		Trees:        state.Config.Model.Trees,
		LearningRate: state.Config.Model.LearningRate,
		MaxDepth:     state.Config.Model.MaxDepth,
		MinLeaf:      state.Config.Model.MinLeaf,
		Subsample:    state.Config.Model.Subsample,
		Seed:         state.Config.Model.Seed,
	})
	if err != nil {
		return fmt.Errorf("creating booster: %w", err)
	}

	start := time.Now()
	if err := booster.Fit(x, y); err != nil {
		return fmt.Errorf("fitting booster: %w", err)
	}

	state.Pipeline = pipeline
	state.Booster = booster
	state.FeatureNames = pipeline.FeatureNames()

	s.logger.InfoContext(ctx, "model fitted",
		slog.Int("train_rows", len(state.Train)),
		slog.Int("features", pipeline.Width()),
		slog.Int("trees", len(booster.Trees)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// EvaluateStep predicts on the held-out rows and computes error metrics in
// price space.
type EvaluateStep struct {
	logger *slog.Logger
}

// NewEvaluateStep creates the evaluate step.
func NewEvaluateStep(logger *slog.Logger) *EvaluateStep {
	return &EvaluateStep{logger: logger}
}

func (s *EvaluateStep) ID() string   { return "evaluate" }
func (s *EvaluateStep) Name() string { return "Evaluate Model" }

func (s *EvaluateStep) Execute(ctx context.Context, state *State) error {
	if state.Pipeline == nil || state.Booster == nil {
		return fmt.Errorf("model is not fitted")
	}

	table, err := features.BuildTable(state.Test, state.AmenityCols)
	if err != nil {
		return fmt.Errorf("building test table: %w", err)
	}

	x, err := state.Pipeline.Transform(table)
	if err != nil {
		return fmt.Errorf("transforming test rows: %w", err)
	}

	logPredicted, err := state.Booster.Predict(x)
	if err != nil {
		return fmt.Errorf("predicting: %w", err)
	}
	predicted := features.InversePrices(logPredicted)

	actual := make([]float64, len(state.Test))
	for i, r := range state.Test {
		actual[i] = r.Price
	}

	metrics, err := evaluate.Compute(predicted, actual)
	if err != nil {
		return fmt.Errorf("computing metrics: %w", err)
	}
	state.Metrics = metrics

	s.logger.InfoContext(ctx, "model evaluated",
		slog.Int("test_rows", metrics.Rows),
		slog.Float64("mae", metrics.MAE),
		slog.Float64("rmse", metrics.RMSE))
	return nil
}

// PersistStep writes the model and pipeline artifacts to disk.
type PersistStep struct {
	logger *slog.Logger
}

// NewPersistStep creates the persist step.
func NewPersistStep(logger *slog.Logger) *PersistStep {
	return &PersistStep{logger: logger}
}

func (s *PersistStep) ID() string   { return "persist" }
func (s *PersistStep) Name() string { return "Persist Artifacts" }

func (s *PersistStep) Execute(ctx context.Context, state *State) error {
	modelPath := state.Config.Paths.ModelPath()
	if err := artifacts.SaveModel(modelPath, &artifacts.Model{
		RunID:        state.RunID,
		CreatedAt:    time.Now(),
		FeatureNames: state.FeatureNames,
		Pipeline:     state.Pipeline,
		Booster:      state.Booster,
	}); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	pipelinePath := state.Config.Paths.PipelinePath()
	if err := artifacts.SavePipeline(pipelinePath, &artifacts.PipelineArtifact{
		RunID:     state.RunID,
		CreatedAt: time.Now(),
		Pipeline:  state.Pipeline,
	}); err != nil {
		return fmt.Errorf("saving pipeline: %w", err)
	}

	state.ModelPath = modelPath
	state.PipelinePath = pipelinePath

	s.logger.InfoContext(ctx, "artifacts persisted",
		slog.String("model", modelPath),
		slog.String("pipeline", pipelinePath))
	return nil
}

// ExportCleanedStep writes the cleaned dataset to the export directory.
type ExportCleanedStep struct {
	logger *slog.Logger
}

// NewExportCleanedStep creates the cleaned-dataset export step.
func NewExportCleanedStep(logger *slog.Logger) *ExportCleanedStep {
	return &ExportCleanedStep{logger: logger}
}

func (s *ExportCleanedStep) ID() string   { return "export_cleaned" }
func (s *ExportCleanedStep) Name() string { return "Export Cleaned Dataset" }

func (s *ExportCleanedStep) Execute(ctx context.Context, state *State) error {
	w := exporter.NewCSVWriter(state.Config.Paths.ExportDir, s.logger)
	path, err := w.ExportCleaned("cleaned_listings.csv", state.Rows, state.AmenityCols)
	if err != nil {
		return fmt.Errorf("exporting cleaned dataset: %w", err)
	}
	state.CleanedPath = path

	s.logger.InfoContext(ctx, "cleaned dataset exported",
		slog.String("path", path),
		slog.Int("rows", len(state.Rows)))
	return nil
}

// ExportSummaryStep writes a one-row run summary to the export directory.
type ExportSummaryStep struct {
	logger *slog.Logger
}

// NewExportSummaryStep creates the summary export step.
func NewExportSummaryStep(logger *slog.Logger) *ExportSummaryStep {
	return &ExportSummaryStep{logger: logger}
}

func (s *ExportSummaryStep) ID() string   { return "export_summary" }
func (s *ExportSummaryStep) Name() string { return "Export Run Summary" }

func (s *ExportSummaryStep) Execute(ctx context.Context, state *State) error {
	w := exporter.NewCSVWriter(state.Config.Paths.ExportDir, s.logger)
	path, err := w.ExportSummary("run_summary.csv", exporter.RunSummary{
		RunID:          state.RunID,
		StartedAt:      state.StartedAt,
		InputPath:      state.Config.Data.InputPath,
		TotalRows:      state.Report.TotalRows,
		DroppedNoPrice: state.Report.DroppedNoPrice,
		AfterFences:    len(state.Rows),
		TrainRows:      len(state.Train),
		TestRows:       len(state.Test),
		FeatureWidth:   len(state.FeatureNames),
		Metrics:        state.Metrics,
	})
	if err != nil {
		return fmt.Errorf("exporting run summary: %w", err)
	}
	state.SummaryPath = path

	s.logger.InfoContext(ctx, "run summary exported", slog.String("path", path))
	return nil
}

// TrainingSteps returns the full training run in execution order.
func TrainingSteps(logger *slog.Logger) []Step {
	return []Step{
		NewLoadStep(logger),
		NewFilterOutliersStep(logger),
		NewSplitStep(logger),
		NewFitStep(logger),
		NewEvaluateStep(logger),
		NewPersistStep(logger),
		NewExportCleanedStep(logger),
		NewExportSummaryStep(logger),
	}
}

// ProfileSteps returns the load-and-export run used to inspect a snapshot
// without training a model.
func ProfileSteps(logger *slog.Logger) []Step {
	return []Step{
		NewLoadStep(logger),
		NewFilterOutliersStep(logger),
		NewExportCleanedStep(logger),
	}
}
