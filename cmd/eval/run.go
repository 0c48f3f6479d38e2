package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/knowmebench/knowme-eval/internal/config"
	"github.com/knowmebench/knowme-eval/internal/dataset"
	"github.com/knowmebench/knowme-eval/internal/judge"
	"github.com/knowmebench/knowme-eval/internal/llm"
	"github.com/knowmebench/knowme-eval/internal/prompt"
	"github.com/knowmebench/knowme-eval/internal/runner"
	"github.com/knowmebench/knowme-eval/internal/store"
)

type runOptions struct {
	inputFile  string
	outputFile string
	judgeModel string
	promptFile string
	noStore    bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a dataset with the LLM judge",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFile, "input_file", "", "path to the evaluation dataset (JSON array)")
	cmd.Flags().StringVar(&opts.outputFile, "output_file", "evaluation_results.json", "path for the result report")
	cmd.Flags().StringVar(&opts.judgeModel, "judge_model", config.DefaultJudgeModel, "judge model name")
	cmd.Flags().StringVar(&opts.promptFile, "prompt_file", defaultPromptFile, "path to the prompt template file")
	cmd.Flags().BoolVar(&opts.noStore, "no_store", false, "skip persisting the run to history")
	_ = cmd.MarkFlagRequired("input_file")

	return cmd
}

func runEvaluation(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	inputFile := strings.TrimSpace(opts.inputFile)
	if inputFile == "" {
		return fmt.Errorf("run: missing --input_file")
	}

	judgeModel := strings.TrimSpace(opts.judgeModel)
	if judgeModel == "" {
		judgeModel = st.cfg.Judge.Model
	}

	out := cmd.OutOrStdout()

	templates, err := prompt.Load(opts.promptFile, out)
	if err != nil {
		return fmt.Errorf("run: load prompt file: %w", err)
	}
	if templates.Len() == 0 {
		return fmt.Errorf("run: no prompt templates found in %q", opts.promptFile)
	}

	items, err := dataset.LoadItems(inputFile)
	if err != nil {
		return fmt.Errorf("run: load dataset: %w", err)
	}
	fmt.Fprintf(out, "Loaded %d items from %s\n", len(items), inputFile)

	provider, err := llm.ProviderForModel(st.cfg, judgeModel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r := &runner.Runner{
		Judge: &judge.Judge{
			Provider:  provider,
			Model:     judgeModel,
			MaxTokens: st.cfg.Judge.MaxTokens,
		},
		Templates: templates,
		Progress:  out,
	}

	startedAt := time.Now().UTC()
	report, runErr := r.Run(ctx, items)
	finishedAt := time.Now().UTC()

	if report != nil {
		if err := runner.WriteReport(opts.outputFile, report); err != nil {
			return fmt.Errorf("run: write report: %w", err)
		}
		fmt.Fprintf(out, "\nEvaluated %d/%d items\n", report.Meta.EvaluatedItems, report.Meta.TotalItems)
		fmt.Fprintf(out, "Average Score: %.2f / 5.0\n", report.Meta.AverageScore)
		fmt.Fprintf(out, "Results saved to %s\n", opts.outputFile)

		if !opts.noStore {
			if err := saveRunToStore(ctx, st, opts, report, startedAt, finishedAt, out); err != nil {
				fmt.Fprintf(out, "Warning: %v\n", err)
			}
		}
	}

	return runErr
}

func saveRunToStore(ctx context.Context, st *cliState, opts *runOptions, report *runner.Report, startedAt, finishedAt time.Time, out io.Writer) error {
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}

	stor, err := store.Open(st.cfg)
	if err != nil {
		return fmt.Errorf("run: open store: %w", err)
	}
	defer stor.Close()

	runID, err := newRunID()
	if err != nil {
		return fmt.Errorf("run: generate run id: %w", err)
	}

	record := &store.RunRecord{
		ID:             runID,
		JudgeModel:     report.Meta.JudgeModel,
		InputFile:      opts.inputFile,
		OutputFile:     opts.outputFile,
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
		TotalItems:     report.Meta.TotalItems,
		EvaluatedItems: report.Meta.EvaluatedItems,
		AverageScore:   report.Meta.AverageScore,
		Details:        report.Details,
	}
	if err := stor.SaveRun(ctx, record); err != nil {
		return fmt.Errorf("run: save run: %w", err)
	}

	fmt.Fprintf(out, "Run saved to history as %s\n", runID)
	return nil
}

func newRunID() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("run_%s_%x", time.Now().UTC().Format("20060102T150405Z"), buf), nil
}
