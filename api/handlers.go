package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/knowmebench/knowme-eval/internal/prompt"
	"github.com/knowmebench/knowme-eval/internal/store"
)

const defaultPromptFile = "prompts/evaluate_prompt.md"

type runSummary struct {
	ID             string  `json:"id"`
	JudgeModel     string  `json:"judge_model"`
	InputFile      string  `json:"input_file"`
	OutputFile     string  `json:"output_file"`
	StartedAt      string  `json:"started_at"`
	FinishedAt     string  `json:"finished_at"`
	TotalItems     int     `json:"total_items"`
	EvaluatedItems int     `json:"evaluated_items"`
	AverageScore   float64 `json:"average_score"`
}

type templateInfo struct {
	TaskType            string   `json:"task_type"`
	TemplateBytes       int      `json:"template_bytes"`
	MissingPlaceholders []string `json:"missing_placeholders,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return
	}

	filter := store.RunFilter{
		JudgeModel: strings.TrimSpace(c.Query("judge_model")),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		filter.Limit = n
	}

	runs, err := s.store.ListRuns(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		if run == nil {
			continue
		}
		out = append(out, toRunSummary(run))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRunSummary(run))
}

func (s *Server) handleGetRunDetails(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      run.ID,
		"details": run.Details,
	})
}

func (s *Server) handleListTemplates(c *gin.Context) {
	path := strings.TrimSpace(c.Query("file"))
	if path == "" {
		path = defaultPromptFile
	}

	set, err := prompt.LoadFromFile(path)
	if err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}

	out := make([]templateInfo, 0, set.Len())
	for _, taskType := range set.TaskTypes() {
		tmpl, _ := set.Get(taskType)
		out = append(out, templateInfo{
			TaskType:            taskType,
			TemplateBytes:       len(tmpl),
			MissingPlaceholders: prompt.MissingPlaceholders(tmpl),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) lookupRun(c *gin.Context) (*store.RunRecord, bool) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return nil, false
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, errors.New("missing run id"))
		return nil, false
	}

	run, err := s.store.GetRun(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, fmt.Errorf("run %q not found", id))
			return nil, false
		}
		respondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return run, true
}

func toRunSummary(run *store.RunRecord) runSummary {
	return runSummary{
		ID:             run.ID,
		JudgeModel:     run.JudgeModel,
		InputFile:      run.InputFile,
		OutputFile:     run.OutputFile,
		StartedAt:      run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:     run.FinishedAt.UTC().Format(time.RFC3339),
		TotalItems:     run.TotalItems,
		EvaluatedItems: run.EvaluatedItems,
		AverageScore:   run.AverageScore,
	}
}

func respondError(c *gin.Context, status int, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
