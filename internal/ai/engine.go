package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/avelar/pitch/internal/config"
	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/ollama"
)

// Generator is the subset of the Ollama client the engine needs. Tests
// substitute a scripted fake.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (ollama.GenerateResult, error)
	GenerateJSON(ctx context.Context, model, prompt string) (ollama.GenerateResult, error)
}

// JobMatch is the structured result of a job fit analysis.
type JobMatch struct {
	MatchScore     float64  `json:"match_score"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
	Strategy       string   `json:"strategy"`
}

// Engine chains prompt rendering, model calls, and response validation for
// every generation feature.
type Engine struct {
	gen       Generator
	cfg       config.EngineConfig
	formatter *Formatter
	schemas   *schemaSet
}

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by internal/ai. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func NewEngine(gen Generator, cfg config.EngineConfig, formatter *Formatter) (*Engine, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("formatter is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	schemas, err := newSchemaSet()
	if err != nil {
		return nil, err
	}

	return &Engine{gen: gen, cfg: cfg, formatter: formatter, schemas: schemas}, nil
}

// AnalyzePainPoints extracts exactly three client pain points from a job
// description.
func (e *Engine) AnalyzePainPoints(ctx context.Context, jobDescription string) ([]string, error) {
	prompt, err := ollama.RenderTemplate(painPointsPrompt, map[string]any{"JobDescription": jobDescription})
	if err != nil {
		return nil, providerErr(StagePainPoints, err)
	}

	doc, err := e.generateJSON(ctx, StagePainPoints, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		PainPoints []string `json:"pain_points"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, providerErr(StagePainPoints, fmt.Errorf("json unmarshal: %w", err))
	}

	return parsed.PainPoints, nil
}

// DraftProposal generates a proposal targeted at previously extracted pain
// points. The style parameter labels the stored proposal; every style uses
// the same prompt. An optional strategy from a prior job match analysis is
// appended as extra guidance.
func (e *Engine) DraftProposal(ctx context.Context, userID int64, jobDescription string, painPoints any, strategy string) (string, error) {
	freelancerData, err := e.formatter.FreelancerData(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return "", err
		}
		return "", providerErr(StageDraft, err)
	}

	base, err := ollama.RenderTemplate(winningProposalPrompt, map[string]any{
		"FreelancerData": freelancerData,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return "", providerErr(StageDraft, err)
	}

	prompt := base + renderPainPoints(painPoints)
	if strings.TrimSpace(strategy) != "" {
		prompt += "\n\n## Winning Strategy\n" + strategy
	}

	out, err := e.generate(ctx, StageDraft, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Humanize rewrites a proposal to read more naturally. It never fails: when
// the model call errors the original text is returned unchanged.
func (e *Engine) Humanize(ctx context.Context, proposalText string) string {
	prompt, err := ollama.RenderTemplate(humanizePrompt, map[string]any{"ProposalText": proposalText})
	if err != nil {
		logger.Warn("ai: humanize render failed, keeping original", slog.String("error", err.Error()))
		return proposalText
	}

	out, err := e.generate(ctx, StageHumanize, prompt)
	if err != nil {
		logger.Warn("ai: humanize failed, keeping original", slog.String("error", err.Error()))
		return proposalText
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return proposalText
	}
	return out
}

// AnalyzeJobMatch scores how well the user's profile fits a job description.
func (e *Engine) AnalyzeJobMatch(ctx context.Context, userID int64, jobDescription string) (*JobMatch, error) {
	freelancerData, err := e.formatter.FreelancerData(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, providerErr(StageJobMatch, err)
	}

	prompt, err := ollama.RenderTemplate(jobMatchPrompt, map[string]any{
		"FreelancerData": freelancerData,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, providerErr(StageJobMatch, err)
	}

	doc, err := e.generateJSON(ctx, StageJobMatch, prompt)
	if err != nil {
		return nil, err
	}

	var match JobMatch
	if err := json.Unmarshal([]byte(doc), &match); err != nil {
		return nil, providerErr(StageJobMatch, fmt.Errorf("json unmarshal: %w", err))
	}

	return &match, nil
}

// ExtractProfile parses free-form resume text into a structured profile.
func (e *Engine) ExtractProfile(ctx context.Context, text string) (*models.ExtractedProfile, error) {
	prompt, err := ollama.RenderTemplate(extractProfilePrompt, map[string]any{"Text": text})
	if err != nil {
		return nil, providerErr(StageProfileExtraction, err)
	}

	doc, err := e.generateJSON(ctx, StageProfileExtraction, prompt)
	if err != nil {
		return nil, err
	}

	var profile models.ExtractedProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return nil, providerErr(StageProfileExtraction, fmt.Errorf("json unmarshal: %w", err))
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	return &profile, nil
}

// SummarizeProject produces a short portfolio summary for a project
// description.
func (e *Engine) SummarizeProject(ctx context.Context, description string) (string, error) {
	prompt, err := ollama.RenderTemplate(projectSummaryPrompt, map[string]any{"Description": description})
	if err != nil {
		return "", providerErr(StageProjectSummary, err)
	}

	out, err := e.generate(ctx, StageProjectSummary, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// GenerateProposal is the single-shot generation path kept for the plain
// create endpoint: one call with the winning prompt, no pain point chain.
func (e *Engine) GenerateProposal(ctx context.Context, userID int64, jobDescription string) (string, error) {
	freelancerData, err := e.formatter.FreelancerData(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return "", err
		}
		return "", providerErr(StageDraft, err)
	}

	prompt, err := ollama.RenderTemplate(winningProposalPrompt, map[string]any{
		"FreelancerData": freelancerData,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return "", providerErr(StageDraft, err)
	}

	out, err := e.generate(ctx, StageDraft, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

func (e *Engine) generate(ctx context.Context, stage, prompt string) (string, error) {
	ctxReq, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	res, err := e.gen.Generate(ctxReq, e.cfg.Model, prompt)
	if err != nil {
		return "", providerErr(stage, err)
	}

	return res.Text, nil
}

// generateJSON calls the model in JSON mode, extracts the JSON object from
// the raw output, and validates it against the stage's schema.
func (e *Engine) generateJSON(ctx context.Context, stage, prompt string) (string, error) {
	ctxReq, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	res, err := e.gen.GenerateJSON(ctxReq, e.cfg.Model, prompt)
	if err != nil {
		return "", providerErr(stage, err)
	}

	doc := extractJSON(res.Text)
	if doc == "" {
		logger.Warn("ai: no JSON object in response", slog.String("stage", stage), slog.String("raw", res.Text))
		return "", providerErr(stage, errors.New("no JSON object found in response"))
	}

	if err := e.schemas.validate(ctxReq, stage, doc); err != nil {
		logger.Warn("ai: schema validation failed", slog.String("stage", stage), slog.String("error", err.Error()))
		return "", providerErr(stage, err)
	}

	return doc, nil
}

// renderPainPoints formats previously extracted pain points as a prompt
// section. Clients may resend them as a list, a wrapped object, or free text.
func renderPainPoints(pp any) string {
	section := "\n\n## Client Pain Points Analysis\n"

	switch v := pp.(type) {
	case nil:
		return section
	case []string:
		for i, p := range v {
			section += fmt.Sprintf("\n%d. %s", i+1, p)
		}
	case []any:
		for i, p := range v {
			section += fmt.Sprintf("\n%d. %v", i+1, p)
		}
	case map[string]any:
		if inner, ok := v["pain_points"]; ok {
			return renderPainPoints(inner)
		}
		section += fmt.Sprintf("%v", v)
	default:
		section += fmt.Sprintf("%v", v)
	}

	return section
}

// extractJSON returns the substring from the first '{' to the last '}' in the input.
// This is a pragmatic approach to handle model outputs that wrap JSON in text or markdown.
func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
