package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avelar/pitch/internal/config"
	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/ollama"
	"github.com/avelar/pitch/pkg/repository/mock"
)

// fakeGen scripts model responses and records the prompts it received.
type fakeGen struct {
	Text    string
	Err     error
	Prompts []string
}

func (f *fakeGen) Generate(ctx context.Context, model, prompt string) (ollama.GenerateResult, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return ollama.GenerateResult{}, f.Err
	}
	return ollama.GenerateResult{Text: f.Text}, nil
}

func (f *fakeGen) GenerateJSON(ctx context.Context, model, prompt string) (ollama.GenerateResult, error) {
	return f.Generate(ctx, model, prompt)
}

func newTestEngine(t *testing.T, gen Generator, m *mock.Mocks) *Engine {
	t.Helper()
	formatter := NewFormatter(m.Profiles, m.Projects, m.Experiences)
	e, err := NewEngine(gen, config.EngineConfig{Model: "test-model", Timeout: 5 * time.Second}, formatter)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func seedProfile(m *mock.Mocks, userID int64) {
	m.Profiles.Stored = map[int64]*models.FreelancerProfile{
		userID: {
			ID:       1,
			UserID:   userID,
			FullName: "Ana Silva",
			Tagline:  "Backend Engineer",
			About:    "Builds reliable APIs.",
			Skills:   []string{"Go", "SQL"},
		},
	}
}

func TestAnalyzePainPoints(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		genErr  error
		want    int
		wantErr bool
	}{
		{
			name: "valid response",
			text: `{"pain_points":["Slow site","No mobile support","Manual reporting"]}`,
			want: 3,
		},
		{
			name: "json wrapped in prose",
			text: "Here is the analysis:\n```json\n{\"pain_points\":[\"a\",\"b\",\"c\"]}\n```",
			want: 3,
		},
		{
			name:    "wrong count rejected",
			text:    `{"pain_points":["only","two"]}`,
			wantErr: true,
		},
		{
			name:    "no json at all",
			text:    "I could not analyze this.",
			wantErr: true,
		},
		{
			name:    "provider failure",
			genErr:  errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, &fakeGen{Text: tt.text, Err: tt.genErr}, mock.NewMocks())
			got, err := e.AnalyzePainPoints(context.Background(), "Build a web shop")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				var perr *ProviderError
				if !errors.As(err, &perr) || perr.Stage != StagePainPoints {
					t.Fatalf("expected ProviderError with pain_points stage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AnalyzePainPoints: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d pain points, got %v", tt.want, got)
			}
		})
	}
}

func TestDraftProposal_PromptAssembly(t *testing.T) {
	m := mock.NewMocks()
	seedProfile(m, 7)
	gen := &fakeGen{Text: "  Hi Client, here is my proposal.  "}
	e := newTestEngine(t, gen, m)

	pain := []string{"Slow checkout", "No analytics", "Churn"}
	got, err := e.DraftProposal(context.Background(), 7, "Fix our checkout flow", pain, "Lead with checkout rebuild numbers")
	if err != nil {
		t.Fatalf("DraftProposal: %v", err)
	}
	if got != "Hi Client, here is my proposal." {
		t.Fatalf("expected trimmed proposal text, got %q", got)
	}

	if len(gen.Prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.Prompts))
	}
	prompt := gen.Prompts[0]
	for _, want := range []string{
		"Ana Silva",
		"Fix our checkout flow",
		"## Client Pain Points Analysis",
		"1. Slow checkout",
		"3. Churn",
		"## Winning Strategy",
		"Lead with checkout rebuild numbers",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestDraftProposal_NoProfile(t *testing.T) {
	e := newTestEngine(t, &fakeGen{Text: "irrelevant"}, mock.NewMocks())
	if _, err := e.DraftProposal(context.Background(), 99, "job", nil, ""); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestHumanize(t *testing.T) {
	t.Run("rewrites text", func(t *testing.T) {
		e := newTestEngine(t, &fakeGen{Text: "Hi there, rewritten."}, mock.NewMocks())
		if got := e.Humanize(context.Background(), "Hello Client."); got != "Hi there, rewritten." {
			t.Fatalf("unexpected humanized text: %q", got)
		}
	})

	t.Run("returns original on provider failure", func(t *testing.T) {
		e := newTestEngine(t, &fakeGen{Err: errors.New("timeout")}, mock.NewMocks())
		if got := e.Humanize(context.Background(), "Hello Client."); got != "Hello Client." {
			t.Fatalf("expected original text back, got %q", got)
		}
	})

	t.Run("returns original on empty output", func(t *testing.T) {
		e := newTestEngine(t, &fakeGen{Text: "   "}, mock.NewMocks())
		if got := e.Humanize(context.Background(), "Hello Client."); got != "Hello Client." {
			t.Fatalf("expected original text back, got %q", got)
		}
	})
}

func TestAnalyzeJobMatch(t *testing.T) {
	m := mock.NewMocks()
	seedProfile(m, 3)
	gen := &fakeGen{Text: `{"match_score":85,"strengths":["Go expertise"],"gaps":["No React"],"recommendation":"Recommended","strategy":"Lead with API work"}`}
	e := newTestEngine(t, gen, m)

	match, err := e.AnalyzeJobMatch(context.Background(), 3, "Build a Go API")
	if err != nil {
		t.Fatalf("AnalyzeJobMatch: %v", err)
	}
	if match.MatchScore != 85 || match.Recommendation != "Recommended" {
		t.Fatalf("unexpected match: %+v", match)
	}
	if len(match.Strengths) != 1 || len(match.Gaps) != 1 {
		t.Fatalf("unexpected strengths/gaps: %+v", match)
	}

	if _, err := e.AnalyzeJobMatch(context.Background(), 42, "job"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for missing profile, got %v", err)
	}
}

func TestAnalyzeJobMatch_MissingField(t *testing.T) {
	m := mock.NewMocks()
	seedProfile(m, 3)
	e := newTestEngine(t, &fakeGen{Text: `{"match_score":85}`}, m)

	_, err := e.AnalyzeJobMatch(context.Background(), 3, "job")
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Stage != StageJobMatch {
		t.Fatalf("expected job_match ProviderError, got %v", err)
	}
}

func TestExtractProfile(t *testing.T) {
	text := "```json\n" + `{
		"full_name": "John Doe",
		"professional_title": "Software Engineer",
		"about": "Five years of web development.",
		"skills": ["React", "Python"],
		"portfolio_uri": "https://example.com",
		"experience": [{"company": "Tech Corp", "title": "Engineer", "start_date": "2022-01-01"}],
		"projects": [{"title": "Shop", "description": "E-commerce build", "budget": 1000, "platform": "upwork", "status": "completed"}],
		"social_links": [{"platform": "LinkedIn", "url": "https://linkedin.com/in/johndoe"}]
	}` + "\n```"

	e := newTestEngine(t, &fakeGen{Text: text}, mock.NewMocks())
	profile, err := e.ExtractProfile(context.Background(), "John Doe resume text")
	if err != nil {
		t.Fatalf("ExtractProfile: %v", err)
	}
	if profile.FullName != "John Doe" || profile.ProfessionalTitle != "Software Engineer" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.Experience) != 1 || profile.Experience[0].Company != "Tech Corp" {
		t.Fatalf("unexpected experience: %+v", profile.Experience)
	}
	if len(profile.Projects) != 1 || profile.Projects[0].Platform != "upwork" {
		t.Fatalf("unexpected projects: %+v", profile.Projects)
	}
}

func TestExtractProfile_MissingRequired(t *testing.T) {
	e := newTestEngine(t, &fakeGen{Text: `{"full_name":"John"}`}, mock.NewMocks())
	_, err := e.ExtractProfile(context.Background(), "text")
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Stage != StageProfileExtraction {
		t.Fatalf("expected profile_extraction ProviderError, got %v", err)
	}
}

func TestSummarizeProject(t *testing.T) {
	e := newTestEngine(t, &fakeGen{Text: "\nBuilt an e-commerce API in Go.\n"}, mock.NewMocks())
	got, err := e.SummarizeProject(context.Background(), "Long project description")
	if err != nil {
		t.Fatalf("SummarizeProject: %v", err)
	}
	if got != "Built an e-commerce API in Go." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestGenerateProposal_NoProfile(t *testing.T) {
	e := newTestEngine(t, &fakeGen{Text: "irrelevant"}, mock.NewMocks())
	if _, err := e.GenerateProposal(context.Background(), 5, "job"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRenderPainPoints(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"string slice", []string{"a", "b"}, []string{"1. a", "2. b"}},
		{"any slice", []any{"x", "y"}, []string{"1. x", "2. y"}},
		{"wrapped object", map[string]any{"pain_points": []any{"p"}}, []string{"1. p"}},
		{"free text", "just some text", []string{"just some text"}},
		{"nil", nil, []string{"## Client Pain Points Analysis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderPainPoints(tt.in)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Fatalf("renderPainPoints(%v) = %q, missing %q", tt.in, got, want)
				}
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"prefix {\"a\":1} suffix", `{"a":1}`},
		{"no json here", ""},
		{"}{", ""},
	}

	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Fatalf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
