package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/types"

	"github.com/jonathan/resume-pipeline/internal/sheets"
)

// MockClient implements llm.Client for testing. It dispatches on prompt
// content so one client serves all three stages.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)
}

func (m *MockClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *MockClient) Close() error { return nil }

const analysisJSON = `{
	"jobTitle": "Data Engineer",
	"companyName": "Initech",
	"location": "Austin, TX",
	"keyResponsibilities": ["Build pipelines"],
	"requiredTechnicalSkills": ["Go"],
	"requiredSoftSkills": [],
	"experienceLevel": "Mid",
	"educationRequirements": "",
	"primaryKeywords": ["ETL"],
	"companyCultureClues": []
}`

// stageDispatchClient answers each stage's prompts with canned well-formed responses.
func stageDispatchClient() *MockClient {
	return &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			switch {
			case strings.Contains(req.Prompt, "You are scoring"):
				return `{"relevanceScore": 0.9, "matchingKeywords": ["Go"], "justification": "Relevant"}`, nil
			case strings.Contains(req.Prompt, "rewriting one resume bullet"):
				return `{"rewritten_bullet": "Engineered Go data pipelines"}`, nil
			default:
				return analysisJSON, nil
			}
		},
	}
}

func masterSheetRows() [][]string {
	return [][]string{
		{"PERSONAL INFO"},
		{"Name", "Jane Doe"},
		{"Email", "jane@example.com"},
		{"SUMMARY"},
		{"", "Seasoned engineer."},
		{"EXPERIENCE"},
		{"Company", "Job Title", "Responsibility1", "Responsibility2"},
		{"Acme Corp", "Engineer", "Built the ingestion pipeline", "Organized the holiday party"},
		{"TECHNICAL SKILLS & CERTIFICATES"},
		{"Category", "Skill"},
		{"Languages", "Go"},
	}
}

func testPipeline(t *testing.T, client llm.Client) (*Pipeline, *sheets.Memory) {
	t.Helper()
	mem := sheets.NewMemory()
	mem.Seed("Master Resume", masterSheetRows())

	cfg := config.Default()
	cfg.InterCallDelayMS = 0

	p := New(&cfg, mem, client, llm.DefaultGeminiConfig())
	p.sleep = func(time.Duration) { t.Fatal("pace must not sleep when delay is zero") }
	return p, mem
}

func selectAll(t *testing.T, mem *sheets.Memory) {
	t.Helper()
	rows, err := mem.ReadAllRows("Selection")
	require.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		rows[i][7] = "YES"
	}
	require.NoError(t, mem.WriteRows("Selection", rows[1:], 2))
}

func TestPipeline_RunScoring(t *testing.T) {
	p, _ := testPipeline(t, stageDispatchClient())

	var events []ProgressEvent
	p.SetProgressCallback(func(e ProgressEvent) { events = append(events, e) })

	result := p.RunScoring(context.Background(), "We need a data engineer.")
	require.True(t, result.Success, result.Message)

	// Three scorable units: two experience bullets plus the Go skill.
	entries, err := p.store.AllEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "ITEM-0001", entries[0].UniqueID)
	assert.Equal(t, types.SectionExperience, entries[0].SectionTitle)
	assert.Equal(t, "Acme Corp", entries[0].ItemIdentifier)
	assert.InDelta(t, 0.9, entries[0].RelevanceScore, 0.0001)
	assert.Equal(t, types.SectionSkills, entries[2].SectionTitle)
	assert.Equal(t, "Go", entries[2].ItemIdentifier)

	state, err := p.Status()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, types.StatusAwaitingSelection, state.Status)

	// Analysis persisted for the later stages.
	jd, err := p.loadAnalysis()
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", jd.JobTitle)

	require.Len(t, events, 3)
	assert.Equal(t, "scoring", events[0].Stage)
	assert.Equal(t, 3, events[0].Total)
}

func TestPipeline_RunScoring_PerItemFailureDoesNotAbort(t *testing.T) {
	calls := 0
	client := &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			if !strings.Contains(req.Prompt, "You are scoring") {
				return analysisJSON, nil
			}
			calls++
			if calls == 2 {
				return "", fmt.Errorf("rate limited")
			}
			return `{"relevanceScore": 0.5, "matchingKeywords": [], "justification": "ok"}`, nil
		},
	}
	p, _ := testPipeline(t, client)

	result := p.RunScoring(context.Background(), "job text")
	require.True(t, result.Success, result.Message)

	entries, err := p.store.AllEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// The failed row is recorded with the error marker and a zero score.
	failed := entries[1]
	assert.Zero(t, failed.RelevanceScore)
	assert.True(t, strings.HasPrefix(failed.Justification, types.ErrorMarkerPrefix))

	assert.Equal(t, 2, result.Details["scored"])
	assert.Equal(t, 1, result.Details["failed"])
}

func TestPipeline_RunScoring_AnalysisFailureAborts(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(_ context.Context, _ llm.Request) (string, error) {
			return "not json", nil
		},
	}
	p, _ := testPipeline(t, client)

	result := p.RunScoring(context.Background(), "job text")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "analysis failed")

	state, err := p.Status()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestPipeline_RunTailoring(t *testing.T) {
	p, mem := testPipeline(t, stageDispatchClient())
	require.True(t, p.RunScoring(context.Background(), "job text").Success)
	selectAll(t, mem)

	result := p.RunTailoring(context.Background())
	require.True(t, result.Success, result.Message)

	entries, err := p.store.AllEntries()
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, "Engineered Go data pipelines", entry.TailoredText)
	}

	state, err := p.Status()
	require.NoError(t, err)
	assert.Equal(t, types.StatusTailored, state.Status)
}

func TestPipeline_RunTailoring_RequiresReviewedRun(t *testing.T) {
	p, _ := testPipeline(t, stageDispatchClient())

	result := p.RunTailoring(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "requires a reviewed scoring run")
}

func TestPipeline_RunTailoring_NoSelections(t *testing.T) {
	p, _ := testPipeline(t, stageDispatchClient())
	require.True(t, p.RunScoring(context.Background(), "job text").Success)

	result := p.RunTailoring(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "nothing to tailor")
}

func TestPipeline_RunTailoring_SentinelWrittenVerbatim(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			switch {
			case strings.Contains(req.Prompt, "You are scoring"):
				return `{"relevanceScore": 0.9, "matchingKeywords": [], "justification": "ok"}`, nil
			case strings.Contains(req.Prompt, "rewriting one resume bullet"):
				return types.NotSuitableSentinel, nil
			default:
				return analysisJSON, nil
			}
		},
	}
	p, mem := testPipeline(t, client)
	require.True(t, p.RunScoring(context.Background(), "job text").Success)
	selectAll(t, mem)

	result := p.RunTailoring(context.Background())
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 3, result.Details["not_suitable"])

	entries, err := p.store.AllEntries()
	require.NoError(t, err)
	assert.Equal(t, types.NotSuitableSentinel, entries[0].TailoredText)
	assert.False(t, entries[0].HasUsableTailoredText())
}

func TestPipeline_RunTailoring_FailureMarkedInPlace(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			switch {
			case strings.Contains(req.Prompt, "You are scoring"):
				return `{"relevanceScore": 0.9, "matchingKeywords": [], "justification": "ok"}`, nil
			case strings.Contains(req.Prompt, "rewriting one resume bullet"):
				return "", fmt.Errorf("model unavailable")
			default:
				return analysisJSON, nil
			}
		},
	}
	p, mem := testPipeline(t, client)
	require.True(t, p.RunScoring(context.Background(), "job text").Success)
	selectAll(t, mem)

	result := p.RunTailoring(context.Background())
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 3, result.Details["failed"])

	entries, err := p.store.AllEntries()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entries[0].TailoredText, types.ErrorMarkerPrefix))
}

func TestPipeline_RunAssembly(t *testing.T) {
	p, mem := testPipeline(t, stageDispatchClient())
	require.True(t, p.RunScoring(context.Background(), "job text").Success)
	selectAll(t, mem)
	require.True(t, p.RunTailoring(context.Background()).Success)

	dir := t.TempDir()
	templatePath := filepath.Join(dir, "resume.tex")
	outputPath := filepath.Join(dir, "out.tex")
	template := "{{FULL_NAME}}\n{{SUMMARY}}\n{{EXPERIENCE}}\n{{TECHNICAL_SKILLS}}\n"
	require.NoError(t, os.WriteFile(templatePath, []byte(template), 0644))

	result := p.RunAssembly(context.Background(), templatePath, outputPath)
	require.True(t, result.Success, result.Message)

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Jane Doe")
	assert.Contains(t, string(out), "Engineered Go data pipelines")

	state, err := p.Status()
	require.NoError(t, err)
	assert.Equal(t, types.StatusAssembled, state.Status)
}

func TestPipeline_RunAssembly_RequiresTailoredRun(t *testing.T) {
	p, _ := testPipeline(t, stageDispatchClient())

	result := p.RunAssembly(context.Background(), "template.tex", "out.tex")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "requires a completed tailoring run")
}

func TestPipeline_RunAssembly_UnsupportedTemplate(t *testing.T) {
	p, mem := testPipeline(t, stageDispatchClient())
	require.True(t, p.RunScoring(context.Background(), "job text").Success)
	selectAll(t, mem)
	require.True(t, p.RunTailoring(context.Background()).Success)

	result := p.RunAssembly(context.Background(), "resume.pdf", "out.pdf")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "unsupported template format")
}

func TestCollectScorableUnits(t *testing.T) {
	record := &types.ResumeRecord{Sections: []types.Section{
		{Title: types.SectionEducation, Items: []types.Item{
			&types.EducationEntry{Institution: "State University"},
		}},
		{Title: types.SectionExperience, Items: []types.Item{
			&types.Job{Company: "Acme Corp", Responsibilities: []string{"one", "two"}},
		}},
		{Title: types.SectionHonors, Items: []types.Item{
			&types.Award{Title: "Dean's List", Description: "Top 5%"},
		}},
		{Title: types.SectionSkills, Subsections: []types.Subsection{
			{Name: "Languages", Items: []types.Item{
				&types.SkillOrCert{Category: "Languages", Skill: "Go", Details: "gRPC"},
			}},
		}},
	}}

	units := collectScorableUnits(record)
	require.Len(t, units, 4)

	// Education contributes nothing; bullets carry their item's natural key.
	assert.Equal(t, types.SectionExperience, units[0].section)
	assert.Equal(t, "Acme Corp", units[0].identifier)
	assert.Equal(t, "one", units[0].text)
	assert.Equal(t, "Top 5%", units[2].text)

	// The skill's scorable text carries its details.
	assert.Equal(t, "Go - gRPC", units[3].text)
	assert.Equal(t, "Go", units[3].identifier)
}

func TestUnitID(t *testing.T) {
	assert.Equal(t, "ITEM-0001", unitID(0))
	assert.Equal(t, "ITEM-0042", unitID(41))
}
