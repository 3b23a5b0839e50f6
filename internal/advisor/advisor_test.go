package advisor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"datalens/domain/metrics"
	"datalens/internal/errors"
	"datalens/ports"
)

type fakeClient struct {
	response *ports.ChatResponse
	err      error
	lastReq  ports.ChatRequest
}

func (f *fakeClient) ChatCompletion(ctx context.Context, req ports.ChatRequest) (*ports.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func sampleSummary() ([]metrics.ColumnProfile, metrics.Snapshot) {
	profiles := []metrics.ColumnProfile{
		{
			Name: "Capacidad_Instalada_MW", Type: "numeric",
			DistinctCount: 3, NullCount: 0,
			Summary: &metrics.ColumnMetric{Column: "Capacidad_Instalada_MW", Sum: 225, Mean: 75, Min: 50, Max: 100, Valid: true},
		},
		{
			Name: "Tecnologia", Type: "categorical",
			DistinctCount: 2, NullCount: 1,
			SampleValues: []string{"Solar", "Eolica"},
		},
	}
	snap := metrics.Snapshot{Rows: 3, Columns: 2, TotalNulls: 1}
	return profiles, snap
}

func TestAsk_Disabled(t *testing.T) {
	adv := New(nil, "gpt-4o-mini", 256, time.Second)
	if adv.Enabled() {
		t.Fatal("advisor without a client must report disabled")
	}

	profiles, snap := sampleSummary()
	_, err := adv.Ask(context.Background(), "plants.csv", "anything?", profiles, snap)
	if err == nil {
		t.Fatal("disabled advisor must return an error")
	}
	if errors.GetCode(err) != errors.CodeExternalService {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeExternalService)
	}
	if !strings.Contains(err.Error(), "disabled") {
		t.Errorf("error %q should carry the disabled notice", err.Error())
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	adv := New(&fakeClient{}, "gpt-4o-mini", 256, time.Second)
	profiles, snap := sampleSummary()

	_, err := adv.Ask(context.Background(), "plants.csv", "  ", profiles, snap)
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeInvalidInput)
	}
}

func TestAsk_Success(t *testing.T) {
	client := &fakeClient{response: &ports.ChatResponse{
		Content: "Solar dominates with **175 MW**.",
		Usage:   &ports.UsageData{TotalTokens: 42},
	}}
	adv := New(client, "gpt-4o-mini", 256, time.Second)
	profiles, snap := sampleSummary()

	answer, err := adv.Ask(context.Background(), "plants.csv", "Which technology leads?", profiles, snap)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if answer.Text != client.response.Content {
		t.Errorf("Text = %q", answer.Text)
	}
	if !strings.Contains(answer.HTML, "<strong>175 MW</strong>") {
		t.Errorf("HTML = %q, markdown not rendered", answer.HTML)
	}
	if answer.Usage == nil || answer.Usage.TotalTokens != 42 {
		t.Errorf("Usage = %+v", answer.Usage)
	}
	if client.lastReq.Model != "gpt-4o-mini" || client.lastReq.MaxTokens != 256 {
		t.Errorf("request = %+v", client.lastReq)
	}
	if client.lastReq.System == "" {
		t.Error("system instruction missing from request")
	}
}

func TestAsk_ClientFailureBecomesExternalServiceError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("connection refused")}
	adv := New(client, "gpt-4o-mini", 256, time.Second)
	profiles, snap := sampleSummary()

	_, err := adv.Ask(context.Background(), "plants.csv", "why?", profiles, snap)
	if errors.GetCode(err) != errors.CodeExternalService {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeExternalService)
	}
}

func TestBuildPrompt(t *testing.T) {
	profiles, snap := sampleSummary()

	prompt := BuildPrompt("plants.csv", "Which technology leads?", profiles, snap)

	for _, want := range []string{
		"Dataset: plants.csv",
		"Rows (after filters): 3",
		"Capacidad_Instalada_MW (numeric)",
		"sum=225",
		"examples: Solar, Eolica",
		"Question: Which technology leads?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
