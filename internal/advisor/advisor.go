// Package advisor is the LLM advisory add-on: it formats a prompt from the
// dataset's column names and statistical summary plus the user's free-text
// question, sends it to the configured chat endpoint under a timeout, and
// returns the answer both raw and rendered. The rest of the dashboard never
// waits on it and never fails because of it.
package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datalens/domain/metrics"
	"datalens/internal/errors"
	"datalens/ports"
)

const systemInstruction = "You are a data analyst assisting with exploratory " +
	"analysis of a tabular dataset. Answer the user's question using only the " +
	"statistical summary provided. Be concise; use markdown."

// DisabledNotice is shown inline when no API credential was supplied.
const DisabledNotice = "AI advisory is disabled: no API credential configured"

// Answer is the advisory result for one question.
type Answer struct {
	Text  string           `json:"text"`
	HTML  string           `json:"html"`
	Usage *ports.UsageData `json:"usage,omitempty"`
}

// Advisor drives the advisory add-on. A nil client means the feature is
// disabled (no credential); Ask then returns an inline notice error instead
// of crashing.
type Advisor struct {
	client    ports.LLMClient
	model     string
	maxTokens int
	timeout   time.Duration
}

// New creates an Advisor. client may be nil to disable the feature.
func New(client ports.LLMClient, model string, maxTokens int, timeout time.Duration) *Advisor {
	return &Advisor{client: client, model: model, maxTokens: maxTokens, timeout: timeout}
}

// Enabled reports whether a credential-backed client is configured.
func (a *Advisor) Enabled() bool {
	return a.client != nil
}

// Ask sends the question with the dataset summary and returns the rendered
// answer. Network, timeout and auth failures come back as a single
// EXTERNAL_SERVICE_ERROR for inline display; already-computed metrics and
// charts are unaffected.
func (a *Advisor) Ask(ctx context.Context, datasetName, question string, profiles []metrics.ColumnProfile, snap metrics.Snapshot) (*Answer, error) {
	if !a.Enabled() {
		return nil, errors.ExternalService(DisabledNotice)
	}
	if strings.TrimSpace(question) == "" {
		return nil, errors.InvalidInput("question must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := BuildPrompt(datasetName, question, profiles, snap)
	resp, err := a.client.ChatCompletion(ctx, ports.ChatRequest{
		Model:     a.model,
		System:    systemInstruction,
		Prompt:    prompt,
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		log.Printf("[Advisor] Chat completion failed: %v", err)
		return nil, errors.Wrap(errors.ExternalService("advisory request failed"), err.Error())
	}

	return &Answer{
		Text:  resp.Content,
		HTML:  renderMarkdown(resp.Content),
		Usage: resp.Usage,
	}, nil
}

// BuildPrompt assembles the user prompt: column inventory, statistical
// summary of the current filtered view, then the question.
func BuildPrompt(datasetName, question string, profiles []metrics.ColumnProfile, snap metrics.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dataset: %s\n", datasetName)
	fmt.Fprintf(&b, "Rows (after filters): %d, Columns: %d, Missing cells: %d\n\n", snap.Rows, snap.Columns, snap.TotalNulls)

	b.WriteString("Columns:\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "- %s (%s): %d distinct, %d missing", p.Name, p.Type, p.DistinctCount, p.NullCount)
		if p.Summary != nil && p.Summary.Valid {
			fmt.Fprintf(&b, "; sum=%.4g mean=%.4g min=%.4g max=%.4g stddev=%.4g",
				p.Summary.Sum, p.Summary.Mean, p.Summary.Min, p.Summary.Max, p.Summary.StdDev)
		} else if len(p.SampleValues) > 0 {
			fmt.Fprintf(&b, "; examples: %s", strings.Join(p.SampleValues, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}

func renderMarkdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}
