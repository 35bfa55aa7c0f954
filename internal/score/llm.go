package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pathforge/roadmap/internal/types/roadmap"
)

const llmTimeout = 10 * time.Second

// ChatClient is the minimal surface the re-ranker needs from an
// OpenAI-compatible chat-completions endpoint.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements ChatClient against any OpenAI-compatible API.
type OpenAIClient struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

func NewOpenAIClient(endpoint, model, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: llmTimeout},
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("llm client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty chat response")
	}
	return parsed.Choices[0].Message.Content, nil
}

const rerankSystemPrompt = `You rank learning resources for a curriculum module.
Reply with a JSON object: {"selections": ["<url>", ...]} listing the best
resources for the module, best first, using only URLs from the input.`

// LLMRanker asks a chat model to pick and order the best candidates for a
// module. It fails open: any error, timeout, or unusable reply falls back
// to the wrapped heuristic ranking, never to a failed selection.
type LLMRanker struct {
	client   ChatClient
	fallback Ranker
}

func NewLLMRanker(client ChatClient, fallback Ranker) *LLMRanker {
	return &LLMRanker{client: client, fallback: fallback}
}

func (r *LLMRanker) Rank(ctx context.Context, mc *roadmap.ModuleContext, candidates []*roadmap.Candidate) []*roadmap.Candidate {
	ranked := r.fallback.Rank(ctx, mc, candidates)
	if r.client == nil || len(ranked) == 0 {
		return ranked
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	reply, err := r.client.Complete(llmCtx, rerankSystemPrompt, buildRerankPrompt(mc, ranked))
	if err != nil {
		slog.Warn("llm rerank failed, keeping heuristic order", "module", mc.Title, "error", err)
		return ranked
	}

	selections, err := parseSelections(reply)
	if err != nil {
		slog.Warn("llm rerank reply unusable, keeping heuristic order", "module", mc.Title, "error", err)
		return ranked
	}

	byURL := make(map[string]*roadmap.Candidate, len(ranked))
	for _, cand := range ranked {
		byURL[cand.URL] = cand
	}

	var reordered []*roadmap.Candidate
	picked := make(map[string]struct{}, len(selections))
	for _, url := range selections {
		cand, ok := byURL[url]
		if !ok {
			continue
		}
		if _, dup := picked[url]; dup {
			continue
		}
		picked[url] = struct{}{}
		reordered = append(reordered, cand)
	}
	if len(reordered) == 0 {
		slog.Warn("llm rerank selected nothing recognizable, keeping heuristic order", "module", mc.Title)
		return ranked
	}

	// Heuristic-ranked leftovers follow the LLM picks so allocation still
	// has a full list to draw from.
	for _, cand := range ranked {
		if _, dup := picked[cand.URL]; !dup {
			reordered = append(reordered, cand)
		}
	}
	return reordered
}

func buildRerankPrompt(mc *roadmap.ModuleContext, candidates []*roadmap.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Module: %s\nDescription: %s\nGoal: %s, level: %s, budget: %d minutes\n\nCandidates:\n",
		mc.Title, mc.Description, mc.Goal, mc.SkillLevel, mc.BudgetMinutes)
	for _, cand := range candidates {
		fmt.Fprintf(&b, "- %s | %s | %s | %d min\n", cand.URL, cand.Title, cand.Type, cand.EstimatedMinutes)
	}
	return b.String()
}

func parseSelections(reply string) ([]string, error) {
	// Models wrap JSON in prose and code fences; cut to the outermost braces.
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var parsed struct {
		Selections []string `json:"selections"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse selections: %w", err)
	}
	if len(parsed.Selections) == 0 {
		return nil, fmt.Errorf("empty selections")
	}
	return parsed.Selections, nil
}
