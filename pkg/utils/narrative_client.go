package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
)

// NarrativeClientInterface turns structured day seeds into narrative text.
// Implementations never touch structural fields; callers overwrite them.
type NarrativeClientInterface interface {
	GenerateItinerary(ctx context.Context, request req.NarrativeRequest) (*resp.NarrativeResponse, error)
	Close() error
}

const narrativeSystemPrompt = "You are a travel planner. Output JSON only. Create a concise itinerary with day-by-day morning/afternoon/evening plans. " +
	"Vary each day, avoid repeating phrases, and use the provided day seeds."

func buildNarrativePrompt(request req.NarrativeRequest) (string, error) {
	ctxJSON, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal narrative context: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Return JSON with keys: title, summary, days. days is an array of exactly %d objects {day, morning, afternoon, evening, deal_ids}. ", request.Duration)
	b.WriteString("Use the provided daySeeds as anchors: keep the same city and date for each day and include the deal title in afternoon when provided. ")
	b.WriteString("If daySeeds has travelFrom, make morning about transit and check-in (do not add extra city hops). ")
	b.WriteString("Set deal_ids to the deal id from daySeeds when used. Avoid repeating the same morning/afternoon/evening text.\n")
	b.WriteString("Context:\n")
	b.Write(ctxJSON)
	return b.String(), nil
}

var narrativeSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["days"],
  "properties": {
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "days": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["morning", "afternoon", "evening"],
        "properties": {
          "day": {"type": "integer"},
          "title": {"type": "string"},
          "morning": {"type": "string"},
          "afternoon": {"type": "string"},
          "evening": {"type": "string"},
          "deal_ids": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`)

// ParseNarrativeJSON extracts the JSON object from a model reply, checks it
// against the narrative schema and decodes it. Failures wrap
// ErrMalformedGeneration.
func ParseNarrativeJSON(content string) (*resp.NarrativeResponse, error) {
	cleaned := CleanJSONResponse(content)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: not valid json", ErrMalformedGeneration)
	}

	result, err := gojsonschema.Validate(narrativeSchema, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, errs)
	}

	var out resp.NarrativeResponse
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	return &out, nil
}

// CleanJSONResponse strips markdown fences and chatter around the first
// JSON object or array in a model reply.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatching(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatching(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}
	return strings.TrimSpace(response)
}

// findMatching returns the index closing the bracket at start, skipping
// string literals, or -1.
func findMatching(s string, start int, open, closing byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		char := s[i]
		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch char {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

type NarrativeClientConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// NewNarrativeClient builds the client for the configured provider.
func NewNarrativeClient(cfg NarrativeClientConfig) (NarrativeClientInterface, error) {
	if cfg.APIKey == "" {
		return nil, ErrGenerationDisabled
	}
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAINarrativeClient(cfg), nil
	case "gemini":
		return NewGeminiNarrativeClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported narrative provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
