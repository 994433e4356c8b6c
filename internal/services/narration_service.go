package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nomadai/internal/engine"
	"nomadai/pkg/utils"
)

// NarrationService implements engine.Narrator on top of a generative text
// backend. It only reads the itinerary; nothing in the response flows back
// into planning.
type NarrationService struct {
	textClient utils.TextGenerationClientInterface
	logger     *zap.Logger
}

func NewNarrationService(textClient utils.TextGenerationClientInterface, logger *zap.Logger) *NarrationService {
	return &NarrationService{textClient: textClient, logger: logger}
}

type narrationResponse struct {
	Days []struct {
		Day  int    `json:"day"`
		Text string `json:"text"`
	} `json:"days"`
}

func (s *NarrationService) Narrate(ctx context.Context, itinerary *engine.Itinerary) (map[int]string, error) {
	if s.textClient == nil {
		return nil, fmt.Errorf("no narration backend configured")
	}

	prompt := s.buildPrompt(itinerary)
	raw, err := s.textClient.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed narrationResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &parsed); err != nil {
		s.logger.Warn("narration response not parseable", zap.Error(err))
		return nil, fmt.Errorf("malformed narration response: %w", err)
	}

	narratives := make(map[int]string, len(parsed.Days))
	for _, day := range parsed.Days {
		// The model numbers days from 1.
		narratives[day.Day-1] = strings.TrimSpace(day.Text)
	}
	return narratives, nil
}

func (s *NarrationService) buildPrompt(itinerary *engine.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, engaging travel narrative for each day of a trip to %s.\n",
		itinerary.Request.Destination)
	if len(itinerary.Request.Interests) > 0 {
		fmt.Fprintf(&b, "Traveler interests: %s.\n", strings.Join(itinerary.Request.Interests, ", "))
	}
	b.WriteString("Respond with JSON only, shaped as ")
	b.WriteString(`{"days":[{"day":1,"text":"..."}]}`)
	b.WriteString(" covering every day listed below. Describe only the listed activities.\n\n")

	for _, day := range itinerary.Days {
		fmt.Fprintf(&b, "Day %d (%s):\n", day.Day+1, utils.FormatDate(day.Date))
		if len(day.Slots) == 0 {
			b.WriteString("  free day\n")
			continue
		}
		for _, slot := range day.Slots {
			fmt.Fprintf(&b, "  %s-%s %s\n",
				utils.FormatClock(slot.StartMin), utils.FormatClock(slot.EndMin), slot.Option.Name)
		}
	}
	return b.String()
}

// cleanJSONResponse strips markdown code fences some models wrap around
// JSON output.
func cleanJSONResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
