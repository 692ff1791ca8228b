package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/textfilter"
)

// Chat message roles for AI providers.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one turn of an NPC interrogation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NPCChatRequest carries everything the AI needs to answer one
// free-text question asked of an NPC mid-dialogue.
type NPCChatRequest struct {
	Game     *game.Game
	NPC      *game.NPC
	Node     *game.DialogueNode
	History  []ChatMessage
	Question string
}

// NPCChatResponse is the parsed AI answer. TriggerOptionIndex is the
// dialogue option the AI decided the answer unlocks, or -1.
type NPCChatResponse struct {
	Text               string
	TriggerOptionIndex int
}

// AIService answers free-text questions in an NPC's voice.
type AIService interface {
	// AskNPC generates the NPC's in-character reply to a question
	AskNPC(ctx context.Context, req NPCChatRequest) (*NPCChatResponse, error)
}

// optionTriggerPattern matches the marker the model appends when its
// answer should unlock a fixed dialogue option, e.g. [OPTION_TRIGGER:2].
var optionTriggerPattern = regexp.MustCompile(`\[OPTION_TRIGGER:(\d+)\]`)

// replySanitizer scrubs model output of leaked markdown, stage
// directions and profanity before it reaches the player.
var replySanitizer = textfilter.NewSanitizer()

// parseOptionTrigger strips the option marker from raw model output and
// returns the sanitized text plus the option index, or -1 when absent.
func parseOptionTrigger(raw string) (string, int) {
	idx := -1
	m := optionTriggerPattern.FindStringSubmatch(raw)
	if m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			idx = n
		}
	}
	text := optionTriggerPattern.ReplaceAllString(raw, "")
	return strings.TrimSpace(replySanitizer.Clean(text)), idx
}
