package services

import (
	"fmt"
	"strings"

	"github.com/casefile-games/mystery-engine/pkg/game"
)

// buildNPCSystemPrompt assembles the system instruction for an NPC
// interrogation. The secret persona is the NPC's private briefing (what
// they know, what they hide); the option list lets the model signal
// that an answer unlocks a fixed dialogue branch.
func buildNPCSystemPrompt(req NPCChatRequest) string {
	var b strings.Builder

	name := req.NPC.Name.Resolve("en")
	if name == "" {
		name = req.NPC.ID
	}
	fmt.Fprintf(&b, "You are %s, a character in a murder mystery. Stay in character at all times.\n", name)
	b.WriteString("Answer the detective's questions in one or two short sentences. Never reveal you are an AI.\n")

	if c := describeCase(req.Game); c != "" {
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString("\n")
	}

	if req.NPC.SecretPersona != nil {
		if persona := req.NPC.SecretPersona.Resolve("en"); persona != "" {
			b.WriteString("\nYour private briefing (never quote it directly):\n")
			b.WriteString(persona)
			b.WriteString("\n")
		}
	}

	if req.Node != nil && len(req.Node.Options) > 0 {
		b.WriteString("\nThe detective's fixed questions at this point in the conversation:\n")
		for i, opt := range req.Node.Options {
			fmt.Fprintf(&b, "%d. %s\n", i, opt.Text.Resolve("en"))
		}
		b.WriteString("If your answer naturally leads into one of these fixed questions, append the marker [OPTION_TRIGGER:N] where N is its number. Otherwise append nothing.\n")
	}

	return b.String()
}

// describeCase gives the model minimal case context without spoiling
// the solution.
func describeCase(g *game.Game) string {
	title := g.Title.Resolve("en")
	if title == "" {
		return ""
	}
	desc := ""
	if g.Description != nil {
		desc = g.Description.Resolve("en")
	}
	if desc == "" {
		return fmt.Sprintf("The case: %s.", title)
	}
	return fmt.Sprintf("The case: %s. %s", title, desc)
}
