package engine

import (
	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// startDialogue opens a conversation at the NPC's initial node and
// marks the NPC as talked to. Returns false when the NPC id dangles.
func (r *Resolver) startDialogue(g *game.Game, st *session.State, npcID string) bool {
	npc, ok := g.NPC(npcID)
	if !ok {
		r.logger.Warn("Dialogue target NPC not found", "npc_id", npcID)
		return false
	}
	st.ActiveDialogueNPCID = npc.ID
	st.ActiveDialogueNodeID = npc.InitialDialogueID
	st.AddTalkedTo(npc.ID)
	return true
}

// OptionSelectable reports whether a dialogue option's item
// requirements are all satisfied by the inventory.
func OptionSelectable(opt *game.DialogueOption, st *session.State) bool {
	for _, req := range opt.RequiredItems {
		if !st.HasItem(req) {
			return false
		}
	}
	return true
}

func (r *Resolver) selectDialogueOption(g *game.Game, st *session.State, optionIndex int) (*session.State, []Effect) {
	if !st.InDialogue() {
		return st, nil
	}
	npc, ok := g.NPC(st.ActiveDialogueNPCID)
	if !ok {
		return st, nil
	}
	node, ok := npc.Node(st.ActiveDialogueNodeID)
	if !ok {
		return st, nil
	}
	if optionIndex < 0 || optionIndex >= len(node.Options) {
		return st, nil
	}
	opt := &node.Options[optionIndex]

	// A gated option whose requirements are unmet is a no-op, not an
	// error: the UI renders it locked, but the engine is the
	// authority.
	if !OptionSelectable(opt, st) {
		return st, nil
	}

	var effects []Effect
	if opt.RewardItemID != "" && !st.HasItem(opt.RewardItemID) {
		if item, ok := g.Item(opt.RewardItemID); ok {
			st.AddItem(item.ID)
			effects = append(effects, itemObtained(item.ID))
		}
	}

	if opt.NextNodeID == "" {
		return r.endDialogue(st, effects)
	}

	nextNode, ok := npc.Node(opt.NextNodeID)
	if !ok {
		// Dangling branch: close the conversation rather than strand
		// the player on a node that does not exist.
		r.logger.Warn("Dialogue option leads to unknown node",
			"npc_id", npc.ID, "node_id", st.ActiveDialogueNodeID, "next", opt.NextNodeID)
		return r.endDialogue(st, effects)
	}

	st.ActiveDialogueNodeID = nextNode.ID

	if nextNode.IsEnding {
		ending := nextNode.EndingType
		if ending == "" {
			ending = game.EndingSuccess
		}
		st.IsGameFinished = true
		st.EndingType = ending
		next, fx := r.endDialogue(st, effects)
		return next, append(fx, gameEnded(ending))
	}

	return st, effects
}

func (r *Resolver) closeDialogue(st *session.State) (*session.State, []Effect) {
	if !st.InDialogue() {
		return st, nil
	}
	return r.endDialogue(st, nil)
}

func (r *Resolver) endDialogue(st *session.State, effects []Effect) (*session.State, []Effect) {
	st.ActiveDialogueNPCID = ""
	st.ActiveDialogueNodeID = ""
	return st, append(effects, Effect{Type: EffectDialogueClosed})
}

// ChatReply is the structured result of the AI collaborator answering
// a free-text question during dialogue. Tag is the dialogue identity
// the question was asked under; TriggerOptionIndex is -1 unless the
// AI signalled that its answer unlocks a fixed option.
type ChatReply struct {
	Tag                string `json:"tag"`
	Text               string `json:"text"`
	TriggerOptionIndex int    `json:"triggerOptionIndex"`
}

// BeginChat registers an outgoing free-text question and returns the
// tag the eventual reply must carry. Each call bumps the sequence so
// an earlier in-flight reply can no longer apply.
func (r *Resolver) BeginChat(st *session.State) (*session.State, string) {
	next := st.Clone()
	next.ChatSeq++
	return next, next.DialogueTag()
}

// ApplyChatReply applies an AI free-chat reply to the session. A reply
// is discarded when the dialogue has moved on since the question was
// asked (closed, different node, or a newer question): its tag no
// longer matches. When the reply names a trigger option, the option is
// auto-selected only if its gating is satisfied; otherwise the unlock
// is suppressed silently and only the text shows.
func (r *Resolver) ApplyChatReply(g *game.Game, st *session.State, reply ChatReply) (*session.State, []Effect) {
	next := st.Clone()

	if !next.InDialogue() || reply.Tag != next.DialogueTag() {
		r.logger.Debug("Discarding stale chat reply", "tag", reply.Tag, "current", next.DialogueTag())
		return next, nil
	}

	effects := []Effect{showMessage(reply.Text)}

	if reply.TriggerOptionIndex < 0 {
		return next, effects
	}

	npc, ok := g.NPC(next.ActiveDialogueNPCID)
	if !ok {
		return next, effects
	}
	node, ok := npc.Node(next.ActiveDialogueNodeID)
	if !ok {
		return next, effects
	}
	if reply.TriggerOptionIndex >= len(node.Options) {
		return next, effects
	}
	if !OptionSelectable(&node.Options[reply.TriggerOptionIndex], next) {
		return next, effects
	}

	next, fx := r.selectDialogueOption(g, next, reply.TriggerOptionIndex)
	return next, append(effects, fx...)
}
