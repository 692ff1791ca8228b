package game

// DialogueOption is one player-selectable reply on a dialogue node.
// An option with no NextNodeID ends the conversation when chosen.
type DialogueOption struct {
	Text         Localized `json:"text"`
	NextNodeID   string    `json:"nextNodeId,omitempty"`
	RequiredItems []string `json:"requiredItems,omitempty"` // all must be in inventory to select
	RewardItemID string    `json:"rewardItemId,omitempty"`
}

// DialogueNode is one turn of NPC speech plus its follow-up options.
type DialogueNode struct {
	ID         string           `json:"id"`
	Text       Localized        `json:"text"`
	IsEnding   bool             `json:"isEnding,omitempty"`
	EndingType EndingType       `json:"endingType,omitempty"`
	Options    []DialogueOption `json:"options"`
}

// NPC is a suspect the player can interrogate. At most one NPC in a
// well-formed game carries IsKiller; the accusation evaluator trusts
// the flag without enforcing the count.
type NPC struct {
	ID               string                   `json:"id"`
	Name             Localized                `json:"name"`
	PortraitURL      string                   `json:"portraitUrl,omitempty"`
	InitialDialogueID string                  `json:"initialDialogueId"`
	DialogueTree     map[string]*DialogueNode `json:"dialogueTree"`
	IsKiller         bool                     `json:"isKiller,omitempty"`

	// SecretPersona is hidden context handed to the AI collaborator
	// for free-text chat; it never renders to the player directly.
	SecretPersona *Localized `json:"secretPersona,omitempty"`

	// UseAIOnlyChat opts the NPC out of free-text chat when explicitly
	// false. Absent means enabled.
	UseAIOnlyChat *bool `json:"useAiOnlyChat,omitempty"`
}

// AIChatEnabled reports whether the NPC takes free-text questions.
// Only an authored false disables it.
func (n *NPC) AIChatEnabled() bool {
	return n.UseAIOnlyChat == nil || *n.UseAIOnlyChat
}

// Node returns the dialogue node with the given id.
func (n *NPC) Node(id string) (*DialogueNode, bool) {
	node, ok := n.DialogueTree[id]
	if !ok || node == nil {
		return nil, false
	}
	return node, true
}
