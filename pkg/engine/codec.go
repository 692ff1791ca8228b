package engine

import (
	"encoding/json"
	"fmt"
)

// Wire names for action variants.
const (
	ActionTriggerHotspot     = "trigger_hotspot"
	ActionTriggerExit        = "trigger_exit"
	ActionGoBack             = "go_back"
	ActionTalkToNPC          = "talk_to_npc"
	ActionSelectOption       = "select_dialogue_option"
	ActionCloseDialogue      = "close_dialogue"
	ActionSubmitPuzzleAnswer = "submit_puzzle_answer"
	ActionCombineItems       = "combine_items"
	ActionInspectItem        = "inspect_item"
	ActionCloseInspect       = "close_inspect"
	ActionOpenAccusation     = "open_accusation"
	ActionSubmitAccusation   = "submit_accusation"
	ActionRestart            = "restart"
)

// actionEnvelope is the tagged wire form of an Action: a type
// discriminator plus the union of all variant fields.
type actionEnvelope struct {
	Type        string `json:"type"`
	HotspotID   string `json:"hotspotId,omitempty"`
	ExitID      string `json:"exitId,omitempty"`
	NPCID       string `json:"npcId,omitempty"`
	OptionIndex int    `json:"optionIndex,omitempty"`
	Answer      string `json:"answer,omitempty"`
	ItemA       string `json:"itemA,omitempty"`
	ItemB       string `json:"itemB,omitempty"`
	ItemID      string `json:"itemId,omitempty"`
}

// DecodeAction parses the tagged JSON form of an action.
func DecodeAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse action: %w", err)
	}

	switch env.Type {
	case ActionTriggerHotspot:
		return TriggerHotspot{HotspotID: env.HotspotID}, nil
	case ActionTriggerExit:
		return TriggerExit{ExitID: env.ExitID}, nil
	case ActionGoBack:
		return GoBack{}, nil
	case ActionTalkToNPC:
		return TalkToNPC{NPCID: env.NPCID}, nil
	case ActionSelectOption:
		return SelectDialogueOption{OptionIndex: env.OptionIndex}, nil
	case ActionCloseDialogue:
		return CloseDialogue{}, nil
	case ActionSubmitPuzzleAnswer:
		return SubmitPuzzleAnswer{HotspotID: env.HotspotID, Answer: env.Answer}, nil
	case ActionCombineItems:
		return CombineItems{ItemA: env.ItemA, ItemB: env.ItemB}, nil
	case ActionInspectItem:
		return InspectItem{ItemID: env.ItemID}, nil
	case ActionCloseInspect:
		return CloseInspect{}, nil
	case ActionOpenAccusation:
		return OpenAccusation{}, nil
	case ActionSubmitAccusation:
		return SubmitAccusation{NPCID: env.NPCID}, nil
	case ActionRestart:
		return Restart{}, nil
	default:
		return nil, fmt.Errorf("unknown action type: %q", env.Type)
	}
}

// EncodeAction renders an action in its tagged JSON form.
func EncodeAction(a Action) ([]byte, error) {
	var env actionEnvelope

	switch act := a.(type) {
	case TriggerHotspot:
		env = actionEnvelope{Type: ActionTriggerHotspot, HotspotID: act.HotspotID}
	case TriggerExit:
		env = actionEnvelope{Type: ActionTriggerExit, ExitID: act.ExitID}
	case GoBack:
		env = actionEnvelope{Type: ActionGoBack}
	case TalkToNPC:
		env = actionEnvelope{Type: ActionTalkToNPC, NPCID: act.NPCID}
	case SelectDialogueOption:
		env = actionEnvelope{Type: ActionSelectOption, OptionIndex: act.OptionIndex}
	case CloseDialogue:
		env = actionEnvelope{Type: ActionCloseDialogue}
	case SubmitPuzzleAnswer:
		env = actionEnvelope{Type: ActionSubmitPuzzleAnswer, HotspotID: act.HotspotID, Answer: act.Answer}
	case CombineItems:
		env = actionEnvelope{Type: ActionCombineItems, ItemA: act.ItemA, ItemB: act.ItemB}
	case InspectItem:
		env = actionEnvelope{Type: ActionInspectItem, ItemID: act.ItemID}
	case CloseInspect:
		env = actionEnvelope{Type: ActionCloseInspect}
	case OpenAccusation:
		env = actionEnvelope{Type: ActionOpenAccusation}
	case SubmitAccusation:
		env = actionEnvelope{Type: ActionSubmitAccusation, NPCID: act.NPCID}
	case Restart:
		env = actionEnvelope{Type: ActionRestart}
	default:
		return nil, fmt.Errorf("unknown action variant: %T", a)
	}

	return json.Marshal(env)
}
