package engine

import (
	"log/slog"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// Resolver applies player actions to session state. Resolve is a pure
// function of (content, state, action): it clones the state before
// mutating, emits presentation effects as data, and never returns an
// error. Missing content references degrade to no-ops and gating
// failures surface as message effects.
type Resolver struct {
	lang   string
	logger *slog.Logger
}

// New creates a resolver rendering messages in the given BCP 47
// language tag.
func New(lang string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{lang: lang, logger: logger}
}

// Resolve computes the next session state and the effects the
// presentation layer should perform for one player action.
func (r *Resolver) Resolve(g *game.Game, st *session.State, a Action) (*session.State, []Effect) {
	next := st.Clone()

	// A finished game is terminal until an explicit restart.
	if next.IsGameFinished {
		if _, ok := a.(Restart); ok {
			return r.restart(g, next)
		}
		return next, nil
	}

	switch act := a.(type) {
	case TriggerHotspot:
		return r.triggerHotspot(g, next, act.HotspotID)
	case TriggerExit:
		return r.triggerExit(g, next, act.ExitID)
	case GoBack:
		return r.goBack(next)
	case TalkToNPC:
		return r.talkToNPC(g, next, act.NPCID)
	case SelectDialogueOption:
		return r.selectDialogueOption(g, next, act.OptionIndex)
	case CloseDialogue:
		return r.closeDialogue(next)
	case SubmitPuzzleAnswer:
		return r.submitPuzzleAnswer(g, next, act.HotspotID, act.Answer)
	case CombineItems:
		return r.combineItems(g, next, act.ItemA, act.ItemB)
	case InspectItem:
		return r.inspectItem(next, act.ItemID)
	case CloseInspect:
		next.InspectedItemID = ""
		return next, nil
	case OpenAccusation:
		return r.openAccusation(g, next)
	case SubmitAccusation:
		return r.submitAccusation(g, next, act.NPCID)
	case Restart:
		return r.restart(g, next)
	default:
		r.logger.Warn("Unknown action variant", "action", a)
		return next, nil
	}
}

func (r *Resolver) text(l game.Localized) string {
	return l.Resolve(r.lang)
}

// textOr resolves an authored message, falling back to a generic one.
func (r *Resolver) textOr(l *game.Localized, fallback game.Localized) string {
	if l != nil && !l.IsEmpty() {
		return l.Resolve(r.lang)
	}
	return fallback.Resolve(r.lang)
}

func (r *Resolver) triggerHotspot(g *game.Game, st *session.State, hotspotID string) (*session.State, []Effect) {
	scene, ok := g.Scene(st.CurrentSceneID)
	if !ok {
		r.logger.Warn("Current scene not found in content", "scene_id", st.CurrentSceneID)
		return st, nil
	}
	hs, ok := scene.Hotspot(hotspotID)
	if !ok {
		r.logger.Warn("Hotspot not found in current scene", "hotspot_id", hotspotID, "scene_id", scene.ID)
		return st, nil
	}

	// Re-triggering a solved puzzle is silently inert: no effects,
	// no state change, not even its visual effect.
	if hs.ActionType == game.ActionInputPuzzle && st.HasSolved(hs.ID) {
		return st, nil
	}

	// A gate that was satisfied once stays satisfied: revisiting a
	// scene, re-talking to an NPC, or re-firing a solved hotspot
	// never re-demands the item.
	alreadyMet := false
	switch hs.ActionType {
	case game.ActionGoto:
		alreadyMet = hs.TargetID != "" && st.HasVisited(hs.TargetID)
	case game.ActionTalk:
		alreadyMet = hs.TargetID != "" && st.HasTalkedTo(hs.TargetID)
	default:
		alreadyMet = st.HasSolved(hs.ID)
	}

	if hs.RequiredItemID != "" && !alreadyMet && !st.HasItem(hs.RequiredItemID) {
		return st, []Effect{
			showMessage(r.textOr(hs.ItemMissingMessage, msgMissingItem)),
			showShake(),
		}
	}

	var effects []Effect
	switch hs.VisualEffect {
	case game.EffectShake:
		effects = append(effects, showShake())
	case game.EffectFlash:
		effects = append(effects, showFlash())
	}

	// Puzzles defer solve-marking to a correct answer submission.
	if hs.ActionType != game.ActionInputPuzzle {
		st.AddSolved(hs.ID)
	}

	switch hs.ActionType {
	case game.ActionGoto:
		if target, ok := g.Scene(hs.TargetID); ok {
			st.SceneHistory = append(st.SceneHistory, st.CurrentSceneID)
			st.CurrentSceneID = target.ID
			st.AddVisited(target.ID)
			st.Reveal(hs.RevealsHotspotIDs...)
			effects = append(effects, sceneChanged(target.ID))
		}

	case game.ActionGetItem:
		if item, ok := g.Item(hs.TargetID); ok && !st.HasItem(item.ID) {
			st.AddItem(item.ID)
			st.Reveal(hs.RevealsHotspotIDs...)
			effects = append(effects, itemObtained(item.ID))
		}
		// The success message shows even when the item was already
		// held; it doubles as flavor text for the spot.
		if hs.SuccessMessage != nil && !hs.SuccessMessage.IsEmpty() {
			effects = append(effects, showMessage(r.text(*hs.SuccessMessage)))
		}

	case game.ActionTalk:
		if hs.TargetID != "" {
			if opened := r.startDialogue(g, st, hs.TargetID); opened {
				effects = append(effects, Effect{Type: EffectDialogueOpened, NPCID: hs.TargetID})
			}
			st.Reveal(hs.RevealsHotspotIDs...)
		}

	case game.ActionExamine:
		effects = append(effects, Effect{Type: EffectOpenExamine, HotspotID: hs.ID})
		st.Reveal(hs.RevealsHotspotIDs...)
		if hs.SuccessMessage != nil && !hs.SuccessMessage.IsEmpty() {
			effects = append(effects, showMessage(r.text(*hs.SuccessMessage)))
		}

	case game.ActionInputPuzzle:
		// Reveal and solve state stay untouched until the answer
		// comes back correct.
		effects = append(effects, Effect{Type: EffectOpenPuzzle, HotspotID: hs.ID})
	}

	if hs.IsEnding {
		ending := hs.EndingType
		if ending == "" {
			ending = game.EndingSuccess
		}
		st.IsGameFinished = true
		st.EndingType = ending
		effects = append(effects, gameEnded(ending))
	}

	return st, effects
}

func (r *Resolver) triggerExit(g *game.Game, st *session.State, exitID string) (*session.State, []Effect) {
	scene, ok := g.Scene(st.CurrentSceneID)
	if !ok {
		return st, nil
	}
	exit, ok := scene.Exit(exitID)
	if !ok {
		r.logger.Warn("Exit not found in current scene", "exit_id", exitID, "scene_id", scene.ID)
		return st, nil
	}

	alreadyVisited := st.HasVisited(exit.TargetSceneID)
	if exit.RequiredItemID != "" && !alreadyVisited && !st.HasItem(exit.RequiredItemID) {
		return st, []Effect{showMessage(r.text(msgLockedPath)), showShake()}
	}

	if _, ok := g.Scene(exit.TargetSceneID); !ok {
		r.logger.Warn("Exit targets unknown scene", "exit_id", exitID, "target", exit.TargetSceneID)
		return st, nil
	}

	st.SceneHistory = append(st.SceneHistory, st.CurrentSceneID)
	st.CurrentSceneID = exit.TargetSceneID
	st.AddVisited(exit.TargetSceneID)
	return st, []Effect{sceneChanged(exit.TargetSceneID)}
}

func (r *Resolver) goBack(st *session.State) (*session.State, []Effect) {
	if len(st.SceneHistory) == 0 {
		return st, nil
	}
	prev := st.SceneHistory[len(st.SceneHistory)-1]
	st.SceneHistory = st.SceneHistory[:len(st.SceneHistory)-1]
	st.CurrentSceneID = prev
	return st, []Effect{sceneChanged(prev)}
}

func (r *Resolver) talkToNPC(g *game.Game, st *session.State, npcID string) (*session.State, []Effect) {
	scene, ok := g.Scene(st.CurrentSceneID)
	if !ok {
		return st, nil
	}
	cfg, ok := scene.NPCConfig(npcID)
	if !ok {
		r.logger.Warn("NPC not placed in current scene", "npc_id", npcID, "scene_id", scene.ID)
		return st, nil
	}

	alreadyTalked := st.HasTalkedTo(npcID)
	if cfg.RequiredItemID != "" && !alreadyTalked && !st.HasItem(cfg.RequiredItemID) {
		return st, []Effect{showMessage(r.text(msgLockedPath)), showShake()}
	}

	if opened := r.startDialogue(g, st, npcID); opened {
		return st, []Effect{{Type: EffectDialogueOpened, NPCID: npcID}}
	}
	return st, nil
}

func (r *Resolver) submitPuzzleAnswer(g *game.Game, st *session.State, hotspotID, answer string) (*session.State, []Effect) {
	scene, ok := g.Scene(st.CurrentSceneID)
	if !ok {
		return st, nil
	}
	hs, ok := scene.Hotspot(hotspotID)
	if !ok || hs.ActionType != game.ActionInputPuzzle {
		return st, nil
	}
	if st.HasSolved(hs.ID) {
		return st, nil
	}

	// Exact, case-sensitive comparison. An unset answer can never
	// match, which also covers malformed puzzle content.
	if hs.PuzzleAnswer == "" || answer != hs.PuzzleAnswer {
		return st, []Effect{
			showShake(),
			showMessage(r.textOr(hs.FailureMessage, msgIncorrectAnswer)),
		}
	}

	st.Reveal(hs.RevealsHotspotIDs...)

	var effects []Effect
	// Puzzles bias toward a flash confirmation: only an explicit
	// SHAKE overrides it.
	if hs.VisualEffect == game.EffectShake {
		effects = append(effects, showShake())
	} else {
		effects = append(effects, showFlash())
	}

	if item, ok := g.Item(hs.TargetID); ok && !st.HasItem(item.ID) {
		st.AddItem(item.ID)
		effects = append(effects, itemObtained(item.ID))
	}
	if hs.SuccessMessage != nil && !hs.SuccessMessage.IsEmpty() {
		effects = append(effects, showMessage(r.text(*hs.SuccessMessage)))
	}

	st.AddSolved(hs.ID)
	effects = append(effects, Effect{Type: EffectClosePuzzle, HotspotID: hs.ID})

	if hs.IsEnding {
		ending := hs.EndingType
		if ending == "" {
			ending = game.EndingSuccess
		}
		st.IsGameFinished = true
		st.EndingType = ending
		effects = append(effects, gameEnded(ending))
	}

	return st, effects
}

func (r *Resolver) combineItems(g *game.Game, st *session.State, idA, idB string) (*session.State, []Effect) {
	itemA, okA := g.Item(idA)
	itemB, okB := g.Item(idB)
	if !okA || !okB {
		return st, nil
	}

	// A's declared rule wins over B's when both exist.
	resultID, ok := itemA.CombinesInto(idB)
	if !ok {
		resultID, ok = itemB.CombinesInto(idA)
	}
	if ok {
		if _, exists := g.Item(resultID); !exists {
			ok = false
		}
	}
	if !ok {
		return st, []Effect{showMessage(r.text(msgWrongCombination)), showShake()}
	}

	st.RemoveItem(idA)
	st.RemoveItem(idB)
	st.AddItem(resultID)
	return st, []Effect{itemObtained(resultID), showFlash()}
}

func (r *Resolver) inspectItem(st *session.State, itemID string) (*session.State, []Effect) {
	if !st.HasItem(itemID) {
		return st, nil
	}
	st.InspectedItemID = itemID
	return st, nil
}

func (r *Resolver) openAccusation(g *game.Game, st *session.State) (*session.State, []Effect) {
	if !CanAccuse(g, st) {
		return st, []Effect{showMessage(r.text(msgNeedAllEvidence)), showShake()}
	}
	return st, []Effect{{Type: EffectOpenAccusation}}
}

func (r *Resolver) submitAccusation(g *game.Game, st *session.State, npcID string) (*session.State, []Effect) {
	// The UI gates accusation at opening, but the resolver is the
	// authority: a submission crafted over the API gets the same check.
	if !CanAccuse(g, st) {
		return st, []Effect{showMessage(r.text(msgNeedAllEvidence)), showShake()}
	}

	npc, ok := g.NPC(npcID)
	if !ok {
		r.logger.Warn("Accused NPC not found in content", "npc_id", npcID)
		return st, nil
	}

	// Guilt is decided solely by the killer flag: the evidence gate
	// controls when you may accuse, never whom.
	ending := game.EndingFailure
	if npc.IsKiller {
		ending = game.EndingSuccess
	}
	st.IsGameFinished = true
	st.EndingType = ending
	return st, []Effect{gameEnded(ending)}
}

func (r *Resolver) restart(g *game.Game, st *session.State) (*session.State, []Effect) {
	fresh := session.New(g)
	fresh.ID = st.ID // same session identity, new playthrough
	fresh.GameID = st.GameID
	return fresh, []Effect{sceneChanged(fresh.CurrentSceneID)}
}
