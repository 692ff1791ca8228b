package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

func TestEvidenceProgress(t *testing.T) {
	g := manorGame() // crucial: item_letter, item_gold, knife
	st := session.New(g)

	held, total := EvidenceProgress(g, st)
	assert.Equal(t, 0, held)
	assert.Equal(t, 3, total)

	st.AddItem("item_letter")
	st.AddItem("key1") // non-crucial, must not count
	held, total = EvidenceProgress(g, st)
	assert.Equal(t, 1, held)
	assert.Equal(t, 3, total)
}

func TestCanAccuse(t *testing.T) {
	g := manorGame()

	t.Run("partial evidence stays locked", func(t *testing.T) {
		st := session.New(g)
		st.AddItem("item_letter")
		st.AddItem("item_gold")
		assert.False(t, CanAccuse(g, st))
	})

	t.Run("all evidence unlocks", func(t *testing.T) {
		st := session.New(g)
		st.AddItem("item_letter")
		st.AddItem("item_gold")
		st.AddItem("knife")
		assert.True(t, CanAccuse(g, st))
	})

	t.Run("zero crucial items never unlocks", func(t *testing.T) {
		bare := &game.Game{
			ID:           "bare",
			StartSceneID: "s1",
			Scenes:       map[string]*game.Scene{"s1": {ID: "s1"}},
			Items:        map[string]*game.Item{"rock": {ID: "rock"}},
		}
		st := session.New(bare)
		st.AddItem("rock")
		assert.False(t, CanAccuse(bare, st))
	})
}

func TestResolve_OpenAccusation(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	// Gated with feedback until all crucial evidence is held.
	next, effects := r.Resolve(g, st, OpenAccusation{})
	assert.True(t, HasEffect(effects, EffectShowMessage))
	assert.True(t, HasEffect(effects, EffectShowShake))
	assert.False(t, HasEffect(effects, EffectOpenAccusation))
	assert.False(t, next.IsGameFinished)

	st.AddItem("item_letter")
	st.AddItem("item_gold")
	st.AddItem("knife")
	next, effects = r.Resolve(g, st, OpenAccusation{})
	assert.True(t, HasEffect(effects, EffectOpenAccusation))
	assert.False(t, next.IsGameFinished, "opening the accusation does not decide it")
}

func TestResolve_SubmitAccusation(t *testing.T) {
	g := manorGame()
	r := testResolver()

	tests := []struct {
		name   string
		npcID  string
		ending game.EndingType
	}{
		{name: "accusing the killer", npcID: "npc_butler", ending: game.EndingSuccess},
		{name: "accusing an innocent", npcID: "npc_maid", ending: game.EndingFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := session.New(g)
			st.AddItem("item_letter")
			st.AddItem("item_gold")
			st.AddItem("knife")

			next, effects := r.Resolve(g, st, SubmitAccusation{NPCID: tt.npcID})
			assert.True(t, next.IsGameFinished)
			assert.Equal(t, tt.ending, next.EndingType)
			assert.True(t, HasEffect(effects, EffectGameEnded))
		})
	}
}

func TestResolve_SubmitAccusationRequiresFullEvidence(t *testing.T) {
	g := manorGame()
	st := session.New(g) // no evidence at all
	r := testResolver()

	// The gate holds at submission too: a crafted submission that never
	// went through the accusation screen cannot end the game early.
	next, effects := r.Resolve(g, st, SubmitAccusation{NPCID: "npc_butler"})
	assert.False(t, next.IsGameFinished)
	assert.True(t, HasEffect(effects, EffectShowMessage))
	assert.True(t, HasEffect(effects, EffectShowShake))
	assert.False(t, HasEffect(effects, EffectGameEnded))
}
