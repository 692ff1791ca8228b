package engine

import "github.com/casefile-games/mystery-engine/pkg/game"

// Generic fallback messages used when content authors did not provide
// a custom one. Authored messages always take precedence.
var (
	msgMissingItem = game.Localized{
		EN: "Something seems to be missing.",
		KO: "무언가 필요한 것 같습니다.",
	}
	msgLockedPath = game.Localized{
		EN: "The way is locked.",
		KO: "잠겨 있습니다.",
	}
	msgWrongCombination = game.Localized{
		EN: "These don't go together.",
		KO: "조합할 수 없는 물건입니다.",
	}
	msgIncorrectAnswer = game.Localized{
		EN: "Incorrect password.",
		KO: "비밀번호가 일치하지 않습니다.",
	}
	msgNeedAllEvidence = game.Localized{
		EN: "Collect all crucial evidence before accusing.",
		KO: "결정적인 증거를 모두 모아야 범인을 지목할 수 있습니다.",
	}
)
