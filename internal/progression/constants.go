package progression

// Reward scaling
const (
	// MaxLevelDifference bounds the level difference used for reward scaling.
	MaxLevelDifference = 10

	// RewardStepPerLevel is the reward change per level of difference.
	RewardStepPerLevel = 0.1
)

// AttributeBonusPerPoint is the hpMax/mpMax fraction each strength or
// intelligence point adds.
const AttributeBonusPerPoint = 0.01
