package domain

// LevelStats are the base stats of one level. ExpMax is the experience needed
// to leave the level.
type LevelStats struct {
	HpMax      int     `json:"hp_max"`
	MpMax      int     `json:"mp_max"`
	Damage     int     `json:"damage"`
	Defense    int     `json:"defense"`
	Block      float64 `json:"block"`
	Crit       float64 `json:"crit"`
	ExpMax     int64   `json:"exp_max"`
	HpRecovery int     `json:"hp_recovery"`
	MpRecovery int     `json:"mp_recovery"`
}

// Stats are derived from level, attributes, equipment and active buffs.
type Stats struct {
	HpMax   int     `json:"hp_max"`
	MpMax   int     `json:"mp_max"`
	Damage  int     `json:"damage"`
	Defense int     `json:"defense"`
	Block   float64 `json:"block"`
	Crit    float64 `json:"crit"`
}

// Attributes are the player-distributed stat points.
type Attributes struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
}
