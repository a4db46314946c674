package routing

//*******************************************
// search config
//*******************************************

type SearchConfig struct {
	// km per second
	WalkingSpeed float64 `yaml:"walking-speed" validate:"gt=0"`
	// km per second, only used for the straight line heuristic
	DrivingSpeed float64 `yaml:"driving-speed" validate:"gt=0"`
	// seconds waited for every boarding
	BoardingWait float64 `yaml:"boarding-wait" validate:"gte=0"`
	// seconds of accumulated walking after which a node is not expanded
	MaxWalkTime float64 `yaml:"max-walk-time" validate:"gt=0"`
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		WalkingSpeed: 0.0014,
		DrivingSpeed: 0.0178,
		BoardingWait: 7.5 * 60,
		MaxWalkTime:  15 * 60,
	}
}
