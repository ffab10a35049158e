package player

// XPPerLevel scales the per-level threshold: advancing out of level N
// costs N*XPPerLevel experience.
const XPPerLevel = 100

// Progression is the read-only experience/level view.
type Progression struct {
	Experience  int `json:"experience"`
	Level       int `json:"level"`
	SkillPoints int `json:"skillPoints"`
}

// ExpToNextLevel returns the remaining XP needed to reach the next level.
func ExpToNextLevel(level, experience int) int {
	remaining := level*XPPerLevel - experience
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AddExperience accumulates xp and converts it into level-ups. Each
// level-up grants one skill point and carries leftover experience into
// the next level rather than resetting it, so a large award can clear
// several thresholds at once.
func (s *State) AddExperience(xp int) {
	if xp <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.experience += xp
	for s.experience >= s.level*XPPerLevel {
		s.experience -= s.level * XPPerLevel
		s.level++
		s.skillPoints++
	}
}

// SpendSkillPoint consumes one skill point, reporting whether any was
// available.
func (s *State) SpendSkillPoint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.skillPoints == 0 {
		return false
	}
	s.skillPoints--
	return true
}

// Progression returns the current experience/level view.
func (s *State) Progression() Progression {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Progression{
		Experience:  s.experience,
		Level:       s.level,
		SkillPoints: s.skillPoints,
	}
}
