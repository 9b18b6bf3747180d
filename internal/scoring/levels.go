package scoring

// LevelDef is one proficiency tier. Thresholds are ascending minimum point
// totals; a skill sits in the highest tier whose threshold it has reached.
type LevelDef struct {
	Name      string
	Threshold int
}

// Levels are the five proficiency tiers, lowest first.
var Levels = []LevelDef{
	{"Novice", 0},
	{"Apprentice", 50},
	{"Skilled", 150},
	{"Advanced", 400},
	{"Master", 1000},
}

// LevelFor returns the 1-based level, its name, the points still needed for
// the next tier (0 at the top tier), and the progress through the current
// tier's point range clamped to [0,100].
func LevelFor(points int) (level int, name string, toNext int, progress float64) {
	level = 1
	for i, l := range Levels {
		if points >= l.Threshold {
			level = i + 1
		}
	}
	name = Levels[level-1].Name

	if level == len(Levels) {
		return level, name, 0, 100
	}

	cur := Levels[level-1].Threshold
	next := Levels[level].Threshold
	toNext = next - points
	progress = float64(points-cur) / float64(next-cur) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return level, name, toNext, progress
}
