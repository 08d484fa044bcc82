package track

// Difficulty scoring is a closed tag-value mapping: base 20, plus
// surface and tracktype increments, clamped to 100. Unrecognized
// values fall back to the listed defaults so the score stays bounded
// for arbitrary upstream tags.

const (
	baseScore = 20
	maxScore  = 100

	surfaceDefault    = 20
	tracktypeDefault  = 15
	smoothnessDefault = 0
)

var surfaceScores = map[string]int{
	"paved":       0,
	"asphalt":     0,
	"concrete":    0,
	"fine_gravel": 10,
	"compacted":   12,
	"gravel":      15,
	"ground":      25,
	"dirt":        30,
	"sand":        35,
	"rock":        40,
}

var tracktypeScores = map[string]int{
	"grade1": 0,
	"grade2": 10,
	"grade3": 20,
	"grade4": 25,
	"grade5": 30,
}

var smoothnessScores = map[string]int{
	"excellent":    0,
	"good":         5,
	"intermediate": 10,
	"bad":          15,
	"very_bad":     20,
	"horrible":     25,
	"impassable":   30,
}

// Score estimates off-road driving difficulty from surface and
// tracktype tags. Deterministic: identical tags always yield the
// same score in [0,100].
func Score(tags map[string]string) int {
	score := baseScore
	score += lookup(surfaceScores, tags["surface"], surfaceDefault)
	score += lookup(tracktypeScores, tags["tracktype"], tracktypeDefault)
	return clamp(score)
}

// ScoreWithSmoothness additionally weighs the smoothness tag. An
// absent or unrecognized smoothness adds nothing.
func ScoreWithSmoothness(tags map[string]string) int {
	score := baseScore
	score += lookup(surfaceScores, tags["surface"], surfaceDefault)
	score += lookup(tracktypeScores, tags["tracktype"], tracktypeDefault)
	score += lookup(smoothnessScores, tags["smoothness"], smoothnessDefault)
	return clamp(score)
}

func lookup(scores map[string]int, value string, fallback int) int {
	if inc, ok := scores[value]; ok {
		return inc
	}
	return fallback
}

func clamp(score int) int {
	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
