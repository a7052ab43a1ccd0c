package password

// Level is how a score is shown to the user.
type Level struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"` // CSS hex
}

// levels is indexed by score. Score 0 has its own entry instead of borrowing Weak.
var levels = [MaxScore + 1]Level{
	{Label: "Very Weak", Color: "#6c757d"},
	{Label: "Weak", Color: "#dc3545"},
	{Label: "Moderate", Color: "#fd7e14"},
	{Label: "Good", Color: "#ffc107"},
	{Label: "Strong", Color: "#28a745"},
}

// Levels returns the level table indexed by score.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// LevelFor maps a score to its Level, clamping to [0, MaxScore].
func LevelFor(score int) Level {
	switch {
	case score < 0:
		score = 0
	case score > MaxScore:
		score = MaxScore
	}
	return levels[score]
}

type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictWarning Verdict = "warning"
	VerdictError   Verdict = "error"
)

const (
	MsgBlacklisted = "This is a commonly used password. Choose something more unique."
	MsgStrong      = "Strong Password!"
	MsgModerate    = "Moderate Password - Consider improving it."
	MsgWeak        = "Weak Password - Improve it using the suggestions below:"
)

// Assessment is everything the page (or CLI) needs to render feedback for one password.
// Blacklisted passwords are not scored: Result and Level are left zero.
type Assessment struct {
	Blacklisted bool    `json:"blacklisted" yaml:"blacklisted"`
	Result      Result  `json:"result" yaml:"result"`
	Level       Level   `json:"level" yaml:"level"`
	Percent     int     `json:"percent" yaml:"percent"` // bar width, score/4*100
	Verdict     Verdict `json:"verdict" yaml:"verdict"`
	Message     string  `json:"message" yaml:"message"`
}

func Assess(pwd string) Assessment {
	if IsBlacklisted(pwd) {
		return Assessment{
			Blacklisted: true,
			Verdict:     VerdictError,
			Message:     MsgBlacklisted,
		}
	}

	res := Check(pwd)
	a := Assessment{
		Result:  res,
		Level:   LevelFor(res.Score),
		Percent: res.Score * 100 / MaxScore,
	}
	switch res.Score {
	case MaxScore:
		a.Verdict, a.Message = VerdictSuccess, MsgStrong
	case MaxScore - 1:
		a.Verdict, a.Message = VerdictWarning, MsgModerate
	default:
		a.Verdict, a.Message = VerdictError, MsgWeak
	}
	return a
}
