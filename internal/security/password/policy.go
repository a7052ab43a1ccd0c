package password

import (
	"unicode"
	"unicode/utf8"
)

const (
	MinLen   = 8
	MaxScore = 4

	// Specials is the only set counted as special characters, and the one the generator draws from.
	Specials = "!@#$%^&*"
)

const (
	MsgLength  = "Password should be at least 8 characters long."
	MsgCase    = "Include both uppercase and lowercase letters."
	MsgDigit   = "Add at least one number (0-9)."
	MsgSpecial = "Include at least one special character (!@#$%^&*)."
)

// Result is the outcome of Check. len(Feedback) is always MaxScore-Score.
type Result struct {
	Score    int      `json:"score" yaml:"score"`       // 0..4
	Feedback []string `json:"feedback" yaml:"feedback"` // one entry per failed criterion
}

// criterion order is also feedback order.
type criterion struct {
	ok  func(c classes) bool
	msg string
}

var criteria = [MaxScore]criterion{
	{func(c classes) bool { return c.runes >= MinLen }, MsgLength},
	{func(c classes) bool { return c.upper && c.lower }, MsgCase},
	{func(c classes) bool { return c.digit }, MsgDigit},
	{func(c classes) bool { return c.special }, MsgSpecial},
}

type classes struct {
	runes                        int
	upper, lower, digit, special bool
}

// classify walks the password once. Upper/lower are ASCII only; digits are any Unicode Nd.
func classify(pwd string) classes {
	c := classes{runes: utf8.RuneCountInString(pwd)}
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case isSpecial(r):
			c.special = true
		}
	}
	return c
}

func isSpecial(r rune) bool {
	for _, s := range Specials {
		if r == s {
			return true
		}
	}
	return false
}

// Check scores pwd against the four criteria. Every criterion is evaluated;
// any input, including "", is valid.
func Check(pwd string) Result {
	c := classify(pwd)
	res := Result{Feedback: make([]string, 0, MaxScore)}
	for _, cr := range criteria {
		if cr.ok(c) {
			res.Score++
			continue
		}
		res.Feedback = append(res.Feedback, cr.msg)
	}
	return res
}
