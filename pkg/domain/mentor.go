package domain

import (
	"fmt"
	"strings"
)

// Mentor は講評に声色を与える写真家ペルソナです。空文字はペルソナなし。
type Mentor string

const (
	MentorNone      Mentor = ""
	MentorAnsel     Mentor = "ansel"
	MentorCartier   Mentor = "cartier"
	MentorLeibovitz Mentor = "leibovitz"
	MentorSalgado   Mentor = "salgado"
)

var AllMentors = []Mentor{MentorAnsel, MentorCartier, MentorLeibovitz, MentorSalgado}

// ParseMentor は文字列を Mentor に変換します。"" と "none" はペルソナなし。
func ParseMentor(s string) (Mentor, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "none" {
		return MentorNone, nil
	}
	for _, m := range AllMentors {
		if Mentor(v) == m {
			return m, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown mentor %q", s), nil)
}
