package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is a CEFR difficulty level. Levels are totally ordered from A1 to C1.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
)

// Levels lists all supported levels in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown difficulty level %q", s)
	}
	return l, nil
}

// Index returns the position of the level in Levels or -1.
func (l Level) Index() int {
	for i, v := range Levels {
		if v == l {
			return i
		}
	}
	return -1
}

func (l Level) Valid() bool { return l.Index() >= 0 }

// Up returns the next harder level, or l itself at the top.
func (l Level) Up() Level {
	i := l.Index()
	if i < 0 || i == len(Levels)-1 {
		return l
	}
	return Levels[i+1]
}

// Down returns the next easier level, or l itself at the bottom.
func (l Level) Down() Level {
	i := l.Index()
	if i <= 0 {
		return l
	}
	return Levels[i-1]
}

func (l Level) String() string { return string(l) }

func (l *Level) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
