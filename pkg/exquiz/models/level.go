package models

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency code.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
)

// Levels lists every supported level in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

// ParseLevel converts s (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// Category is the content category of a sheet and its questions.
type Category string

const (
	CategoryGrammar    Category = "Grammar"
	CategoryVocabulary Category = "Vocabulary"
	CategoryReading    Category = "Reading"
)
