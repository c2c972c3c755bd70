package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// prepositionSplit splits short-word lists such as "AT – FOR - IN / OF, ON".
var prepositionSplit = regexp.MustCompile(`\s*[–—\-,/]\s*`)

const (
	minPrepositions = 3
	maxPrepositions = 20
	// answerWindow is how many rows below the prompt are searched for the answer.
	answerWindow = 5
)

func prepositionDetector() Detector {
	return Detector{
		Name: "preposition",
		Applies: func(b *Block) bool {
			return b.Category == models.CategoryGrammar && prepositionTokens(b.Prompt()) != nil
		},
		Extract: extractPreposition,
	}
}

// prepositionTokens returns the words of a prompt that consists only of
// short alphabetic tokens joined by delimiters, or nil.
func prepositionTokens(prompt string) []string {
	var tokens []string
	for _, part := range prepositionSplit.Split(prompt, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isShortWord(part) {
			return nil
		}
		tokens = append(tokens, part)
	}
	if len(tokens) < minPrepositions || len(tokens) > maxPrepositions {
		return nil
	}
	return tokens
}

func extractPreposition(b *Block) Detection {
	tokens := prepositionTokens(b.Prompt())
	options := make([]models.OptionRecord, len(tokens))
	for i, tok := range tokens {
		options[i] = models.OptionRecord{Label: letter(i), Text: tok}
	}

	// Without an answer the whole window is consumed. The window ends early
	// at the next numbered row.
	answer := ""
	consumed := answerWindow + 1
	for off := 1; off <= answerWindow; off++ {
		row := b.Row + off
		if b.numbered(row) {
			consumed = off
			break
		}
		if t := b.text(row); isShortWord(t) {
			answer = t
			consumed = off + 1
			break
		}
	}

	var diags []models.Diagnostic
	if answer == "" {
		diags = append(diags, b.warn(models.KindAmbiguousAnswer, b.Row, b.Layout.TextCol,
			"no explicit answer below preposition list; no option marked correct"))
		return Detection{
			Candidate:   &Candidate{Prompt: b.Prompt(), Options: options},
			Consumed:    consumed,
			Diagnostics: diags,
		}
	}

	resolved, resolveDiags := b.resolve(options, Evidence{Answer: answer})
	return Detection{
		Candidate:   &Candidate{Prompt: b.Prompt(), Options: resolved},
		Consumed:    consumed,
		Diagnostics: append(diags, resolveDiags...),
	}
}
