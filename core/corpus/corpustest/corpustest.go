// Package corpustest provides small fixed corpora for tests.
//
// The sample corpus holds Matthew 1:1-2, Matthew 2:1 and Mark 1:1 with the
// following node layout:
//
//	slots 1-14          words
//	15 Matthew, 16 Mark books
//	17 Mt 1, 18 Mt 2, 19 Mk 1 chapters
//	20 Mt 1:1, 21 Mt 1:2, 22 Mt 2:1, 23 Mk 1:1 verses
//	24-34               lexemes in order of first occurrence
package corpustest

import (
	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// Node numbers of the sample corpus.
const (
	Matthew    corpus.Node = 15
	Mark       corpus.Node = 16
	Matthew1   corpus.Node = 17
	Matthew2   corpus.Node = 18
	Mark1      corpus.Node = 19
	Matthew1v1 corpus.Node = 20
	Matthew1v2 corpus.Node = 21
	Matthew2v1 corpus.Node = 22
	Mark1v1    corpus.Node = 23
	LexBiblos  corpus.Node = 24
	LexIesous  corpus.Node = 26
	LexHo      corpus.Node = 30
)

// Records returns the word records of the sample corpus.
func Records() []corpus.WordRecord {
	w := func(code string, ch, v int, text, after, lemma, morph, strongs, gloss string) corpus.WordRecord {
		return corpus.WordRecord{
			BookCode: code, Chapter: ch, Verse: v,
			Text: text, After: after, Lemma: lemma, Morph: morph, Strongs: strongs, Gloss: gloss,
		}
	}
	return []corpus.WordRecord{
		w("MT", 1, 1, "Βίβλος", " ", "βίβλος", "N-NSF", "976", "book"),
		w("MT", 1, 1, "γενέσεως", " ", "γένεσις", "N-GSF", "1078", "origin"),
		w("MT", 1, 1, "Ἰησοῦ", " ", "Ἰησοῦς", "N-GSM", "2424", "Jesus"),
		w("MT", 1, 1, "Χριστοῦ", " ", "Χριστός", "N-GSM", "5547", "Christ"),
		w("MT", 1, 2, "Ἀβραὰμ", " ", "Ἀβραάμ", "N-PRI", "11", "Abraham"),
		w("MT", 1, 2, "ἐγέννησεν", " ", "γεννάω", "V-AAI-3S", "1080", "begat"),
		w("MT", 1, 2, "τὸν", " ", "ὁ", "T-ASM", "3588", "the"),
		w("MT", 1, 2, "Ἰσαάκ", ", ", "Ἰσαάκ", "N-PRI", "2464", "Isaac"),
		w("MT", 2, 1, "Τοῦ", " ", "ὁ", "T-GSM", "3588", "the"),
		w("MT", 2, 1, "δὲ", " ", "δέ", "CONJ", "1161", "and"),
		w("MT", 2, 1, "Ἰησοῦ", " ", "Ἰησοῦς", "N-GSM", "2424", "Jesus"),
		w("MR", 1, 1, "Ἀρχὴ", " ", "ἀρχή", "N-NSF", "746", "beginning"),
		w("MR", 1, 1, "τοῦ", " ", "ὁ", "T-GSN", "3588", "the"),
		w("MR", 1, 1, "εὐαγγελίου", " ", "εὐαγγέλιον", "N-GSN", "2098", "gospel"),
	}
}

// New builds the sample corpus. It panics if the fixture is inconsistent.
func New() *corpus.Corpus {
	return build(Records())
}

// Letters builds a corpus whose only verse, Matthew 1:1, consists of the
// four one-letter words Β, ι, β, λ with no separators between them.
func Letters() *corpus.Corpus {
	var records []corpus.WordRecord
	for _, letter := range []string{"Β", "ι", "β", "λ"} {
		records = append(records, corpus.WordRecord{BookCode: "MT", Chapter: 1, Verse: 1, Text: letter})
	}
	return build(records)
}

func build(records []corpus.WordRecord) *corpus.Corpus {
	b := corpus.NewBuilder("Tischendorf's 8th New Testament", "2.8")
	for _, r := range records {
		b.Add(r)
	}
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
