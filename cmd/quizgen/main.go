// quizgen builds the dataset artifact quizd serves: it reads a
// semicolon-delimited question file, drops records that fail validation
// and writes the surviving questions as JSON. Only an unreadable source
// is fatal.
package main

import (
	"flag"
	"log"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
)

func main() {
	in := flag.String("in", "questions.csv", "delimited question source")
	out := flag.String("out", "dataset.json", "dataset artifact to write")
	flag.Parse()

	b := dataset.NewBuilder()
	qs, err := b.ReadFile(*in)
	if err != nil {
		log.Fatalf("quizgen: %v", err)
	}
	if len(qs) == 0 {
		log.Fatalf("quizgen: %s yielded no valid questions", *in)
	}
	if err := dataset.Write(*out, qs); err != nil {
		log.Fatalf("quizgen: write %s: %v", *out, err)
	}
	log.Printf("wrote %d questions to %s", len(qs), *out)
}
