package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ughe/ocreval/doc"
	"github.com/ughe/ocreval/editdist"
)

func read(name string) []rune {
	buf, err := os.ReadFile(name)
	if err != nil {
		log.Fatal(err)
	}
	text, err := doc.Decode(buf, doc.Options{})
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	return text
}

func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: cer first.txt second.txt")
	}
	a, b := read(os.Args[1]), read(os.Args[2])
	fmt.Printf("%v\n", editdist.CER(editdist.Levenshtein(a, b), len(b)))
}
