package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ughe/ocreval/doc"
	"github.com/ughe/ocreval/editdist"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: editdist first.txt second.txt")
	}
	var texts [2][]rune
	for i, name := range os.Args[1:] {
		buf, err := os.ReadFile(name)
		if err != nil {
			log.Fatal(err)
		}
		if texts[i], err = doc.Decode(buf, doc.Options{}); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
	}
	fmt.Printf("%v\n", editdist.Levenshtein(texts[0], texts[1]))
}
