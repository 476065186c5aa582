// Command accsum adds accuracy reports and prints the total.
package main

import (
	"log"
	"os"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/util"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: accsum accuracy_report...")
	}
	reports := make([]*accrpt.Report, 0, len(os.Args)-1)
	for _, name := range os.Args[1:] {
		buf, err := util.Read(name)
		if err != nil {
			log.Fatal(err)
		}
		r, err := accrpt.Parse(string(buf))
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		reports = append(reports, r)
	}
	if err := accrpt.Write(os.Stdout, accrpt.Sum(reports...)); err != nil {
		log.Fatal(err)
	}
}
