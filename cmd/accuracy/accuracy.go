// Command accuracy is the classic two-file form of ocreval accuracy.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/doc"
	"github.com/ughe/ocreval/ocr"
	"github.com/ughe/ocreval/util"
)

func main() {
	normalize := flag.String("normalize", "none", "Unicode normalization: nfc, nfd or none")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: accuracy [-normalize form] correctfile generatedfile [reportfile]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 || flag.NArg() > 3 {
		flag.Usage()
		os.Exit(1)
	}
	form, err := doc.ParseForm(*normalize)
	if err != nil {
		log.Fatal(err)
	}
	opts := doc.Options{Form: form, EnsureNewline: true}

	buf, err := util.Read(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	correct, err := doc.Decode(buf, opts)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
	if buf, err = util.Read(flag.Arg(1)); err != nil {
		log.Fatal(err)
	}
	if buf, err = ocr.Text(flag.Arg(1), buf); err != nil {
		log.Fatal(err)
	}
	generated, err := doc.Decode(buf, opts)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(1), err)
	}

	report := accrpt.Format(accrpt.Score(correct, generated))
	if err := util.Write([]byte(report), flag.Arg(2)); err != nil {
		log.Fatal(err)
	}
}
