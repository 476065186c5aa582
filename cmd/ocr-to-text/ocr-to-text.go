package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ughe/ocreval/ocr"
	"github.com/ughe/ocreval/util"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: ocr-to-text result.json|detection.blw...")
	}
	for _, name := range os.Args[1:] {
		raw, err := util.Read(name)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", name, err)
		}
		desc, err := ocr.Describe(name, raw)
		if err != nil {
			log.Fatalf("Failed to extract %s: %v", name, err)
		}
		text, err := ocr.Text(name, raw)
		if err != nil {
			log.Fatalf("Failed to extract %s: %v", name, err)
		}
		dst := strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
		if dst == name {
			log.Fatalf("Refusing to overwrite %s", name)
		}
		if err := util.Write(text, dst); err != nil {
			log.Fatalf("Failed to write %s: %v", dst, err)
		}
		fmt.Printf("[INFO] %s (%s) -> %s\n", name, desc, dst)
	}
}
