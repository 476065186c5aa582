// Package ocr reads the text an OCR engine produced out of the files the
// engine clients write: a raw Result (.json) or a Detection (.blw).
package ocr

// Result is the raw response of one OCR service for one image.
type Result struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	FullText string `json:"text"`
	Duration int64  `json:"milliseconds"`
	Date     string `json:"date"`
	Raw      []byte `json:"raw"`
}
