package listing

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Load reads a JSON array of scraped listings from path.
func Load(path string) ([]Listing, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listings file: %w", err)
	}
	defer file.Close()

	listings, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return listings, nil
}

// Decode parses a JSON array of listings from r.
func Decode(r io.Reader) ([]Listing, error) {
	var listings []Listing
	if err := json.NewDecoder(r).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}
