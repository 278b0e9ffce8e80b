// Package dataset loads model result files and the standard benchmark set.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ID accepts record ids written as JSON strings or numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(text))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(number.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// ResultRecord is one model output. Segments the model was not asked are
// null.
type ResultRecord struct {
	ID         ID      `json:"id"`
	ImageURL   string  `json:"image_url"`
	Difficulty string  `json:"difficulty"`
	Segment1   *string `json:"segment1"`
	Segment2   *string `json:"segment2"`
	Segment3   *string `json:"segment3"`
}

// Turn is one message of a standard record conversation.
type Turn struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// StandardRecord is one benchmark instance with its reference conversation.
// Turns 1, 3 and 5 hold the reference answers of the three segments.
type StandardRecord struct {
	ID            ID     `json:"id"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	Conversations []Turn `json:"conversations"`
}

// Turn returns the value of conversation turn i, or "" when absent.
func (r StandardRecord) Turn(i int) string {
	if i < 0 || i >= len(r.Conversations) {
		return ""
	}
	return r.Conversations[i].Value
}

// LoadResults reads a JSON array of result records.
func LoadResults(path string) ([]ResultRecord, error) {
	var records []ResultRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return records, nil
}

// LoadStandard reads a JSON array of standard records.
func LoadStandard(path string) ([]StandardRecord, error) {
	var records []StandardRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("load standard: %w", err)
	}
	return records, nil
}

func loadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
