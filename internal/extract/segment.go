package extract

import (
	"regexp"
	"sort"
	"strings"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// ExtractCounts returns the integers stated in a graph-facts answer. When the
// answer has no digits the spelled numbers one..nine are read instead.
func ExtractCounts(answer string) ([]int, error) {
	if digits := allDigits.FindAllString(answer, -1); len(digits) > 0 {
		return atoiAll(digits), nil
	}
	var counts []int
	for _, word := range strings.Fields(strings.ToLower(answer)) {
		word = strings.Trim(word, ".,;:!?()")
		if value, ok := numberWords[word]; ok {
			counts = append(counts, value)
		}
	}
	if len(counts) == 0 {
		return nil, unparseable("counts", "no numbers")
	}
	return counts, nil
}

var tupleGroups = regexp.MustCompile(`\((.*?)\)|<(.*?)>`)

// ExtractTuples returns the distinct bracketed groups of an edge listing,
// whitespace removed, sorted for stable comparison.
func ExtractTuples(answer string) []string {
	seen := map[string]struct{}{}
	var tuples []string
	for _, match := range tupleGroups.FindAllStringSubmatch(answer, -1) {
		body := match[1]
		if body == "" {
			body = match[2]
		}
		body = StripSpace(body)
		if body == "" {
			continue
		}
		if _, ok := seen[body]; ok {
			continue
		}
		seen[body] = struct{}{}
		tuples = append(tuples, body)
	}
	sort.Strings(tuples)
	return tuples
}

// ExtractNodeReports splits a GNN answer into per-node reports. The piece
// before the first "node" is the preamble and is returned at index 0.
func ExtractNodeReports(answer string) []string {
	return strings.Split(StripSpace(answer), "node")
}
