package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// WeightedPath is a path together with the total weight the answer claims.
type WeightedPath struct {
	Nodes  []int
	Weight int
	// HasWeight is false when the weight phrase was absent and Weight
	// defaulted to zero.
	HasWeight bool
	Rule      string
}

// WeightedRule reads a path from the summary sentence. Requires lists
// substrings that must all be present before Match is tried.
type WeightedRule struct {
	Name     string
	Requires []string
	Match    func(sentence string) ([]int, bool)
}

// WeightedCascade extracts a path and a weight independently from the
// sentence picked by Sentence.
type WeightedCascade struct {
	Name     string
	Prepare  func(text string) string
	Sentence func(text string) string
	Rules    []WeightedRule
	Weight   *regexp.Regexp
}

// Extract runs the cascade. The weight is always returned; the error reports
// that no rule produced a path.
func (c WeightedCascade) Extract(answer string) (WeightedPath, error) {
	text := answer
	if c.Prepare != nil {
		text = c.Prepare(text)
	}
	sentence := text
	if c.Sentence != nil {
		sentence = c.Sentence(text)
	}

	var result WeightedPath
	if c.Weight != nil {
		if match := c.Weight.FindStringSubmatch(sentence); match != nil {
			if weight, err := strconv.Atoi(match[1]); err == nil {
				result.Weight = weight
				result.HasWeight = true
			}
		}
	}

	for _, rule := range c.Rules {
		if !containsAll(sentence, rule.Requires) {
			continue
		}
		nodes, ok := rule.Match(sentence)
		if !ok {
			continue
		}
		result.Nodes = nodes
		result.Rule = rule.Name
		return result, nil
	}
	return result, unparseable(c.Name, "no path phrasing matched")
}

// SummarySentence returns the second-to-last sentence, where the generator
// states its conclusion, or the whole text when it has a single sentence.
func SummarySentence(text string) string {
	sentences := sentenceSplit.Split(text, -1)
	if len(sentences) > 1 {
		return strings.TrimSpace(sentences[len(sentences)-2])
	}
	return strings.TrimSpace(text)
}

var (
	sentenceSplit = regexp.MustCompile(`[.\n]`)
	digitTokens   = regexp.MustCompile(`\b\d+\b`)
	allDigits     = regexp.MustCompile(`\d+`)
	pathArrows    = strings.NewReplacer("->", ",", "→", ",", "-", ",")
	nodeLabels    = strings.NewReplacer("node", "", "Node", "")
)

func containsAll(text string, parts []string) bool {
	lower := strings.ToLower(text)
	for _, part := range parts {
		if !strings.Contains(lower, part) {
			return false
		}
	}
	return true
}

// commaNodes parses comma separated ids, skipping entries that are not
// purely numeric.
func commaNodes(list string) []int {
	var nodes []int
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" || !isDigits(item) {
			continue
		}
		if value, err := strconv.Atoi(item); err == nil {
			nodes = append(nodes, value)
		}
	}
	return nodes
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func atoiAll(values []string) []int {
	out := make([]int, 0, len(values))
	for _, value := range values {
		if n, err := strconv.Atoi(value); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// endpointsRule builds a rule reading "from node A to node B" and the
// waypoints captured by waypoint.
func endpointsRule(name string, requires []string, endpoints, waypoint *regexp.Regexp) WeightedRule {
	return WeightedRule{
		Name:     name,
		Requires: requires,
		Match: func(sentence string) ([]int, bool) {
			ends := endpoints.FindStringSubmatch(sentence)
			if ends == nil {
				return nil, false
			}
			start, _ := strconv.Atoi(ends[1])
			end, _ := strconv.Atoi(ends[2])
			nodes := []int{start}
			if waypoint != nil {
				through := waypoint.FindStringSubmatch(sentence)
				if through == nil {
					return nil, false
				}
				nodes = append(nodes, commaNodes(nodeLabels.Replace(through[len(through)-1]))...)
			}
			return append(nodes, end), true
		},
	}
}
