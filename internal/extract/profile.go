package extract

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"graphgrade/internal/graph"
)

// ErrUnknownProfile reports a phrasing profile name with no registered set.
var ErrUnknownProfile = errors.New("extract: unknown profile")

// Profile bundles the phrasing cascades of one answer generator. Cascades
// are appended to, never reordered, when a generator learns a new phrasing.
type Profile struct {
	Name         string
	Path         Cascade
	Cycle        Cascade
	Hamilton     Cascade
	ShortestPath WeightedCascade
	Verdicts     map[graph.Category]Markers
	// Reference reads the verdict of the reference answer.
	Reference Markers
}

const (
	ProfileChatGPT = "chatgpt"
	ProfileLLaVA   = "llava"
)

var profiles = map[string]func() Profile{
	ProfileChatGPT: chatGPTProfile,
	ProfileLLaVA:   llavaProfile,
}

// ProfileByName returns a fresh copy of a registered profile.
func ProfileByName(name string) (Profile, error) {
	build, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return build(), nil
}

// ProfileNames lists the registered profile names.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var referenceMarkers = Markers{Affirmative: []string{"yes"}, DefaultNegative: true}

func pathCascade() Cascade {
	return Cascade{
		Name: "path",
		Patterns: []Pattern{
			Regexp("path-is", `(?i)The path is? ([\d\s\-,>→node]+)`),
			Regexp("path-is-simply", `(?i)The path is simply? ([\d\s\-,>→node]+)`),
			Regexp("path-as-follows", `The path is as follows\s+\(([\d\s,]+)\)`),
			Regexp("path-parenthesized", `The path is\s+\(([\d\s,]+)\)`),
		},
	}
}

func cycleCascade() Cascade {
	return Cascade{
		Name:    "cycle",
		Prepare: dropNewlines,
		Patterns: []Pattern{
			Regexp("cycle-is", `(?i)the cycle is(?: node)?([^.\n]*)[.\n]`),
			LeadIn("cycle-fewest-nodes", `(?i)the cycle with the fewest number of nodes`,
				StopAtSentence("yes"), StopAt("which")),
			Regexp("cycle-list", `The cycle is (\d+(?:, \d+)*).`),
		},
	}
}

func chatGPTProfile() Profile {
	return Profile{
		Name:  ProfileChatGPT,
		Path:  pathCascade(),
		Cycle: cycleCascade(),
		Hamilton: Cascade{
			Name: "hamilton",
			Patterns: []Pattern{
				LeadIn("hamilton-path-is", `(?i)the path is(?: node)?`,
					StopAtSentence("yes"), StopAt("which")),
				Regexp("hamilton-list", `The path is (\d+(?:, \d+)*).`),
			},
		},
		ShortestPath: chatGPTWeighted(),
		Verdicts: map[graph.Category]Markers{
			graph.Connectivity: {
				Affirmative: []string{"yes", "there is a path"},
				Negative:    []string{"no,", "there is no path"},
			},
			graph.Cycle: {
				Affirmative: []string{"yes", "there is a cycle"},
				Negative:    []string{"no,", "there is no cycle"},
			},
			graph.HamiltonPath: {
				Affirmative: []string{"yes"},
				Negative:    []string{"no,", "no path"},
			},
		},
		Reference: referenceMarkers,
	}
}

var (
	fromTo          = regexp.MustCompile(`(?i)from node (\d+)\s+to node (\d+)`)
	orWith          = regexp.MustCompile(`(?i)or\s+(.*?)\s+with`)
	eitherOr        = regexp.MustCompile(`(?i)either\s+(.*?)\s+or`)
	fromToThrough   = regexp.MustCompile(`(?i)from node (\d+)\s+to node (\d+).*?through\s+(.*?)\s*(?:with|\.|$)`)
	isList          = regexp.MustCompile(`(?i)is\s+(.*?)(?:\s+with|\.|$)`)
	chatGPTWeightRe = regexp.MustCompile(`(?i)total weight(?: is)?[^\d]*(\d+)`)
	llavaPathRe     = regexp.MustCompile(`is(.*?)with`)
	llavaWeightRe   = regexp.MustCompile(`of(\d+)`)
)

func chatGPTWeighted() WeightedCascade {
	return WeightedCascade{
		Name:     "shortest-path",
		Sentence: SummarySentence,
		Weight:   chatGPTWeightRe,
		Rules: []WeightedRule{
			endpointsRule("either-or-through", []string{"either", "or", "through"}, fromTo, orWith),
			{
				Name:     "either-or",
				Requires: []string{"either"},
				Match: func(sentence string) ([]int, bool) {
					match := eitherOr.FindStringSubmatch(sentence)
					if match == nil {
						return nil, false
					}
					nodes := commaNodes(nodeLabels.Replace(pathArrows.Replace(match[1])))
					return nodes, len(nodes) > 0
				},
			},
			{
				Name: "through",
				Match: func(sentence string) ([]int, bool) {
					match := fromToThrough.FindStringSubmatch(sentence)
					if match == nil {
						return nil, false
					}
					nodes := atoiAll(match[1:2])
					nodes = append(nodes, commaNodes(nodeLabels.Replace(match[3]))...)
					return append(nodes, atoiAll(match[2:3])...), true
				},
			},
			endpointsRule("directly", []string{"directly"}, fromTo, nil),
			{
				Name: "is-list",
				Match: func(sentence string) ([]int, bool) {
					match := isList.FindStringSubmatch(sentence)
					if match == nil {
						return nil, false
					}
					nodes := atoiAll(digitTokens.FindAllString(match[1], -1))
					return nodes, len(nodes) > 0
				},
			},
		},
	}
}

func llavaProfile() Profile {
	yesOnly := Markers{Affirmative: []string{"yes"}, DefaultNegative: true}
	return Profile{
		Name:  ProfileLLaVA,
		Path:  pathCascade(),
		Cycle: cycleCascade(),
		Hamilton: Cascade{
			Name:    "hamilton",
			Prepare: StripSpace,
			Patterns: []Pattern{
				Regexp("hamilton-can-be", `canbe:(.*)`),
				Regexp("hamilton-path-is", `pathis(.*)`),
			},
		},
		ShortestPath: WeightedCascade{
			Name:    "shortest-path",
			Prepare: StripSpace,
			Weight:  llavaWeightRe,
			Rules: []WeightedRule{
				{
					Name: "is-with",
					Match: func(sentence string) ([]int, bool) {
						match := llavaPathRe.FindStringSubmatch(sentence)
						if match == nil {
							return nil, false
						}
						nodes := atoiAll(allDigits.FindAllString(match[1], -1))
						return nodes, len(nodes) > 0
					},
				},
			},
		},
		Verdicts: map[graph.Category]Markers{
			graph.Connectivity: yesOnly,
			graph.Cycle:        yesOnly,
			graph.HamiltonPath: {
				Affirmative: []string{"yes", "can be:"},
				Negative:    []string{"no,", "no.", "no path", "no hamilton"},
			},
		},
		Reference: referenceMarkers,
	}
}
