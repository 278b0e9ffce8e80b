package extract

import "regexp"

var flowPattern = regexp.MustCompile(`Themaximumflowfromnode\d+tonode\d+is(\d+)`)

// ExtractFlow returns the maximum-flow value as written, after removing all
// whitespace from the answer.
func ExtractFlow(answer string) (string, error) {
	match := flowPattern.FindStringSubmatch(StripSpace(answer))
	if match == nil {
		return "", unparseable("flow", "no maximum flow statement")
	}
	return match[1], nil
}
