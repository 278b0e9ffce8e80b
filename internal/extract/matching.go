package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrConflictingMatching reports an answer that assigns an applicant or a job
// twice. It is a wrong answer rather than an unreadable one.
var ErrConflictingMatching = errors.New("extract: conflicting matching")

// Assignment pairs an applicant with a job. Ids keep the digits exactly as
// written so they can be compared verbatim against the edge text.
type Assignment struct {
	Applicant string
	Job       string
}

// Matching is the declared size of a matching and its assignments.
type Matching struct {
	Count int
	Pairs []Assignment
}

var (
	assignmentPattern = regexp.MustCompile(`(?i)applicant (\d+): job (\d+)`)
	matchCountPattern = regexp.MustCompile(`(?i)(\d+) applicants can f`)
)

// ExtractMatching reads "applicant X: job Y" assignments and the declared
// number of matched applicants.
func ExtractMatching(answer string) (Matching, error) {
	var matching Matching
	applicants := map[string]struct{}{}
	jobs := map[string]struct{}{}
	for _, match := range assignmentPattern.FindAllStringSubmatch(answer, -1) {
		pair := Assignment{Applicant: match[1], Job: match[2]}
		if _, ok := applicants[pair.Applicant]; ok {
			return matching, fmt.Errorf("%w: applicant %s assigned twice", ErrConflictingMatching, pair.Applicant)
		}
		if _, ok := jobs[pair.Job]; ok {
			return matching, fmt.Errorf("%w: job %s assigned twice", ErrConflictingMatching, pair.Job)
		}
		applicants[pair.Applicant] = struct{}{}
		jobs[pair.Job] = struct{}{}
		matching.Pairs = append(matching.Pairs, pair)
	}

	count, err := ExtractMatchCount(answer)
	if err != nil {
		return matching, err
	}
	matching.Count = count
	return matching, nil
}

// ExtractMatchCount reads the declared number of matched applicants.
func ExtractMatchCount(text string) (int, error) {
	match := matchCountPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, unparseable("matching", "no declared applicant count")
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, unparseable("matching", "applicant count out of range")
	}
	return value, nil
}

// EdgeLiteral renders the assignment the way matching edges are listed in
// the question text.
func (a Assignment) EdgeLiteral() string {
	return fmt.Sprintf("(Appl%s, Job%s)", a.Applicant, a.Job)
}
