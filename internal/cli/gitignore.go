package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# graphgrade runs"

// ignoreGeneratedPaths appends the run outputs and the DuckDB store to the
// project .gitignore. It returns the entries it added; paths already listed
// are skipped.
func ignoreGeneratedPaths(root string, paths ...string) ([]string, error) {
	gitignorePath := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	listed := map[string]bool{}
	for _, line := range strings.Split(string(existing), "\n") {
		listed[strings.TrimSpace(line)] = true
	}

	var added []string
	for _, path := range paths {
		entry, err := gitignoreEntry(root, path)
		if err != nil {
			return nil, err
		}
		if listed[entry] {
			continue
		}
		listed[entry] = true
		added = append(added, entry)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteString("\n")
	}
	if !listed[gitignoreHeader] {
		b.WriteString(gitignoreHeader + "\n")
	}
	for _, entry := range added {
		b.WriteString(entry + "\n")
	}
	if err := os.WriteFile(gitignorePath, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write .gitignore: %w", err)
	}
	return added, nil
}

// gitignoreEntry turns a config path into a slash-separated entry relative
// to root. Paths outside root cannot be ignored from it.
func gitignoreEntry(root, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty path for .gitignore")
	}
	rel := filepath.Clean(path)
	if filepath.IsAbs(rel) {
		var err error
		if rel, err = filepath.Rel(root, rel); err != nil {
			return "", fmt.Errorf("relate %q to %q: %w", path, root, err)
		}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside the project root", path)
	}
	return filepath.ToSlash(rel), nil
}
