// Package target builds the list of probe targets from CLI arguments or
// a line-oriented URL file.
package target

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Target is one method + URL pair to probe. Immutable once built.
type Target struct {
	Method string
	URL    string
}

func (t Target) String() string {
	return fmt.Sprintf("%s %s", t.Method, t.URL)
}

// validMethods are the methods accepted in a URL file.
var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
}

// New validates method and URL and returns a Target.
func New(method, rawurl string) (Target, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if !validMethods[method] {
		return Target{}, fmt.Errorf("invalid method %q", method)
	}

	parsed, err := url.Parse(rawurl)
	if err != nil {
		return Target{}, fmt.Errorf("invalid URL %q: %w", rawurl, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Target{}, fmt.Errorf("invalid URL %q: scheme must be http or https", rawurl)
	}
	if parsed.Host == "" {
		return Target{}, fmt.Errorf("invalid URL %q: missing host", rawurl)
	}

	return Target{Method: method, URL: rawurl}, nil
}

// FromArgs converts positional CLI arguments into GET targets.
func FromArgs(args []string) ([]Target, error) {
	var targets []Target
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		t, err := New(http.MethodGet, arg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// ParseLine parses a single URL-file line. Format is either "<url>" (GET)
// or "<method> <url>". Anything after the URL is an error.
func ParseLine(line string) (Target, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return New(http.MethodGet, fields[0])
	case 2:
		return New(fields[0], fields[1])
	default:
		return Target{}, fmt.Errorf("unexpected token after URL")
	}
}

// ParseFile reads targets from a file, one per line. Blank lines and lines
// starting with "#" or "//" are skipped. Parse errors carry file:line.
func ParseFile(path string) ([]Target, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var targets []Target
	scanner := bufio.NewScanner(file)

	// Long URLs can exceed the default 64KB line limit
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		t, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		targets = append(targets, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	return targets, nil
}
