package tester

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/diag"
	"github.com/nihei9/jqlex/lexer"
	"gopkg.in/yaml.v3"
)

var (
	errAmbiguousExpectation = errors.New("a test case cannot expect both a diagnostic and a token count")
	errNegativeTokens       = errors.New("a token count must not be negative")
	errAccepted             = errors.New("the query was accepted")
	errRejected             = errors.New("the query was rejected")
	errDiagnosticMismatch   = errors.New("diagnostic mismatch")
	errTokenCountMismatch   = errors.New("token count mismatch")
)

// TestCase is one query and what the lexer is expected to do with it. A case with Expect expects the query to be
// rejected with exactly that diagnostic. Otherwise the query is expected to be accepted, and when Tokens is set,
// to yield that many tokens not counting EOF.
type TestCase struct {
	Name   string           `yaml:"name"`
	Query  string           `yaml:"query"`
	Expect *diag.Diagnostic `yaml:"expect,omitempty"`
	Tokens *int             `yaml:"tokens,omitempty"`
}

func (c *TestCase) validate() error {
	if c.Expect != nil && c.Tokens != nil {
		return errAmbiguousExpectation
	}
	if c.Tokens != nil && *c.Tokens < 0 {
		return errNegativeTokens
	}
	return nil
}

// ParseTestCases reads test cases from a YAML stream. Each YAML document holds one case.
func ParseTestCases(r io.Reader) ([]*TestCase, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cases []*TestCase
	for {
		var c TestCase
		err := dec.Decode(&c)
		if err == io.EOF {
			return cases, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "test case #%v", len(cases)+1)
		}
		if err := c.validate(); err != nil {
			return nil, errors.Wrapf(err, "test case #%v", len(cases)+1)
		}
		cases = append(cases, &c)
	}
}

type TestResult struct {
	TestCasePath string
	Error        error
	Expected     *diag.Diagnostic
	Actual       *diag.Diagnostic
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if r.Expected == nil && r.Actual == nil {
			return msg
		}
		var diffLines []string
		if r.Expected != nil {
			diffLines = append(diffLines, fmt.Sprintf("expected: %v", formatDiagnostic(r.Expected)))
		}
		if r.Actual != nil {
			diffLines = append(diffLines, fmt.Sprintf("actual:   %v", formatDiagnostic(r.Actual)))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

func formatDiagnostic(d *diag.Diagnostic) string {
	if d.HasText() {
		return fmt.Sprintf("%v at %v:%v %q", d.Kind, d.Line, d.Column, d.Text)
	}
	return fmt.Sprintf("%v at %v:%v", d.Kind, d.Line, d.Column)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// Path identifies a test case by its file and its name.
func (c *TestCaseWithMetadata) Path() string {
	if c.TestCase == nil || c.TestCase.Name == "" {
		return c.FilePath
	}
	return fmt.Sprintf("%v#%v", c.FilePath, c.TestCase.Name)
}

// ListTestCases reads the test cases of a file, or of every file under a directory. A file that cannot be
// read yields one entry carrying the error.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		cs, err := parseTestCaseFile(testPath)
		if err != nil {
			return []*TestCaseWithMetadata{
				{
					FilePath: testPath,
					Error:    err,
				},
			}
		}
		cases := make([]*TestCaseWithMetadata, len(cs))
		for i, c := range cs {
			cases[i] = &TestCaseWithMetadata{
				TestCase: c,
				FilePath: testPath,
			}
		}
		return cases
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCaseFile(testCasePath string) ([]*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCases(f)
}

type Tester struct {
	Cases []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(c))
	}
	return rs
}

func runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.Path(),
			Error:        c.Error,
		}
	}

	tc := c.TestCase
	toks, err := lexer.Tokenize(tc.Query)
	if err != nil {
		var dErr *diag.Error
		if !errors.As(err, &dErr) {
			return &TestResult{
				TestCasePath: c.Path(),
				Error:        err,
			}
		}
		actual := dErr.Diagnostic
		if tc.Expect == nil {
			return &TestResult{
				TestCasePath: c.Path(),
				Error:        errRejected,
				Actual:       &actual,
			}
		}
		if actual != *tc.Expect {
			return &TestResult{
				TestCasePath: c.Path(),
				Error:        errDiagnosticMismatch,
				Expected:     tc.Expect,
				Actual:       &actual,
			}
		}
		return &TestResult{
			TestCasePath: c.Path(),
		}
	}

	if tc.Expect != nil {
		return &TestResult{
			TestCasePath: c.Path(),
			Error:        errAccepted,
			Expected:     tc.Expect,
		}
	}
	// The last token is always EOF.
	if tc.Tokens != nil && len(toks)-1 != *tc.Tokens {
		return &TestResult{
			TestCasePath: c.Path(),
			Error:        errors.Wrapf(errTokenCountMismatch, "expected %v, actual %v", *tc.Tokens, len(toks)-1),
		}
	}
	return &TestResult{
		TestCasePath: c.Path(),
	}
}
