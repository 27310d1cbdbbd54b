package ruleset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseJobs parses a name-keyed collection of job records from YAML source.
//
// A name declared twice is rejected with ErrDuplicateKey rather than
// overwritten. The first structural problem in document order fails the whole
// collection; no partial result is returned.
//
// Postcondition: Returns a non-nil map (empty for an empty document) or a
// *StructuralError whose Path starts with the offending job name.
func ParseJobs(src []byte) (map[string]*Job, error) {
	root, err := parseDocument(src)
	if err != nil {
		return nil, err
	}
	jobs := make(map[string]*Job)
	if root == nil {
		return jobs, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, structErr(root, "", ErrWrongKind, "expected mapping of job names, got %s", kindName(root))
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := resolve(root.Content[i])
		if key.Kind != yaml.ScalarNode || key.Value == "" || isNull(key) {
			return nil, structErr(key, "", ErrWrongKind, "job name must be a non-empty scalar, got %s", kindName(key))
		}
		if key.ShortTag() == "!!merge" {
			return nil, structErr(key, "", ErrWrongKind, "merge key %q is not a job name", key.Value)
		}
		name := key.Value
		if _, dup := jobs[name]; dup {
			return nil, structErr(key, name, ErrDuplicateKey, "job %q declared more than once", name)
		}
		job, err := decodeJob(resolve(root.Content[i+1]), name)
		if err != nil {
			return nil, err
		}
		jobs[name] = job
	}
	return jobs, nil
}

// ReadJobs reads r to the end and parses it as a job collection.
func ReadJobs(r io.Reader) (map[string]*Job, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading job collection: %w", err)
	}
	return ParseJobs(src)
}
