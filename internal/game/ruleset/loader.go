package ruleset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadJobs parses every .yaml or .yml file in dir as a job collection and
// registers the union.
//
// Files are parsed concurrently. A job name defined in more than one file is
// an error, as is any structural error in any file. When several files fail,
// the error for the first one in lexical order is returned.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns a registry holding every job (possibly none) or a
// non-nil error naming the failing file.
func LoadJobs(ctx context.Context, dir string) (*JobRegistry, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	parsed := make([]map[string]*Job, len(files))
	failed := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed[i] = err
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				failed[i] = fmt.Errorf("reading %s: %w", path, err)
				return nil
			}
			jobs, err := ParseJobs(data)
			if err != nil {
				failed[i] = fmt.Errorf("parsing job file %s: %w", path, err)
				return nil
			}
			parsed[i] = jobs
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range failed {
		if err != nil {
			return nil, err
		}
	}

	reg := NewJobRegistry()
	origin := make(map[string]string)
	for i, jobs := range parsed {
		names := make([]string, 0, len(jobs))
		for name := range jobs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := reg.Register(name, jobs[name]); err != nil {
				return nil, fmt.Errorf("job %q in %s already defined in %s: %w", name, files[i], origin[name], ErrDuplicateKey)
			}
			origin[name] = files[i]
		}
	}
	return reg, nil
}

// yamlFiles lists the YAML files directly inside dir in lexical order.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
