package engine

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// Rejection records a candidate directory dropped during validation.
type Rejection struct {
	Dir string
	Err error
}

// DirSelection is the outcome of validating candidate directories.
type DirSelection struct {
	// Accepted holds canonical absolute paths in first-seen input order.
	Accepted   []string
	Rejected   []Rejection
	Duplicates []string
}

// CanonicalPath returns the absolute, cleaned form of p with symlinks
// resolved when the path exists.
func CanonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

// ResolveDirs deduplicates candidate paths by canonical form and keeps only
// directories that contain every artifact with a non-zero size. Duplicates
// and rejected directories are logged as warnings. ErrNoValidDirs is returned
// when nothing survives.
func ResolveDirs(candidates []string, artifacts []string, logger *slog.Logger) (*DirSelection, error) {
	sel := &DirSelection{}
	seen := make(map[string]struct{}, len(candidates))

	for _, cand := range candidates {
		dir, err := CanonicalPath(cand)
		if err != nil {
			logger.Warn("skipping directory", slog.String("dir", cand), slog.String("reason", err.Error()))
			sel.Rejected = append(sel.Rejected, Rejection{Dir: cand, Err: err})
			continue
		}
		if _, dup := seen[dir]; dup {
			logger.Warn("duplicate directory ignored", slog.String("dir", dir), slog.String("given", cand))
			sel.Duplicates = append(sel.Duplicates, dir)
			continue
		}
		seen[dir] = struct{}{}

		if err := validateDir(dir, artifacts); err != nil {
			logger.Warn("skipping directory", slog.String("dir", dir), slog.String("reason", err.Error()))
			sel.Rejected = append(sel.Rejected, Rejection{Dir: dir, Err: err})
			continue
		}
		sel.Accepted = append(sel.Accepted, dir)
	}

	if len(sel.Accepted) == 0 {
		return sel, ErrNoValidDirs
	}
	return sel, nil
}

func validateDir(dir string, artifacts []string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("not a directory")
	}
	for _, name := range artifacts {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || fi.IsDir() {
			return &ArtifactError{Dir: dir, Artifact: name}
		}
		if fi.Size() == 0 {
			return &ArtifactError{Dir: dir, Artifact: name, Empty: true}
		}
	}
	return nil
}
