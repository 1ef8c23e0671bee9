package sass

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver turns user-supplied paths into absolute paths anchored at the
// working directory and checks the filesystem properties each option needs.
// The working directory is read on every call, not cached.
type PathResolver struct {
	// Getwd returns the working directory. Defaults to os.Getwd.
	Getwd func() (string, error)
}

// NewPathResolver returns a resolver anchored at the process working directory.
func NewPathResolver() *PathResolver {
	return &PathResolver{Getwd: os.Getwd}
}

func (r *PathResolver) getwd() (string, error) {
	if r == nil || r.Getwd == nil {
		return os.Getwd()
	}
	return r.Getwd()
}

// ToAbsolute returns path unchanged if it is absolute, otherwise prefixed
// with the working directory and a separator. The result is not cleaned:
// "link/../inc" must keep its "link" component so that the operating system,
// not a lexical rewrite, decides where ".." leads when link is a symlink.
func (r *PathResolver) ToAbsolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := r.getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	if strings.HasSuffix(cwd, string(filepath.Separator)) {
		return cwd + path, nil
	}
	return cwd + string(filepath.Separator) + path, nil
}

// Resolve checks that path is a local filesystem path and makes it absolute.
// Failures are reported as a ConfigurationError with the given code and field.
func (r *PathResolver) Resolve(code int, field, path string) (string, error) {
	if isNonLocal(path) {
		return "", configError(CodeNonLocalPath, field, path,
			"only local filesystem paths are supported, got %q", path)
	}
	abs, err := r.ToAbsolute(path)
	if err != nil {
		return "", configError(code, field, path, "%v", err)
	}
	return abs, nil
}

// AssertReadableDirectory fails unless path is an existing, readable directory.
func (r *PathResolver) AssertReadableDirectory(code int, field, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || canRead(path) != nil {
		return configError(code, field, path, "the path %s does not exist or is not readable", path)
	}
	return nil
}

// AssertReadableFile fails unless path exists, is not a directory and is readable.
func (r *PathResolver) AssertReadableFile(code int, field, path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || canRead(path) != nil {
		return configError(code, field, path, "the file %s can not be read", path)
	}
	return nil
}

// AssertWritable fails unless path can be written: an existing file must be
// writable, a missing file must have a writable parent directory.
func (r *PathResolver) AssertWritable(code int, field, path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() || canWrite(path) != nil {
			return configError(code, field, path, "the file %s is not able to be created", path)
		}
		return nil
	case os.IsNotExist(err):
		dir := filepath.Dir(path)
		dirInfo, err := os.Stat(dir)
		if err != nil || !dirInfo.IsDir() || canCreateIn(dir) != nil {
			return configError(code, field, path, "the file %s is not able to be created", path)
		}
		return nil
	default:
		return configError(code, field, path, "the file %s is not able to be created: %v", path, err)
	}
}

// isNonLocal reports whether path carries a URL scheme or stream wrapper
// such as "http://" or "phar://".
func isNonLocal(path string) bool {
	scheme, _, found := strings.Cut(path, "://")
	if !found || scheme == "" {
		return false
	}
	for _, c := range scheme {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
