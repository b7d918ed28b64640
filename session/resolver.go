package session

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Conventional two-root source layout inside every workspace.
const (
	sourceRootPrefix = "src/"
	mainSourceRoot   = "src/main/java"
	testSourceRoot   = "src/test/java"
	testPathPrefix   = "test/"
)

// PathResolver maps a slash-separated logical source path to an absolute
// path inside a workspace. One resolver governs all resolutions for the
// lifetime of a Manager. Implementations must reject, with ErrInvalidPath,
// any logical path that would land outside the root it was placed under
// after normalization; this runs before any I/O.
type PathResolver interface {
	Resolve(workspaceRoot, logicalPath string) (string, error)
}

// MainSourceResolver places relative paths under the main source root.
// Paths already starting with "src/" are treated as workspace-rooted.
type MainSourceResolver struct{}

func (MainSourceResolver) Resolve(workspaceRoot, logicalPath string) (string, error) {
	if err := validateLogicalPath(logicalPath); err != nil {
		return "", err
	}

	if strings.HasPrefix(logicalPath, sourceRootPrefix) {
		return joinInsideRoot(workspaceRoot, logicalPath, logicalPath)
	}
	base := filepath.Join(workspaceRoot, filepath.FromSlash(mainSourceRoot))
	return joinInsideRoot(base, logicalPath, logicalPath)
}

// TestSourceResolver places relative paths under the test source root.
// Paths already starting with "src/" are treated as workspace-rooted, and a
// leading "test/" segment is stripped before rooting.
type TestSourceResolver struct{}

func (TestSourceResolver) Resolve(workspaceRoot, logicalPath string) (string, error) {
	if err := validateLogicalPath(logicalPath); err != nil {
		return "", err
	}

	if strings.HasPrefix(logicalPath, sourceRootPrefix) {
		return joinInsideRoot(workspaceRoot, logicalPath, logicalPath)
	}

	rel := strings.TrimPrefix(logicalPath, testPathPrefix)
	base := filepath.Join(workspaceRoot, filepath.FromSlash(testSourceRoot))
	return joinInsideRoot(base, rel, logicalPath)
}

func validateLogicalPath(logicalPath string) error {
	if logicalPath == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if path.IsAbs(logicalPath) || filepath.IsAbs(logicalPath) {
		return fmt.Errorf("%w: %s: absolute paths are not allowed", ErrInvalidPath, logicalPath)
	}
	return nil
}

// joinInsideRoot joins rel onto base and verifies the normalized result
// stays inside base. Parent-traversal segments can walk out of the
// containment root, so the check runs on the cleaned join.
func joinInsideRoot(base, rel, logicalPath string) (string, error) {
	root := filepath.Clean(base)
	full := filepath.Join(root, filepath.FromSlash(rel))

	inside, err := filepath.Rel(root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s: escapes workspace", ErrInvalidPath, logicalPath)
	}
	return full, nil
}
