package emit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureAssets makes sure dir/lib/<engine> exists, copying the bundle from
// the emitter's asset tree if it does not. It reports whether a copy was
// made. An existing directory is never touched.
//
// The copy is staged in a temporary directory and renamed into place, so
// concurrent callers either install the full bundle or find it installed.
func (e *Emitter) EnsureAssets(dir string) (bool, error) {
	engine := e.engine()
	target := filepath.Join(dir, LibDir, engine)
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return false, nil
	}

	src, err := fs.Sub(e.assets(), engine)
	if err != nil {
		return false, fmt.Errorf("asset bundle %s: %w", engine, err)
	}
	if _, err := fs.Stat(src, "."); err != nil {
		return false, fmt.Errorf("asset bundle %s: %w", engine, err)
	}

	lib := filepath.Join(dir, LibDir)
	if err := os.MkdirAll(lib, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", lib, err)
	}
	tmp, err := os.MkdirTemp(lib, "."+engine+"-*")
	if err != nil {
		return false, fmt.Errorf("stage assets: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := os.CopyFS(tmp, src); err != nil {
		return false, fmt.Errorf("copy assets: %w", err)
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		return false, fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
			return false, nil
		}
		return false, fmt.Errorf("install assets: %w", err)
	}
	e.logger().Debug("copied engine assets", "dir", target)
	return true, nil
}

// WriteDocument writes data to path atomically. The bytes go to a temporary
// file in the same directory which is synced and renamed over path. On
// failure the previous file at path is left as it was.
func WriteDocument(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
