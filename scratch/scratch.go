// Package scratch выдаёт уникальные временные каталоги для промежуточных
// файлов конвертации и гарантирует их удаление.
package scratch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir временный каталог одной операции.
type Dir struct {
	path   string
	logger *slog.Logger
}

// Acquire создает каталог <root>/<prefix>-<uuid>. Пустой root означает
// системный каталог временных файлов.
func Acquire(root, prefix string, logger *slog.Logger) (*Dir, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch root: %w", err)
	}

	path := filepath.Join(root, prefix+"-"+uuid.NewString())
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &Dir{path: path, logger: logger}, nil
}

// Path путь каталога.
func (d *Dir) Path() string { return d.path }

// File путь файла внутри каталога.
func (d *Dir) File(name string) string {
	return filepath.Join(d.path, filepath.Base(name))
}

// CopyIn копирует файл внутрь каталога, сохраняя имя. Источник после
// этого можно менять или удалять, конвертация работает со снимком.
func (d *Dir) CopyIn(src string) (string, error) {
	dst := d.File(src)
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to snapshot source: %w", err)
	}
	return dst, nil
}

// Close удаляет каталог. Ошибки удаления только логируются.
func (d *Dir) Close() error {
	if d == nil || d.path == "" {
		return nil
	}
	if err := os.RemoveAll(d.path); err != nil {
		d.logger.Debug("scratch cleanup failed", "path", d.path, "error", err)
	}
	return nil
}

// MoveFile переносит файл на место назначения. Если rename невозможен
// (другой том), файл копируется через временное имя рядом с целью.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	tmp := dst + ".part-" + uuid.NewString()[:8]
	if err := copyFile(src, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	os.Remove(src)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
