// Package repository содержит хранилища состояния пивной гонки: JSON-файл и PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmeshcher/beer-mile/internal/model"
)

// FileRepository хранит состояние одним JSON-документом в файле.
type FileRepository struct {
	path string
}

// NewFileRepository создаёт хранилище для файла по указанному пути. Файл может отсутствовать.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path возвращает путь к файлу документа.
func (r *FileRepository) Path() string {
	return r.path
}

// Close ничего не делает: файл открывается только на время чтения и записи.
func (r *FileRepository) Close() error {
	return nil
}

// Load читает состояние из файла. Отсутствующий файл даёт пустое состояние,
// повреждённый — пустое состояние и recovered = true. Ошибка возвращается только
// при невозможности прочитать существующий файл.
func (r *FileRepository) Load(ctx context.Context) (*model.State, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewState(), false, nil
		}
		return nil, false, fmt.Errorf("read state file: %w", err)
	}

	st, err := model.Decode(data)
	if err != nil {
		return model.NewState(), true, nil
	}
	return st, false, nil
}

// Save атомарно перезаписывает файл: документ пишется во временный файл
// в том же каталоге и переименовывается поверх старого.
func (r *FileRepository) Save(ctx context.Context, st *model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := model.Encode(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir, base := filepath.Split(r.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}
