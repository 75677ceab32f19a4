package repository

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// 行区切りテキストの読み込み。ファイルが無いときはnilを返す（空扱い）。
func readRecordLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, ln := range strings.Split(string(data), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

// 一時ファイルに書いてからrenameで置き換える。
// 途中でプロセスが落ちても前の内容が壊れない。
func writeRecordLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(strings.TrimSpace(ln))
		b.WriteString("\n")
	}

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
