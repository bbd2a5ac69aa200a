package workbook

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Supported сообщает, умеем ли мы открывать файл с таким расширением.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls", ".csv", ".htm", ".html":
		return true
	}
	return false
}

// Open открывает книгу по расширению файла. Файлы .xls дополнительно
// проверяются по сигнатуре: выгрузки из 1С часто оказываются HTML
// или .xlsx с неверным расширением.
func Open(path string) (Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	case ".csv":
		return openCSV(path)
	case ".htm", ".html":
		return openHTML(path)
	case ".xls":
		kind, err := sniff(path)
		if err != nil {
			return nil, err
		}
		switch kind {
		case kindOLE:
			return openXLS(path)
		case kindZIP:
			return openXLSX(path)
		case kindHTML:
			return openHTML(path)
		}
		return nil, fmt.Errorf("%w: %s не похож ни на BIFF, ни на HTML", ErrUnsupportedFormat, filepath.Base(path))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

type fileKind int

const (
	kindUnknown fileKind = iota
	kindOLE
	kindZIP
	kindHTML
)

func sniff(path string) (fileKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return kindUnknown, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return kindUnknown, fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	return sniffBytes(head[:n]), nil
}

func sniffBytes(head []byte) fileKind {
	switch {
	case bytes.HasPrefix(head, oleSignature):
		return kindOLE
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return kindZIP
	}
	text := bytes.ToLower(bytes.TrimLeft(head, "\xef\xbb\xbf \t\r\n"))
	for _, marker := range []string{"<!doctype html", "<html", "<table", "<meta", "<head"} {
		if bytes.Contains(text, []byte(marker)) {
			return kindHTML
		}
	}
	return kindUnknown
}
