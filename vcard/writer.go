package vcard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"spravochnik/phone"
)

// MaxLineOctets предельная длина строки vCard в байтах UTF-8.
const MaxLineOctets = 75

const crlf = "\r\n"

// WriteFoldedLine пишет строку с переносом по 75 октетов. Продолжения
// начинаются с одного пробела, разрыв никогда не попадает внутрь
// многобайтового символа.
func WriteFoldedLine(w io.Writer, line string) error {
	b := []byte(line)
	if len(b) <= MaxLineOctets {
		_, err := io.WriteString(w, line+crlf)
		return err
	}

	pos, first := 0, true
	for pos < len(b) {
		budget := MaxLineOctets
		if !first {
			budget--
		}
		n := min(budget, len(b)-pos)
		for n > 0 && pos+n < len(b) && b[pos+n]&0xC0 == 0x80 {
			n--
		}
		if n <= 0 {
			n = 1
		}

		prefix := ""
		if !first {
			prefix = " "
		}
		if _, err := io.WriteString(w, prefix+string(b[pos:pos+n])+crlf); err != nil {
			return err
		}
		pos += n
		first = false
	}
	return nil
}

// WriteContact пишет одну карточку. Номера проходят строгую проверку
// +7XXXXXXXXXX, всё остальное молча пропускается.
func WriteContact(w io.Writer, c Contact) error {
	lw := &lineWriter{w: w}

	lw.raw("BEGIN:VCARD")
	lw.raw("VERSION:3.0")
	lw.line("FN:" + Esc(c.FullName))

	last, first, middle := SplitFio(c.FullName)
	lw.line(fmt.Sprintf("N:%s;%s;%s;;", Esc(last), Esc(first), Esc(middle)))

	if strings.TrimSpace(c.OrgOrDept) != "" {
		lw.line("ORG:" + Esc(c.OrgOrDept))
	}
	if strings.TrimSpace(c.Title) != "" {
		lw.line("TITLE:" + Esc(c.Title))
	}

	for _, addr := range SplitEmails(c.Email) {
		if IsValidEmail(addr) {
			lw.line("EMAIL;TYPE=INTERNET:" + Esc(addr))
		}
	}

	if mobile := phone.StrictE164RU(c.MobileE164); mobile != "" && IsValidE164Phone(mobile) {
		lw.line("TEL;TYPE=" + PhoneType(mobile) + ":" + mobile)
	}

	if work := phone.StrictE164RU(c.WorkE164); work != "" && IsValidE164Phone(work) {
		lw.line("TEL;TYPE=WORK:" + work)
		if ext := phone.Digits(c.Ext); ext != "" {
			lw.line("TEL;TYPE=WORK:" + work + "," + ext)
		}
	}

	if strings.TrimSpace(c.City) != "" {
		lw.line("ADR;TYPE=WORK:;;;" + Esc(c.City) + ";;;")
	}

	if note := NoteForEmission(c); note != "" {
		lw.line("NOTE:" + Esc(note))
	}

	lw.raw("END:VCARD")
	return lw.err
}

// Write объединяет дубли и пишет все карточки. Возвращает число записанных карточек.
func Write(w io.Writer, contacts []Contact) (int, error) {
	merged := MergeDuplicates(contacts)
	for i, c := range merged {
		if err := WriteContact(w, c); err != nil {
			return i, fmt.Errorf("failed to write contact %q: %w", c.FullName, err)
		}
	}
	return len(merged), nil
}

// WriteVCardFile пишет файл .vcf: UTF-8 без BOM, строки через CRLF.
func WriteVCardFile(path string, contacts []Contact) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create vcard file: %w", err)
	}

	buf := bufio.NewWriter(f)
	n, err := Write(buf, contacts)
	if err == nil {
		err = buf.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write vcard file %s: %w", path, err)
	}
	return n, nil
}

type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err == nil {
		lw.err = WriteFoldedLine(lw.w, s)
	}
}

func (lw *lineWriter) raw(s string) {
	if lw.err == nil {
		_, lw.err = io.WriteString(lw.w, s+crlf)
	}
}
