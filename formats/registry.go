package formats

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"spravochnik/header"
)

//go:embed formats.yaml
var defaultFormats []byte

// ErrUnknownFormat возвращается, если для имени формата нет описания.
var ErrUnknownFormat = errors.New("неизвестный формат")

// Registry набор известных форматов.
type Registry struct {
	formats []*Format
	index   map[string]*Format
}

// Option настраивает загрузку реестра.
type Option func(*options)

type options struct {
	forceGuards bool
}

// WithSheetGuards включает проверку имени листа у всех форматов, где
// задан шаблон.
func WithSheetGuards(on bool) Option {
	return func(o *options) { o.forceGuards = on }
}

// Default загружает встроенное описание форматов.
func Default(opts ...Option) (*Registry, error) {
	return Parse(defaultFormats, opts...)
}

// Load читает описание форматов из файла. Пустой путь означает встроенное описание.
func Load(path string, opts ...Option) (*Registry, error) {
	if path == "" {
		return Default(opts...)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read formats file %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// Parse разбирает и проверяет YAML описание форматов.
func Parse(data []byte, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse formats: %w", err)
	}
	if err := newValidator().Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid formats: %w", err)
	}

	reg := &Registry{index: make(map[string]*Format)}
	for _, d := range doc.Formats {
		f, err := compile(d, o.forceGuards)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", d.Name, err)
		}
		for _, key := range append([]string{d.Name}, d.Aliases...) {
			k := lookupKey(key)
			if _, dup := reg.index[k]; dup {
				return nil, fmt.Errorf("format %s: duplicate name or alias %q", d.Name, key)
			}
			reg.index[k] = f
		}
		reg.formats = append(reg.formats, f)
	}
	return reg, nil
}

// Lookup находит формат по имени или псевдониму без учёта регистра.
func (r *Registry) Lookup(name string) (*Format, error) {
	if f, ok := r.index[lookupKey(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w «%s» (нет сигнатуры)", ErrUnknownFormat, name)
}

// All форматы в порядке описания.
func (r *Registry) All() []*Format {
	return append([]*Format(nil), r.formats...)
}

// Names канонические имена форматов.
func (r *Registry) Names() []string {
	names := make([]string, len(r.formats))
	for i, f := range r.formats {
		names[i] = f.Name()
	}
	return names
}

func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("contact_field", func(fl validator.FieldLevel) bool {
		return header.Known(fl.Field().String())
	})
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	return v
}
