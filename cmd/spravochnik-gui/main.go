package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"spravochnik/converter"
	"spravochnik/formats"
	"spravochnik/internal/logging"
)

var sourceExtensions = []string{".xlsx", ".xlsm", ".xls", ".csv", ".htm", ".html"}

func main() {
	logger, closeLog, err := logging.Setup(logging.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: "text",
		File:   os.Getenv("LOG_FILE"),
		Output: os.Stderr,
	})
	if err != nil {
		logger = slog.Default()
		closeLog = func() error { return nil }
	}
	defer closeLog()

	reg, err := formats.Default()
	if err != nil {
		logger.Error("failed to load formats", "error", err)
		os.Exit(1)
	}
	conv := converter.New(reg, converter.WithLogger(logger))

	a := app.NewWithID("ru.spravochnik.gui")
	w := a.NewWindow("Справочник → vCard")

	status := widget.NewLabel("Выберите формат справочника")
	status.Wrapping = fyne.TextWrapWord
	log := widget.NewMultiLineEntry()
	log.Wrapping = fyne.TextWrapWord
	log.SetMinRowsVisible(10)

	buttons := container.NewGridWithColumns(2)
	for _, f := range reg.All() {
		buttons.Add(widget.NewButton(f.Name(), func() {
			chooseAndConvert(w, conv, f.Name(), status, log)
		}))
	}

	w.SetContent(container.NewBorder(
		container.NewVBox(widget.NewLabel("Конвертация справочника сотрудников в vCard для Apple Contacts"), buttons, status),
		nil, nil, nil,
		log,
	))
	w.Resize(fyne.NewSize(560, 420))
	w.ShowAndRun()
}

// chooseAndConvert открывает книгу, спрашивает куда сохранить .vcf и запускает конвертацию
func chooseAndConvert(w fyne.Window, conv *converter.Converter, format string, status *widget.Label, log *widget.Entry) {
	open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if rc == nil {
			return
		}
		source := rc.URI().Path()
		rc.Close()

		save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if wc == nil {
				return
			}
			dest := wc.URI().Path()
			wc.Close()

			status.SetText("Конвертация " + filepath.Base(source) + "…")
			go func() {
				rep, err := conv.Convert(context.Background(), converter.Request{
					Source:      source,
					Destination: dest,
					Format:      format,
				})
				text := rep.Summary()
				fyne.Do(func() {
					log.SetText(text + "\n" + log.Text)
					if err != nil {
						status.SetText("Ошибка")
						dialog.ShowError(err, w)
						return
					}
					status.SetText("Готово: " + dest)
					dialog.ShowInformation("Готово", text, w)
				})
			}()
		}, w)
		save.SetFileName(defaultName(source))
		save.SetFilter(storage.NewExtensionFileFilter([]string{".vcf"}))
		save.Show()
	}, w)
	open.SetFilter(storage.NewExtensionFileFilter(sourceExtensions))
	open.Show()
}

// defaultName имя .vcf по имени источника
func defaultName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".vcf"
}
