package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var format string
	var showContacts bool

	cmd := &cobra.Command{
		Use:   "validate <источник>",
		Short: "Проверить справочник без записи vCard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFormat(format); err != nil {
				return err
			}
			conv, err := a.converter()
			if err != nil {
				return err
			}

			rep, contacts, err := conv.Validate(cmd.Context(), args[0], format)
			out := cmd.OutOrStdout()
			printReport(out, rep)
			if err != nil {
				return err
			}
			if showContacts {
				for _, c := range contacts {
					fmt.Fprintf(out, "  %s | %s | %s | %s\n", c.FullName, c.Title, c.WorkE164, c.MobileE164)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "формат справочника: ВПК, ВЗК, ВИЦ, ЗЗГТ")
	cmd.Flags().BoolVar(&showContacts, "contacts", false, "вывести собранные контакты")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <источник>",
		Short: "Показать строки заголовков и подходящие форматы по каждому листу",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := a.converter()
			if err != nil {
				return err
			}
			sheets, err := conv.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range sheets {
				headColor.Fprintf(out, "Лист %d «%s» (последняя строка %d)\n", s.Index, s.Name, s.LastRow)
				if len(s.Headers) == 0 {
					warnColor.Fprintln(out, "  строка заголовков не найдена")
					continue
				}
				fmt.Fprintf(out, "  Заголовки (строка %d): [%s]\n", s.HeaderRow, strings.Join(s.Headers, " | "))
				if matches := s.Matches(); len(matches) > 0 {
					okColor.Fprintf(out, "  Подходит: %s\n", strings.Join(matches, ", "))
				} else {
					warnColor.Fprintln(out, "  Ни один формат не подходит")
				}
				for _, h := range s.Hints {
					fmt.Fprintf(out, "  Колонка %d «%s» похожа на поле %s (синоним «%s»)\n", h.Column, h.Header, h.Field, h.Synonym)
				}
			}
			return nil
		},
	}
}
