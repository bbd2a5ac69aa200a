package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spravochnik/converter"
)

func (a *app) convertCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <источник> [файл.vcf]",
		Short: "Конвертировать справочник в vCard",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFormat(format); err != nil {
				return err
			}
			conv, err := a.converter()
			if err != nil {
				return err
			}

			source := args[0]
			dest := defaultDestination(source)
			if len(args) == 2 {
				dest = args[1]
			}

			rep, err := conv.Convert(cmd.Context(), converter.Request{
				Source:      source,
				Destination: dest,
				Format:      format,
			})
			if rep != nil {
				printReport(cmd.OutOrStdout(), rep)
			}
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Записано: %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "формат справочника: ВПК, ВЗК, ВИЦ, ЗЗГТ")
	return cmd
}

// defaultDestination файл .vcf рядом с источником
func defaultDestination(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".vcf"
}
