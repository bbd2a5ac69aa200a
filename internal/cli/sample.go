package cli

import (
	"github.com/spf13/cobra"

	"spravochnik/sample"
)

func (a *app) sampleCmd() *cobra.Command {
	var (
		format string
		opts   sample.Options
	)

	cmd := &cobra.Command{
		Use:   "sample <файл.xlsx>",
		Short: "Сгенерировать синтетический справочник в раскладке формата",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFormat(format); err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			f, err := reg.Lookup(format)
			if err != nil {
				return err
			}
			if err := sample.WriteXLSX(args[0], f, opts); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Записано: %s (%d строк, формат %s)\n", args[0], opts.Rows, f.Name())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "формат справочника: ВПК, ВЗК, ВИЦ, ЗЗГТ")
	cmd.Flags().IntVarP(&opts.Rows, "rows", "n", 25, "количество сотрудников")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "зерно генератора")
	cmd.Flags().StringVar(&opts.SheetName, "sheet", "", "имя листа (по умолчанию имя формата)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "строка-заголовок над шапкой таблицы")
	return cmd
}
