package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Список поддерживаемых форматов справочников",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range reg.All() {
				headColor.Fprintf(out, "%s", f.Name())
				if aliases := f.Aliases(); len(aliases) > 0 {
					fmt.Fprintf(out, " (%s)", strings.Join(aliases, ", "))
				}
				fmt.Fprintf(out, " %s\n", f.Title())
				fmt.Fprintf(out, "  Заголовки: [%s]\n", strings.Join(f.RawSignature(), " | "))
				if re, ok := f.SheetGuard(); ok {
					fmt.Fprintf(out, "  Имя листа: /%s/\n", re.String())
				}
			}
			return nil
		},
	}
}
