package record

import (
	"checkin/internal/domain/record"

	"github.com/spf13/cobra"
)

// Opener builds the record service from the loaded configuration and
// returns it together with the actionable status value.
type Opener func(cmd *cobra.Command) (record.Servicer, string, error)

// NewRecordCmd - родительская команда для операций с записями
func NewRecordCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Операции с записями внешнего сервиса",
		Long:  `Просмотр записей напрямую во внешнем сервисе, без веб-интерфейса.`,
	}
	cmd.AddCommand(newGetCmd(open))

	return cmd
}
