package record

import (
	"encoding/json"
	"fmt"
	"io"

	"checkin/internal/domain/record"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGetCmd(open Opener) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Просмотреть запись",
		Long: `Читает запись по идентификатору из внешнего сервиса и печатает ее.
Статус не изменяется.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, sentinel, err := open(cmd)
			if err != nil {
				return err
			}

			rec, err := svc.Find(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ошибка получения записи: %w", err)
			}

			switch outputFormat {
			case "json":
				return printRecordJSON(cmd.OutOrStdout(), rec, sentinel)
			case "text":
				return printRecordHuman(cmd.OutOrStdout(), rec, sentinel)
			default:
				return fmt.Errorf("неизвестный формат вывода %q", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "формат вывода (text, json)")

	return cmd
}

func printRecordHuman(w io.Writer, rec *record.Record, sentinel string) error {
	name := rec.Name
	if name == "" {
		name = "-"
	}

	fmt.Fprintf(w, "ID:          %s\n", rec.ID)
	fmt.Fprintf(w, "Name:        %s\n", name)
	if rec.City != "" {
		fmt.Fprintf(w, "City:        %s\n", rec.City)
	}
	if rec.Phone != "" {
		fmt.Fprintf(w, "Phone:       %s\n", rec.Phone)
	}
	if rec.EmergencyPhone != "" {
		fmt.Fprintf(w, "Emergency:   %s\n", rec.EmergencyPhone)
	}
	if rec.Status != "" {
		fmt.Fprintf(w, "Status:      %s\n", statusColor(rec.StatusTone(sentinel)).Sprint(rec.Status))
	}
	if rec.HasRole() {
		fmt.Fprintf(w, "Admin:       %v\n", rec.Admin())
	}

	actionable := color.New(color.FgRed).Sprint("no")
	if rec.Actionable(sentinel) {
		actionable = color.New(color.FgGreen).Sprint("yes")
	}
	fmt.Fprintf(w, "Updatable:   %s\n", actionable)

	return nil
}

func statusColor(tone record.Tone) *color.Color {
	switch tone {
	case record.ToneSuccess:
		return color.New(color.FgGreen)
	case record.ToneSecondary:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}

func printRecordJSON(w io.Writer, rec *record.Record, sentinel string) error {
	output := struct {
		ID         string `json:"id"`
		*record.Record
		Actionable bool `json:"actionable"`
	}{
		ID:         rec.ID,
		Record:     rec,
		Actionable: rec.Actionable(sentinel),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
