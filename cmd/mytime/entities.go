package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/service"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Browse and edit admin console records",
}

var entitiesResourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the known resource names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range domain.ResourceNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var entitiesListCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "Print every record of a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		raw, err := a.Entities.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

var flagEntityFile string

var entitiesSaveCmd = &cobra.Command{
	Use:   "save <resource>",
	Short: "Insert or update a record read as a JSON object",
	Long: `Reads one JSON object from --file (or stdin), stamps the audit fields for the
signed-in operator and upserts it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := readEntity(flagEntityFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ctx := cmd.Context()
		raw, err := a.Entities.Save(ctx, args[0], entity, service.AuditEnricherFor(ctx, a.Account, a.Clock))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

var entitiesDeleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		if err := a.Entities.Delete(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	entitiesSaveCmd.Flags().StringVarP(&flagEntityFile, "file", "f", "-", `JSON file to upsert, or "-" for stdin`)
	entitiesCmd.AddCommand(entitiesResourcesCmd, entitiesListCmd, entitiesSaveCmd, entitiesDeleteCmd)
	rootCmd.AddCommand(entitiesCmd)
}

func readEntity(path string, stdin io.Reader) (domain.Entity, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read entity: %w", err)
	}

	var entity domain.Entity
	if err := json.Unmarshal(b, &entity); err != nil || entity == nil {
		return nil, fmt.Errorf("entity must be a JSON object")
	}
	return entity, nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = w.Write(append(raw, '\n'))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
