package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <document-id> <query>",
		Short: "Show which query words a document contains",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("document id %q is not an integer", args[0])
			}
			server, err := buildServer(cmd.Context(), root.cfg, nil)
			if err != nil {
				return err
			}
			words, status, err := server.MatchDocument(args[1], id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "{ document_id = %d, status = %s, words = %s }\n",
				id, status, strings.Join(words, " "))
			return nil
		},
	}
}
