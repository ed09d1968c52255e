// Command role-audit reads job titles from stdin, one per line, and prints
// how the default taxonomy classifies them. Titles that match no rule are
// listed last so the rule table can be reviewed against a new credits file.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditlens/internal/classify"
	"github.com/ppiankov/creditlens/internal/model"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var onlyUnclassified bool

	cmd := &cobra.Command{
		Use:   "role-audit < roles.txt",
		Short: "Classify job titles read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, onlyUnclassified)
		},
	}
	cmd.Flags().BoolVar(&onlyUnclassified, "unclassified", false, "only list titles that match no rule")
	return cmd
}

func run(cmd *cobra.Command, onlyUnclassified bool) error {
	seen := make(map[string]bool)
	var roles []string

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		role := strings.TrimSpace(scanner.Text())
		if role == "" || strings.HasPrefix(role, "#") || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	classifier := classify.NewClassifier(nil, nil)
	out := cmd.OutOrStdout()

	if !onlyUnclassified {
		classifier.WriteTable(out, roles)
		fmt.Fprintln(out)
	}

	var unclassified []string
	for _, role := range roles {
		if classifier.Classify(role).Category == model.RoleOther {
			unclassified = append(unclassified, role)
		}
	}
	sort.Strings(unclassified)

	fmt.Fprintf(out, "Unclassified: %d of %d\n", len(unclassified), len(roles))
	for _, role := range unclassified {
		fmt.Fprintf(out, "  %s\n", role)
	}
	return nil
}
