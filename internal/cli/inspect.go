package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditlens/internal/classify"
	"github.com/ppiankov/creditlens/internal/identity"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <role>...",
	Short: "Show how job titles are classified",
	Long: `Print the role category, scope decision and matching keyword for each
job title, using the configured rule table and scope policy.

Example:
  creditlens classify "Lead Designer" "Senior Programmer" "Localisation QA"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		classifier, err := classify.FromConfig(cfg.Roles)
		if err != nil {
			return err
		}
		classifier.WriteTable(cmd.OutOrStdout(), args)
		return nil
	},
}

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <name>...",
	Short: "Show the canonical identity of developer names",
	Long: `Print the canonical key and display name each credited name resolves to,
using the builtin alias table merged with configured aliases.

Example:
  creditlens normalize "Agusti Curia" "Robert 'Bob' Smith (Lead)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		normalizer, err := identity.NewNormalizer(identity.MergeAliases(cfg.Aliases, cfg.ReplaceAliases))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, raw := range args {
			id := normalizer.Resolve(raw)
			marker := ""
			if id.Aliased {
				marker = "  [alias]"
			}
			fmt.Fprintf(out, "%q -> %s (%s)%s\n", raw, id.Key, id.Display, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(normalizeCmd)
}
