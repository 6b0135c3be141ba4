package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/cards/fuzzy"
	"github.com/ramonehamilton/proxygen/internal/decklist"
	"github.com/ramonehamilton/proxygen/internal/render"
)

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <card name>",
		Short: "Show how a card name resolves",
		Example: `  proxygen lookup Snapcaster Mage
  proxygen lookup "Fire // Ice"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := decklist.PrimaryName(strings.Join(args, " "))

			store, err := loadStore(cmd.Context(), a.cfg.Dataset, a.logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			entity, err := cards.NewResolver(store).Resolve(name)
			if err != nil {
				if errors.Is(err, cards.ErrInvalidCardName) {
					if suggestions := fuzzy.Suggest(store, name, 5); len(suggestions) > 0 {
						color.New(color.FgYellow).Fprintln(w, "Did you mean:")
						for _, s := range suggestions {
							fmt.Fprintf(w, "  %s\n", s)
						}
					}
				}
				return err
			}

			head, rest, _ := strings.Cut(render.Text(entity), "\n")
			color.New(color.Bold).Fprintln(w, head)
			fmt.Fprint(w, rest)
			return nil
		},
	}
}
