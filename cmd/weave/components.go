package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/demo"
	"github.com/vango-dev/weave/internal/errors"
)

func componentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the components weave can run",
		Long:  `List the sample components. The configured root is marked with *.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range demo.Names() {
				mark := " "
				if name == a.cfg.App.Root {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\n", mark, name)
			}
		},
	}
}

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe an error code",
		Long: `Print the catalogue entry for an error code such as W202.
Without a code, list every code.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					t, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-9s  %s\n", code, t.Category, t.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.GetTemplate(code); !ok {
				return errors.Newf(errors.CategoryCLI, "unknown error code %q", args[0]).
					WithSuggestion("Run 'weave explain' to list every code.")
			}
			fmt.Fprint(out, errors.New(code).Format())
			return nil
		},
	}
}
