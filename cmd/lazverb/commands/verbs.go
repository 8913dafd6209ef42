package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"lazverb/internal/di"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/models"
	"lazverb/internal/services"
	contextutils "lazverb/internal/utils"
)

// VerbCommands returns the verb catalog commands
func VerbCommands(env *Env) *cobra.Command {
	verbsCmd := &cobra.Command{
		Use:   "verbs",
		Short: "Verb catalog commands",
		Long: `Verb catalog commands.

Available commands:
  import    - Load dictionary tables into the catalog database
  search    - Search the catalog, or the dictionary when no database is reachable`,
	}

	verbsCmd.AddCommand(importCmd(env))
	verbsCmd.AddCommand(searchCmd(env))
	return verbsCmd
}

func importCmd(env *Env) *cobra.Command {
	var noDefault bool

	cmd := &cobra.Command{
		Use:   "import [pattern...]",
		Short: "Import dictionary tables into the catalog",
		Long: `Import dictionary tables into the catalog database.

Patterns are doublestar globs over .csv and .json tables and replace the configured
dictionary paths. The embedded tables are imported first unless --no-default is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) > 0 {
				env.Config.Dictionary.Paths = args
			}
			if noDefault {
				include := false
				env.Config.Dictionary.IncludeDefault = &include
			}

			container, err := startContainer(ctx, env, di.WithoutCatalogSync())
			if err != nil {
				return err
			}
			defer func() { _ = container.Shutdown(ctx) }()

			catalog := container.GetCatalogService()
			if catalog == nil {
				return contextutils.ErrDatabaseConnection.WithDetails("catalog database %s is unavailable", env.Config.Database.URL)
			}
			sources, err := container.GetDictionaryService().Sources(ctx)
			if err != nil {
				return err
			}
			summary, err := catalog.Import(ctx, sources)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				return writeJSON(out, summary)
			}
			_, err = fmt.Fprintf(out, "Imported %d new and %d updated verbs from %s\n",
				summary.Inserted, summary.Updated, strings.Join(summary.Files, ", "))
			return err
		},
	}

	cmd.Flags().BoolVar(&noDefault, "no-default", false, "skip the embedded tables")
	return cmd
}

func searchCmd(env *Env) *cobra.Command {
	var (
		class, region  string
		page, pageSize int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search verbs by infinitive or form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter := models.VerbFilter{Page: page, PageSize: pageSize}
			if len(args) == 1 {
				filter.Query = args[0]
			}
			classes, err := grammar.ParseVerbClass(class)
			if err != nil {
				return contextutils.ErrInvalidInput.WithDetails("%v", err)
			}
			filter.Classes = classes
			if region != "" {
				r, err := grammar.ParseRegion(region)
				if err != nil {
					return contextutils.ErrInvalidInput.WithDetails("%v", err)
				}
				filter.Region = r
			}

			container, err := startContainer(ctx, env, di.WithoutCatalogSync())
			if err != nil {
				return err
			}
			defer func() { _ = container.Shutdown(ctx) }()

			var result *models.VerbPage
			if catalog := container.GetCatalogService(); catalog != nil {
				result, err = catalog.Search(ctx, filter)
				if err != nil {
					return err
				}
			} else {
				result = services.SearchDictionary(container.GetDictionaryService().Current(), filter)
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				return writeJSON(out, result)
			}
			return printVerbs(out, result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&class, "class", "", "verb class: IVD, TVE, TVM or all")
	f.StringVar(&region, "region", "", "only verbs attested in this region")
	f.IntVar(&page, "page", 1, "page number")
	f.IntVar(&pageSize, "page-size", 0, "verbs per page")
	return cmd
}

func printVerbs(w io.Writer, result *models.VerbPage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "INFINITIVE\tCLASS\tPRESENT 3SG\tREGIONS")
	for _, v := range result.Verbs {
		forms := lo.Uniq(lo.Map(v.Forms, func(f lexicon.Variant, _ int) string { return f.Form }))
		regions := lo.Map(v.Regions, func(r grammar.Region, _ int) string { return string(r) })
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Infinitive, v.Class, strings.Join(forms, ", "), strings.Join(regions, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d, %d of %d verbs\n", result.Page, len(result.Verbs), result.Total)
	return err
}
