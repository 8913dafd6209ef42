package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"lazverb/internal/di"
	"lazverb/internal/engine"
	"lazverb/internal/grammar"
)

type conjugateOptions struct {
	request engine.Request
	json    bool
}

func conjugateCmd(env *Env) *cobra.Command {
	opts := &conjugateOptions{}

	cmd := &cobra.Command{
		Use:   "conjugate <infinitive>",
		Short: "Conjugate a verb",
		Long: `Conjugate a verb from the dictionary.

Output is a listing per region on a terminal and JSON otherwise.

Examples:
  lazverb conjugate oç̌aru --tense present --region HO
  lazverb conjugate oç̌aru --subject S1_Singular --obj S2_Singular --tense past`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := startContainer(ctx, env, di.WithoutCatalog())
			if err != nil {
				return err
			}
			defer func() { _ = container.Shutdown(ctx) }()

			req := opts.request
			req.Infinitive = args[0]
			result, err := container.GetConjugationService().Conjugate(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json || !isTerminal(out) {
				return writeJSON(out, result)
			}
			return printResult(out, result)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.request.Subject, "subject", "s", "all", "subject person (S1_Singular ... S3_Plural or all)")
	f.StringVarP(&opts.request.Object, "obj", "o", "", "object person (O1_Singular ... O3_Plural or all)")
	f.StringVarP(&opts.request.Tense, "tense", "t", "", "tense: present, past, future, past_progressive, present_perfect")
	f.StringVarP(&opts.request.Aspect, "aspect", "a", "", "aspect: potential or passive")
	f.StringSliceVarP(&opts.request.Regions, "region", "r", nil, "regions (AŞ, HO, FA, PZ or names); all when empty")
	f.BoolVar(&opts.request.Optative, "optative", false, "optative mood")
	f.BoolVar(&opts.request.Imperative, "imperative", false, "imperative mood")
	f.BoolVar(&opts.request.NegativeImperative, "neg-imperative", false, "negative imperative mood")
	f.BoolVar(&opts.request.Applicative, "applicative", false, "applicative marker")
	f.BoolVar(&opts.request.Causative, "causative", false, "causative marker")
	f.BoolVar(&opts.request.SimpleCausative, "simple-causative", false, "simple causative marker")
	f.BoolVar(&opts.json, "json", false, "print JSON even on a terminal")

	return cmd
}

// printResult writes one block per region in canonical region order
func printResult(w io.Writer, result *engine.Result) error {
	classes := lo.Map(result.Classes, func(c grammar.VerbClass, _ int) string { return string(c) })
	if _, err := fmt.Fprintf(w, "%s (%s) %s\n", result.Infinitive, result.Category, strings.Join(classes, "+")); err != nil {
		return err
	}
	for _, region := range grammar.Regions {
		lines, ok := result.ByRegion[region]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s (%s)\n", region, region.Name()); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	for _, d := range result.Diagnostics {
		if _, err := fmt.Fprintf(w, "\nnote: %s: %s\n", d.Class, d.Message); err != nil {
			return err
		}
	}
	return nil
}
