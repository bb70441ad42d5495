package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/neurodesk/liquid/pkg/liquid"
	"github.com/neurodesk/liquid/pkg/starlark"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = cobra.Command{
	Use:   "liquid",
	Short: "Parse and render Liquid templates",
}

var renderDataFile string
var renderScriptFile string
var renderSetValues []string
var renderOutFile string

var renderCmd = cobra.Command{
	Use:   "render [template]",
	Short: "Render a template file against YAML data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("no template specified")
		}
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		ctx, err := buildRenderContext()
		if err != nil {
			return err
		}

		tpl, err := liquid.Parse(string(src))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		out, err := tpl.Render(ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}

		if renderOutFile != "" {
			if err := os.WriteFile(renderOutFile, []byte(out), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

// buildRenderContext assembles the render context from, in order, the YAML
// data file, the Starlark script, and --set overrides. Later sources win.
func buildRenderContext() (liquid.Context, error) {
	ctx := liquid.Context{}
	if renderDataFile != "" {
		data, err := os.ReadFile(renderDataFile)
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		ctx, err = liquid.ContextFromYAML(data)
		if err != nil {
			return nil, err
		}
	}

	if renderScriptFile != "" {
		eval := starlark.NewContextEvaluator(ctx)
		eval.LoadContext(ctx)
		if _, err := eval.ExecFile(renderScriptFile, nil); err != nil {
			return nil, err
		}
		for k, v := range eval.ExportContext() {
			ctx[k] = v
		}
	}

	for _, kv := range renderSetValues {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q (want NAME=VALUE)", kv)
		}
		ctx.Insert(name, liquid.StringValue(value))
	}

	if verbose {
		slog.Info("context ready", "variables", len(ctx))
	}
	return ctx, nil
}

var checkCmd = cobra.Command{
	Use:   "check [templates ...]",
	Short: "Check that template files parse",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("no templates specified")
		}
		var failed int
		for _, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				failed++
				fmt.Printf("\033[31m%s: %v\033[0m\n", path, err)
				continue
			}
			if err := liquid.TemplateString(src).Validate(); err != nil {
				failed++
				fmt.Printf("\033[31m%s: %v\033[0m\n", path, err)
				continue
			}
			fmt.Printf("\033[32m%s: ok\033[0m\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d templates failed to parse", failed, len(args))
		}
		return nil
	},
}

var astCmd = cobra.Command{
	Use:   "ast [template]",
	Short: "Print the parse tree of a template file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("no template specified")
		}
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		tpl, err := liquid.Parse(string(src))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		fmt.Print(liquid.Pretty(tpl))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	renderCmd.Flags().StringVar(&renderDataFile, "data", "", "YAML file with context variables")
	renderCmd.Flags().StringVar(&renderScriptFile, "script", "", "Starlark script that computes context variables")
	renderCmd.Flags().StringArrayVar(&renderSetValues, "set", nil, "Set a context variable as NAME=VALUE (repeatable)")
	renderCmd.Flags().StringVar(&renderOutFile, "out", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(&renderCmd)

	rootCmd.AddCommand(&checkCmd)
	rootCmd.AddCommand(&astCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
