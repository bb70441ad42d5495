package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neurodesk/liquid/pkg/liquid"
	"github.com/neurodesk/liquid/pkg/starlark"
	"github.com/neurodesk/liquid/pkg/validator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var renderTestsCmd = cobra.Command{
	Use:   "test [manifest] [selector ...]",
	Short: "Run render test cases from a YAML manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest := "liquid_tests.yaml"
		var selectors []string
		if len(args) > 0 {
			manifest = args[0]
			selectors = args[1:]
		}

		specs, err := loadRenderTestSpecs(manifest)
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			return fmt.Errorf("no test cases defined in %s", manifest)
		}

		selected := filterRenderSpecs(specs, selectors)
		if len(selected) == 0 {
			return fmt.Errorf("no test cases matched the provided selectors")
		}

		return runRenderTests(filepath.Dir(manifest), selected)
	},
}

// renderTestSpec is one manifest entry. The template comes either inline or
// from a file next to the manifest; the expectation is either output text
// (inline or from a file) or an error-message fragment.
type renderTestSpec struct {
	Name         string      `yaml:"name"`
	Template     string      `yaml:"template"`
	TemplateFile string      `yaml:"template_file"`
	Data         *dataSource `yaml:"data"`
	Script       string      `yaml:"script"`
	Expect       string      `yaml:"expect"`
	ExpectFile   string      `yaml:"expect_file"`
	WantError    string      `yaml:"want_error"`
}

func (s renderTestSpec) Validate() error {
	return validator.All(
		validator.NotEmpty(s.Name, "test name"),
		s.validateTemplate(),
		s.validateExpectation(),
	)
}

func (s renderTestSpec) validateTemplate() error {
	if s.Template == "" && s.TemplateFile == "" {
		return fmt.Errorf("test %s: template or template_file is required", s.Name)
	}
	if s.Template != "" && s.TemplateFile != "" {
		return fmt.Errorf("test %s: template and template_file are mutually exclusive", s.Name)
	}
	return validator.NoTemplateMarkup(s.TemplateFile, "template_file")
}

func (s renderTestSpec) validateExpectation() error {
	if s.WantError != "" {
		if s.Expect != "" || s.ExpectFile != "" {
			return fmt.Errorf("test %s: want_error excludes expect and expect_file", s.Name)
		}
		return nil
	}
	if s.Expect != "" && s.ExpectFile != "" {
		return fmt.Errorf("test %s: expect and expect_file are mutually exclusive", s.Name)
	}
	return nil
}

// dataSource is the context for one case: either an inline mapping or a
// path to a YAML file, written as a plain scalar.
type dataSource struct {
	Inline map[string]any
	File   string
}

func (d *dataSource) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		path := strings.TrimSpace(value.Value)
		if path == "" {
			return fmt.Errorf("data file path must not be empty")
		}
		d.File = path
		return nil
	case yaml.MappingNode:
		return value.Decode(&d.Inline)
	default:
		return fmt.Errorf("unsupported data entry type: %v", value.Kind)
	}
}

func (d *dataSource) toContext(baseDir string) (liquid.Context, error) {
	if d.File != "" {
		data, err := os.ReadFile(filepath.Join(baseDir, d.File))
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		return liquid.ContextFromYAML(data)
	}
	ctx := make(liquid.Context, len(d.Inline))
	for k, v := range d.Inline {
		ctx[k] = liquid.FromGo(v)
	}
	return ctx, nil
}

func loadRenderTestSpecs(path string) ([]renderTestSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var specs []renderTestSpec
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&specs); err != nil {
		return nil, fmt.Errorf("decoding test manifest: %w", err)
	}

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	if err := validator.All(
		validator.NoDuplicates(names, "test names"),
		validator.Each(specs),
	); err != nil {
		return nil, fmt.Errorf("invalid test manifest: %w", err)
	}

	return specs, nil
}

func filterRenderSpecs(specs []renderTestSpec, selectors []string) []renderTestSpec {
	if len(selectors) == 0 {
		return specs
	}
	set := map[string]struct{}{}
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s != "" {
			set[strings.ToLower(s)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return specs
	}

	var filtered []renderTestSpec
	for _, spec := range specs {
		if _, ok := set[strings.ToLower(spec.Name)]; ok {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

func runRenderTests(baseDir string, specs []renderTestSpec) error {
	var success, failed int
	for _, spec := range specs {
		fmt.Printf("Running case: %s\n", spec.Name)
		if err := runRenderCase(baseDir, spec); err != nil {
			failed++
			fmt.Printf("\033[31m  %v\033[0m\n", err)
			continue
		}
		success++
		fmt.Printf("\033[32m  ok\033[0m\n")
	}
	fmt.Printf("Ran %d cases: %d succeeded, %d failed\n", len(specs), success, failed)
	if failed > 0 {
		return fmt.Errorf("%d cases failed", failed)
	}
	return nil
}

func runRenderCase(baseDir string, spec renderTestSpec) error {
	source := spec.Template
	if spec.TemplateFile != "" {
		b, err := os.ReadFile(filepath.Join(baseDir, spec.TemplateFile))
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		source = string(b)
	}

	ctx, err := spec.buildContext(baseDir)
	if err != nil {
		return err
	}

	out, err := liquid.TemplateString(source).Render(ctx)
	if spec.WantError != "" {
		if err == nil {
			return fmt.Errorf("expected error containing %q, got none", spec.WantError)
		}
		if !strings.Contains(err.Error(), spec.WantError) {
			return fmt.Errorf("expected error containing %q, got: %v", spec.WantError, err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	expect := spec.Expect
	if spec.ExpectFile != "" {
		b, err := os.ReadFile(filepath.Join(baseDir, spec.ExpectFile))
		if err != nil {
			return fmt.Errorf("reading expected output: %w", err)
		}
		expect = string(b)
	}
	if out != expect {
		return fmt.Errorf("output mismatch:\n--- want ---\n%s\n--- got ---\n%s", expect, out)
	}
	return nil
}

func (s renderTestSpec) buildContext(baseDir string) (liquid.Context, error) {
	ctx := liquid.Context{}
	if s.Data != nil {
		var err error
		ctx, err = s.Data.toContext(baseDir)
		if err != nil {
			return nil, err
		}
	}
	if s.Script != "" {
		eval := starlark.NewContextEvaluator(ctx)
		eval.LoadContext(ctx)
		if _, err := eval.ExecString(s.Script); err != nil {
			return nil, err
		}
		for k, v := range eval.ExportContext() {
			ctx[k] = v
		}
	}
	return ctx, nil
}

func init() {
	rootCmd.AddCommand(&renderTestsCmd)
}
