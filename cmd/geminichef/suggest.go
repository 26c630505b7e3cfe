package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hammamikhairi/geminichef/internal/display"
	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/engine"
	"github.com/hammamikhairi/geminichef/internal/input"
	"github.com/hammamikhairi/geminichef/internal/serializer"
)

// errGenerationFailed makes the process exit non-zero after the failure
// has been written out.
var errGenerationFailed = errors.New(domain.MsgGenerationFailed)

// suggestion is the document written by the suggest command.
type suggestion struct {
	Ingredients []string        `json:"ingredients" yaml:"ingredients"`
	MealTime    domain.MealTime `json:"mealTime" yaml:"mealTime"`
	Recipes     []domain.Recipe `json:"recipes" yaml:"recipes"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`

	width int
}

// Text renders the suggestion the way the terminal UI shows results.
func (s suggestion) Text() string {
	st := domain.Succeed(0, s.Recipes)
	if s.Error != "" {
		st = domain.Fail(0, s.Error)
	}
	return display.Render(st, s.width)
}

func suggestCmd() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest recipes once and print them",
		Description: `Sends one request for the given ingredients and meal time and prints
the validated recipes. The exit status is non-zero when the input is
empty or the generation fails.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ingredients",
				Aliases:  []string{"i"},
				Usage:    "comma-separated ingredients, e.g. \"달걀, 대파, 두부\"",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "meal",
				Aliases: []string{"m"},
				Value:   string(domain.DefaultMealTime),
				Usage:   "meal time (아침/점심/저녁 or breakfast/lunch/dinner)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: string(serializer.FormatText),
				Usage: fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to this file instead of stdout",
			},
		},
		Action: runSuggest,
	}
}

func runSuggest(ctx context.Context, cmd *cli.Command) error {
	format, err := serializer.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	meal, err := input.ParseMealTime(cmd.String("meal"))
	if err != nil {
		return err
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	raw := cmd.String("ingredients")
	if err := rt.engine.Generate(ctx, raw, meal); err != nil {
		var f *domain.Failure
		if errors.As(err, &f) {
			rt.log.Warn("suggest: %v", f)
			return errors.New(f.Message())
		}
		return err
	}

	st, err := rt.engine.State(ctx)
	if err != nil {
		return err
	}

	out := suggestion{
		Ingredients: engine.NormalizeIngredients(raw),
		MealTime:    meal,
		Recipes:     st.Recipes,
		Error:       st.Error,
		width:       80,
	}

	path := cmd.String("output")
	if path == "" && format == serializer.FormatText {
		out.width = display.TermWidth(os.Stdout)
		if display.IsTerminal(os.Stdout) {
			fmt.Fprint(cmd.Root().Writer, display.RenderBanner(out.width))
		}
	}

	var w *serializer.Writer
	if path == "" {
		w = serializer.NewWriter(format, cmd.Root().Writer)
	} else if w, err = serializer.NewFileWriterOrStdout(format, path); err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			rt.log.Warn("failed to close output: %v", err)
		}
	}()

	if err := w.Serialize(out); err != nil {
		return err
	}
	if st.HasError() {
		return errGenerationFailed
	}
	return nil
}
