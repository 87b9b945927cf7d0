package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/service"
	"alcyxob/fitplan/internal/validation"

	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands.
type App struct {
	Assessor  service.AssessmentCalculator
	Generator service.PlanGenerator
}

// NewApp wires the default calculators.
func NewApp() *App {
	return &App{
		Assessor:  service.NewAssessmentCalculator(),
		Generator: service.NewPlanGenerator(),
	}
}

// NewRootCmd creates the top-level "fitplanctl" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitplanctl",
		Short:         "Inspect the intake questionnaire and preview assessments and plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newQuestionsCmd(),
		newSchemaCmd(),
		newAssessCmd(app),
		newPlansCmd(app),
	)

	return root
}

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Print the intake questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), domain.Questions)
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of an answer file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), validation.AnswerSetSchema())
		},
	}
}

type identityFlags struct {
	name, phone, email string
}

func (f *identityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name used in the summary")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
}

func (f *identityFlags) identity() domain.Identity {
	return domain.Identity{Name: f.name, Phone: f.phone, Email: f.email}
}

func newAssessCmd(app *App) *cobra.Command {
	var flags identityFlags

	cmd := &cobra.Command{
		Use:   "assess <answers.json>",
		Short: "Compute the assessment for a completed answer file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(args[0])
			if err != nil {
				return err
			}
			assessment, err := app.Assessor.Calculate(flags.identity(), answers)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), assessment)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPlansCmd(app *App) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "plans <answers.json>",
		Short: "Generate the twelve monthly plans for a completed answer file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(args[0])
			if err != nil {
				return err
			}
			plans, err := app.Generator.Generate(answers)
			if err != nil {
				return err
			}
			if month == 0 {
				return writeJSON(cmd.OutOrStdout(), plans)
			}
			if month < 1 || month > len(plans) {
				return fmt.Errorf("%w: %d", service.ErrMonthOutOfRange, month)
			}
			return writeJSON(cmd.OutOrStdout(), plans[month-1])
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Print only this month (1-12)")
	return cmd
}

// readAnswers loads an answer file, checks it against the answer schema and
// replays every value through AnswerSet.Set.
func readAnswers(path string) (domain.AnswerSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.AnswerSet{}, fmt.Errorf("reading answers: %w", err)
	}
	if err := validation.ValidateAnswerSet(raw); err != nil {
		return domain.AnswerSet{}, err
	}
	var decoded domain.AnswerSet
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.AnswerSet{}, fmt.Errorf("parsing answers: %w", err)
	}

	var answers domain.AnswerSet
	for _, q := range domain.Questions {
		values := decoded.Values(q.ID)
		if len(values) == 0 {
			continue
		}
		if err := answers.Set(q.ID, values...); err != nil {
			return domain.AnswerSet{}, fmt.Errorf("%s: %w", q.ID, err)
		}
	}
	return answers, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
