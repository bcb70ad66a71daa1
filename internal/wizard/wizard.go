package wizard

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// TaskSpec holds the fields collected for one catalog task.
type TaskSpec struct {
	ID             string
	Name           string
	Description    string
	Prompt         string
	ExpectedAnswer string
	Large          bool
}

var idPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidateID checks that an id fits the catalog's id format.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("id must be lowercase letters, digits and underscores")
	}
	return nil
}

const catalogTemplate = `tasks:
  - id: {{ .ID }}
    name: {{ .Name }}
{{- if .Description }}
    description: {{ .Description }}
{{- end }}
{{- if .Large }}
    large: true
{{- end }}
    xl_prompt: {{ .Prompt }}
    xlsx_prompt: {{ .Prompt }}
{{- if .ExpectedAnswer }}
    expected_answer: |-
{{- range .AnswerLines }}
      {{ . }}
{{- end }}
{{- end }}
`

// RunTaskWizard runs an interactive huh form to collect a starter task for
// a new catalog file.
func RunTaskWizard(in io.Reader, out io.Writer) (*TaskSpec, error) {
	var (
		id             string
		name           string
		description    string
		prompt         string
		expectedAnswer string
		large          bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task id").
				Description("A snake_case identifier for the task").
				Placeholder("list_sheets").
				Value(&id).
				Validate(func(s string) error {
					return ValidateID(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Task name").
				Description("A short display name").
				Placeholder("List Sheets").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What the task asks for (optional)").
				Value(&description),
			huh.NewInput().
				Title("Prompt").
				Description("The instruction both approaches receive").
				Placeholder("List all sheets in the Excel file.").
				Value(&prompt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("prompt is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Expected answer").
				Description("Ground truth for grading (leave empty to skip grading context)").
				Value(&expectedAnswer),
			huh.NewConfirm().
				Title("Large-file task?").
				Description("Large tasks only run with --large").
				Value(&large),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &TaskSpec{
		ID:             strings.TrimSpace(id),
		Name:           strings.TrimSpace(name),
		Description:    strings.TrimSpace(description),
		Prompt:         strings.TrimSpace(prompt),
		ExpectedAnswer: strings.TrimSpace(expectedAnswer),
		Large:          large,
	}, nil
}

// GenerateCatalogYAML renders a starter catalog file from the given spec.
func GenerateCatalogYAML(spec *TaskSpec) (string, error) {
	tmpl, err := template.New("catalog").Parse(catalogTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		*TaskSpec
		AnswerLines []string
	}{TaskSpec: spec}
	if spec.ExpectedAnswer != "" {
		data.AnswerLines = strings.Split(spec.ExpectedAnswer, "\n")
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
