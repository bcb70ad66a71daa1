package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTasksBytes(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErrs bool
	}{
		{
			name: "valid catalog",
			yaml: `tasks:
  - id: sum_col
    name: Sum Column
    xl_prompt: sum it with xl
    xlsx_prompt: sum it with openpyxl
`,
		},
		{
			name: "valid with options",
			yaml: `tasks:
  - id: big_task
    name: Big Task
    xl_prompt: p
    xlsx_prompt: p
    large: true
    options:
      max_tokens: 4096
`,
		},
		{
			name: "uppercase id rejected",
			yaml: `tasks:
  - id: SumCol
    name: Sum
    xl_prompt: p
    xlsx_prompt: p
`,
			wantErrs: true,
		},
		{
			name: "missing xlsx_prompt",
			yaml: `tasks:
  - id: sum_col
    name: Sum
    xl_prompt: p
`,
			wantErrs: true,
		},
		{
			name: "unknown task field",
			yaml: `tasks:
  - id: sum_col
    name: Sum
    xl_prompt: p
    xlsx_prompt: p
    retries: 3
`,
			wantErrs: true,
		},
		{
			name: "non-integer max_tokens",
			yaml: `tasks:
  - id: sum_col
    name: Sum
    xl_prompt: p
    xlsx_prompt: p
    options:
      max_tokens: lots
`,
			wantErrs: true,
		},
		{
			name:     "empty task list",
			yaml:     "tasks: []\n",
			wantErrs: true,
		},
		{
			name:     "malformed yaml",
			yaml:     "tasks: [\n",
			wantErrs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTasksBytes([]byte(tt.yaml))
			if tt.wantErrs {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateGradeBytes(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantErrs bool
	}{
		{
			name: "valid verdict",
			json: `{"grade": "B", "reason": "mostly correct"}`,
		},
		{
			name:     "grade outside the scale",
			json:     `{"grade": "E", "reason": "?"}`,
			wantErrs: true,
		},
		{
			name:     "question mark is not a judge grade",
			json:     `{"grade": "?", "reason": "failed"}`,
			wantErrs: true,
		},
		{
			name:     "missing reason",
			json:     `{"grade": "A"}`,
			wantErrs: true,
		},
		{
			name:     "extra field",
			json:     `{"grade": "A", "reason": "ok", "confidence": 0.9}`,
			wantErrs: true,
		},
		{
			name:     "not json",
			json:     `grade: A`,
			wantErrs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateGradeBytes([]byte(tt.json))
			if tt.wantErrs {
				require.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
