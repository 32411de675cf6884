package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/teamsynth/internal/database"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func yamlAnswers(n int, v int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "q%d: %d\n", i, v)
	}
	return b.String()
}

func TestScoreCommand(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		framework string
		wantErr   string
	}{
		{
			name:      "yaml answers",
			file:      "disc.yaml",
			content:   yamlAnswers(12, 4),
			framework: "disc",
		},
		{
			name:      "yaml with numeric question ids",
			file:      "disc.yml",
			content:   "1: 4\n2: 5\n3: 3\n4: 4\n5: 2\n6: 4\n7: 5\n8: 1\n9: 4\n10: 3\n11: 4\n12: 5\n",
			framework: "disc",
		},
		{
			name:      "json answers",
			file:      "mbti.json",
			content:   `{"q1": 4, "q2": 2, "q3": 5, "q4": 1, "q5": 4, "q6": 3, "q7": 4, "q8": 2, "q9": 5, "q10": 1, "q11": 4, "q12": 3, "q13": 4, "q14": 2, "q15": 5, "q16": 1, "q17": 4, "q18": 3, "q19": 4, "q20": 2}`,
			framework: "mbti",
		},
		{
			name:      "too few answers",
			file:      "short.yaml",
			content:   yamlAnswers(3, 4),
			framework: "disc",
			wantErr:   "VALIDATION_ERROR",
		},
		{
			name:      "unknown framework",
			file:      "x.yaml",
			content:   yamlAnswers(3, 4),
			framework: "horoscope",
			wantErr:   "framework",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			out, err := run(t, "score", "--framework", tt.framework, "-f", path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var res scoring.Result
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, scoring.Framework(tt.framework), res.Framework)
			assert.NotEmpty(t, res.Label)
		})
	}
}

func TestScoreCommand_RequiresFile(t *testing.T) {
	_, err := run(t, "score", "--framework", "disc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestFrameworksCommand(t *testing.T) {
	out, err := run(t, "frameworks")
	require.NoError(t, err)

	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, len(scoring.Frameworks))
}

func TestSynthesizeCommand(t *testing.T) {
	path := writeFile(t, "alice.yaml", "subject_id: alice\nassessments:\n  big_five:\n"+indent(yamlAnswers(25, 4), "    "))

	out, err := run(t, "synthesize", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"frameworks_used": [`)
	assert.Contains(t, out, `"big_five"`)

	_, err = run(t, "synthesize", "-f", path, "--persist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--data-dir")
}

func TestTeamCommand_Persist(t *testing.T) {
	var b strings.Builder
	b.WriteString("team_id: core\nmembers:\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "  - member_id: m%d\n    assessments:\n      big_five:\n", i)
		b.WriteString(indent(yamlAnswers(25, 1+i), "        "))
	}
	path := writeFile(t, "team.yaml", b.String())
	dataDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "reports", "core.json")

	_, err := run(t, "team", "-f", path, "--persist", "--data-dir", dataDir, "-o", outFile)
	require.NoError(t, err)

	written, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(written, &resp))
	assert.Len(t, resp["members"], 3)

	db, err := database.NewDB(dataDir)
	require.NoError(t, err)
	defer db.Close()

	rec, err := database.NewRepository(db).LatestTeamReport(context.Background(), "core")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Report.TeamSize)
}

func TestReadInput_StdinYAML(t *testing.T) {
	var answers scoring.AnswerSet
	require.NoError(t, readInput("-", strings.NewReader("q1: 4\nq2: skip\nq3: true\n"), &answers))

	assert.Equal(t, float64(4), answers["q1"])
	assert.Equal(t, "skip", answers["q2"])
	assert.Equal(t, true, answers["q3"])
}

func TestReadInput_StdinJSON(t *testing.T) {
	var answers scoring.AnswerSet
	require.NoError(t, readInput("-", strings.NewReader(`{"q1": 2}`), &answers))
	assert.Equal(t, float64(2), answers["q1"])

	err := readInput(filepath.Join(t.TempDir(), "missing.json"), nil, &answers)
	assert.Error(t, err)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
