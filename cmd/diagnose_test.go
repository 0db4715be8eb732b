package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/questionnaire"
)

func parseDiagnose(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "diagnose"}
	diagnoseFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestDiagnoseInputFromFlags(t *testing.T) {
	c := parseDiagnose(t,
		"--industry", "製造",
		"--occupation", "管理職",
		"--experience", "20",
		"--skill", "経営・マネジメント",
		"--answer", "q1=a",
		"--answer", " Q2 = B ",
	)

	in, err := diagnoseInput(c)
	require.NoError(t, err)
	assert.Equal(t, "製造", in.Profile.Industry)
	assert.Equal(t, "管理職", in.Profile.Occupation)
	assert.Equal(t, 20, in.Profile.ExperienceYears)
	assert.Equal(t, []string{"経営・マネジメント"}, in.Profile.Skills)
	assert.Equal(t, map[string]string{"q1": "A", "q2": "B"}, in.Answers)
}

func TestDiagnoseInputDefaultExperience(t *testing.T) {
	in, err := diagnoseInput(parseDiagnose(t))
	require.NoError(t, err)
	assert.Equal(t, questionnaire.DefaultExperience, in.Profile.ExperienceYears)
	assert.Empty(t, in.Answers)
}

func TestDiagnoseInputFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	doc := `profile:
  industry: 金融・保険
  occupation: 事務職
  experience_years: 0
  skills: [データ分析]
answers:
  q1: A
  q2: A
  q3: B
  q4: C
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	in, err := diagnoseInput(parseDiagnose(t, "--answers", path, "--answer", "q4=A"))
	require.NoError(t, err)
	assert.Equal(t, "金融・保険", in.Profile.Industry)
	assert.Equal(t, 0, in.Profile.ExperienceYears, "file value kept when flag is unset")
	assert.Equal(t, "A", in.Answers["q4"])
	assert.Equal(t, "B", in.Answers["q3"])
}

func TestDiagnoseInputErrors(t *testing.T) {
	_, err := diagnoseInput(parseDiagnose(t, "--answer", "q1"))
	assert.ErrorContains(t, err, "want q1=A")

	_, err = diagnoseInput(parseDiagnose(t, "--answers", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "read answers file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("answers: [\n"), 0o644))
	_, err = diagnoseInput(parseDiagnose(t, "--answers", bad))
	assert.ErrorContains(t, err, "parse answers file")
}

func TestFillSession(t *testing.T) {
	in := answersFile{
		Profile: questionnaire.Profile{Industry: "製造", Occupation: "管理職", ExperienceYears: 20},
		Answers: map[string]string{"q4": "C", "q1": "A", "q3": "A", "q2": "B"},
	}

	sess := pipeline.NewSession(nil)
	require.NoError(t, fillSession(sess, in))

	answers := sess.Answers()
	assert.True(t, answers.Complete(sess.Catalog()))
	entries := answers.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "q1", entries[0].QuestionID)
	assert.Equal(t, "q4", entries[3].QuestionID)
	profile, ok := sess.Profile()
	require.True(t, ok)
	assert.Equal(t, 20, profile.ExperienceYears)
}

func TestFillSessionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   answersFile
	}{
		{"unknown industry", answersFile{Profile: questionnaire.Profile{Industry: "宇宙"}}},
		{"unknown option", answersFile{Answers: map[string]string{"q1": "Z"}}},
		{"unknown question", answersFile{Answers: map[string]string{"q9": "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, fillSession(pipeline.NewSession(nil), tt.in))
		})
	}
}
