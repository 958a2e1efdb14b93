package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run more
// than once per process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against a database in dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", filepath.Join(dir, "test.db")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func testDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SOULSENSE_DATA_DIR", dir)
	t.Setenv("SOULSENSE_LLM_PROVIDER", "none")
	t.Chdir(dir)
	return dir
}

func TestExamWithAnswers(t *testing.T) {
	dir := testDir(t)
	out, err := run(t, dir, "", "exam", "--name", "Asha", "--count", "10",
		"--answers", "4,4,4,4,4,4,4,4,4,4", "--reflection", "I felt calm and happy")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha: 40 / 40 (100%)")
	assert.Contains(t, out, "Self-awareness")
	assert.Contains(t, out, "Reflection sentiment: +")
	assert.Contains(t, out, "Result saved.")

	out, err = run(t, dir, "", "history", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "40/40")
}

func TestExamAnswerCountMismatch(t *testing.T) {
	dir := testDir(t)
	_, err := run(t, dir, "", "exam", "--name", "Asha", "--count", "5", "--answers", "1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2 answers for 5 questions")
}

func TestExamInvalidName(t *testing.T) {
	dir := testDir(t)
	_, err := run(t, dir, "", "exam", "--name", "  ", "--answers", "1")
	assert.Error(t, err)
}

func TestExamPrompted(t *testing.T) {
	dir := testDir(t)
	// "x" is rejected, "b" goes back, then five answers and a blank reflection
	stdin := "x\n2\nb\n3\n3\n3\n3\n3\n\n"
	out, err := run(t, dir, stdin, "exam", "--name", "Ravi", "--count", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Please answer 1-4.")
	assert.Contains(t, out, "Question 5 of 5")
	assert.Contains(t, out, "Ravi: 15 / 20 (75%)")
	assert.NotContains(t, out, "Reflection sentiment")
}

func TestJournalAddAndList(t *testing.T) {
	dir := testDir(t)
	out, err := run(t, dir, "", "journal", "add", "--user", "Asha",
		"--text", "Grateful for a good day", "--sleep", "7.5", "--energy", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved entry 1.")

	_, err = run(t, dir, "", "journal", "add", "--user", "Asha", "--text", "x", "--quality", "11")
	assert.Error(t, err)

	out, err = run(t, dir, "", "journal", "list", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Grateful for a good day")
}

func TestStatsAndPredict(t *testing.T) {
	dir := testDir(t)
	_, err := run(t, dir, "", "exam", "--name", "Asha", "--count", "10", "--answers", "1,1,1,1,1,1,1,1,1,1")
	require.NoError(t, err)
	_, err = run(t, dir, "", "exam", "--name", "Asha", "--count", "10", "--answers", "2,2,2,2,2,2,2,2,2,2")
	require.NoError(t, err)

	out, err := run(t, dir, "", "stats", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Tests: 2")
	assert.Contains(t, out, "Change since first test: +100.0%")

	out, err = run(t, dir, "", "predict", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Risk level: ")
	assert.Contains(t, out, "Top contributing factors:")
	assert.Contains(t, out, "not a clinical diagnosis")
	assert.FileExists(t, filepath.Join(dir, "risk_model.json"))
}

func TestPredictWithoutScores(t *testing.T) {
	dir := testDir(t)
	_, err := run(t, dir, "", "predict", "--user", "Nobody")
	assert.ErrorContains(t, err, "no assessments")
}

func TestQuestionsListAndImport(t *testing.T) {
	dir := testDir(t)
	out, err := run(t, dir, "", "questions", "list", "--age", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "5-17")

	bank := filepath.Join(dir, "bank.yaml")
	writeFile(t, bank, "questions:\n  - id: 1\n    text: Custom question?\n")
	out, err = run(t, dir, "", "questions", "import", bank)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 questions (version custom).")

	out, err = run(t, dir, "", "questions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Custom question?")
}

func TestSettingsSetAndShow(t *testing.T) {
	dir := testDir(t)
	out, err := run(t, dir, "", "settings", "set", "question_count", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "question_count = 50")

	_, err = run(t, dir, "", "settings", "set", "volume", "3")
	assert.Error(t, err)

	out, err = run(t, dir, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "question_count   50")
	assert.Contains(t, out, filepath.Join(dir, "settings.json"))
}

func TestReset(t *testing.T) {
	dir := testDir(t)
	_, err := run(t, dir, "", "exam", "--name", "Asha", "--count", "5", "--answers", "1,2,3,4,1")
	require.NoError(t, err)

	out, err := run(t, dir, "n\n", "reset", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = run(t, dir, "", "reset", "--user", "Asha", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 scores and 0 journal entries for Asha.")

	out, err = run(t, dir, "", "history", "--user", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "No assessments yet.")
}

func TestLLMListEmpty(t *testing.T) {
	dir := testDir(t)
	out, err := run(t, dir, "", "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	_, err = run(t, dir, "", "llm", "view", "7")
	assert.Error(t, err)
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers(" 1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err = parseAnswers("1,,2")
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
