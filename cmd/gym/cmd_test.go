// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temp database selected through GYM_DATA_DIR.
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "date and time with space", input: "2025-01-31 08:30"},
		{name: "date and time with T", input: "2025-01-31T08:30"},
		{name: "date only", input: "2025-01-31"},
		{name: "RFC3339", input: "2025-01-31T08:30:00Z"},
		{name: "RFC3339 with offset", input: "2025-01-31T08:30:00+05:00"},
		{name: "invalid format", input: "31-01-2025", wantErr: true},
		{name: "invalid random string", input: "not a date", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseTimeIsLocal(t *testing.T) {
	got, err := parseTime("2025-01-31 08:30")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if got.Location() != time.Local || got.Hour() != 8 {
		t.Errorf("parseTime = %v, want 08:30 local", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 6, "abcdef"},
		{"abcdefgh", 6, "abcdefgh"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("14"); err != nil || id != 14 {
		t.Errorf("parseID(14) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-3", "abc", "1.5", ""} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) expected error", bad)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	tests := map[float64]string{
		225:    "225",
		102.5:  "102.5",
		0:      "0",
		3250.0: "3250",
	}
	for in, want := range tests {
		if got := formatWeight(in); got != want {
			t.Errorf("formatWeight(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSetSpec(t *testing.T) {
	tests := []struct {
		input   string
		want    setSpec
		wantErr bool
	}{
		{input: "1:225:5", want: setSpec{exercise: 0, weight: 225, reps: 5}},
		{input: "3:102.5:8", want: setSpec{exercise: 2, weight: 102.5, reps: 8}},
		{input: "2:0:12", want: setSpec{exercise: 1, weight: 0, reps: 12}},
		{input: "1:225", wantErr: true},
		{input: "0:225:5", wantErr: true},
		{input: "x:225:5", wantErr: true},
		{input: "1:heavy:5", wantErr: true},
		{input: "1:225:five", wantErr: true},
		{input: "1:225:5:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseSetSpec(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSetSpec(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSetSpec(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseSetSpec(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "gym" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gym")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Expected --verbose persistent flag")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"exercise", "template", "workout", "pr", "body", "dashboard",
		"export", "import", "mcp", "seed", "backup"}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}
}

func TestWorkoutCmdSubcommands(t *testing.T) {
	expected := []string{"start", "log", "list", "show"}

	names := make(map[string]bool)
	for _, c := range workoutCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("Expected workout subcommand %q", name)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		alias string
	}{
		{exerciseCmd, "ex"},
		{templateCmd, "t"},
		{workoutCmd, "w"},
		{workoutListCmd, "ls"},
		{dashboardCmd, "dash"},
	}
	for _, tt := range tests {
		found := false
		for _, a := range tt.cmd.Aliases {
			if a == tt.alias {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected alias %q on %s", tt.alias, tt.cmd.Name())
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		flag string
		want string
	}{
		{workoutListCmd, "limit", "20"},
		{workoutListCmd, "period", "all"},
		{prListCmd, "limit", "20"},
		{bodyListCmd, "limit", "20"},
		{exportCmd, "output", ""},
		{exerciseListCmd, "category", ""},
	}
	for _, tt := range tests {
		f := tt.cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("Expected --%s flag on %s", tt.flag, tt.cmd.Name())
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("%s --%s default = %q, want %q", tt.cmd.Name(), tt.flag, f.DefValue, tt.want)
		}
	}
}

func TestArgsValidators(t *testing.T) {
	for _, c := range []*cobra.Command{exerciseAddCmd, templateShowCmd, templateCreateCmd,
		workoutStartCmd, workoutLogCmd, workoutShowCmd, prAddCmd, bodyAddCmd,
		exportCmd, importCmd, backupCmd} {
		if c.Args == nil {
			t.Errorf("Expected %s to have Args validator", c.CommandPath())
		}
	}
}

// setupTestCLI points the CLI at an empty temp data directory and config
// home. It returns the data directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataDir := t.TempDir()
	t.Setenv(config.DataDirEnv, dataDir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { _ = closeAll() })

	return dataDir
}

// runCLI executes the root command with fresh flag values.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails
	_ = closeAll()
	return err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// openTestDB opens the CLI's database for verification.
func openTestDB(t *testing.T, dataDir string) *storage.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(dataDir, config.DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeConfig(t *testing.T, cfg string) {
	t.Helper()

	path := config.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(cfg), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestFirstRunSeeds(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := runCLI(t, "exercise", "list"); err != nil {
		t.Fatalf("exercise list failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	ctx := context.Background()
	n, err := db.CountExercises(ctx)
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	if n != 20 {
		t.Errorf("Expected 20 seeded exercises, got %d", n)
	}
	templates, err := db.ListTemplates(ctx, storage.All())
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != 3 {
		t.Errorf("Expected 3 seeded templates, got %d", len(templates))
	}
}

func TestSeedCmdIsIdempotent(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := runCLI(t, "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := runCLI(t, "seed"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	n, err := openTestDB(t, dataDir).CountExercises(context.Background())
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	if n != 20 {
		t.Errorf("Expected 20 exercises after two seeds, got %d", n)
	}
}

func TestExerciseListFilters(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{
		{"exercise", "list", "--category", "legs"},
		{"exercise", "list", "--category", "All"},
		{"exercise", "list", "--search", "chest"},
		{"ex", "ls", "-s", "nothing matches this"},
	} {
		if err := runCLI(t, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}

	if err := runCLI(t, "exercise", "list", "--category", "cardio"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestExerciseAdd(t *testing.T) {
	dataDir := setupTestCLI(t)

	err := runCLI(t, "exercise", "add", "Hip Thrust",
		"--category", "legs", "--muscle", "Glutes", "--equipment", "Barbell")
	if err != nil {
		t.Fatalf("exercise add failed: %v", err)
	}

	exercises, err := openTestDB(t, dataDir).ListExercises(context.Background(), storage.WhereEquals("name", "Hip Thrust"))
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 1 {
		t.Fatalf("Expected 1 Hip Thrust, got %d", len(exercises))
	}
	if exercises[0].Category != "Legs" || exercises[0].MuscleGroup != "Glutes" {
		t.Errorf("Unexpected exercise: %+v", exercises[0])
	}
}

func TestExerciseAddValidation(t *testing.T) {
	dataDir := setupTestCLI(t)

	tests := [][]string{
		{"exercise", "add", "Row", "--category", "pull", "--equipment", "Cable"},
		{"exercise", "add", "Row", "--category", "pull", "--muscle", "Back"},
		{"exercise", "add", "  ", "--category", "pull", "--muscle", "Back", "--equipment", "Cable"},
		{"exercise", "add", "Run", "--category", "cardio", "--muscle", "Legs", "--equipment", "None"},
		{"exercise", "add", "Row", "--muscle", "Back", "--equipment", "Cable"},
	}
	for _, args := range tests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	n, err := openTestDB(t, dataDir).CountExercises(context.Background())
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	if n != 20 {
		t.Errorf("Invalid exercises were stored: %d exercises", n)
	}
}

func TestTemplateCreateKeepsUnknownIDs(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := runCLI(t, "template", "create", "Upper", "1", "999", "8"); err != nil {
		t.Fatalf("template create failed: %v", err)
	}

	templates, err := openTestDB(t, dataDir).ListTemplates(context.Background(), storage.WhereEquals("name", "Upper"))
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("Expected 1 template, got %d", len(templates))
	}
	want := []int64{1, 999, 8}
	got := templates[0].ExerciseIDs
	if len(got) != len(want) {
		t.Fatalf("ExerciseIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExerciseIDs = %v, want %v", got, want)
			break
		}
	}

	if err := runCLI(t, "template", "show", "4"); err != nil {
		t.Errorf("template show failed: %v", err)
	}
}

func TestTemplateCmdErrors(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "template", "show", "42"); err == nil {
		t.Error("Expected error for missing template")
	}
	if err := runCLI(t, "template", "create", "Bad", "one"); err == nil {
		t.Error("Expected error for non-numeric exercise id")
	}
	if err := runCLI(t, "template", "create", "", "1"); err == nil {
		t.Error("Expected error for empty template name")
	}
	if err := runCLI(t, "template", "list"); err != nil {
		t.Errorf("template list failed: %v", err)
	}
}

func TestWorkoutLog(t *testing.T) {
	dataDir := setupTestCLI(t)

	err := runCLI(t, "workout", "log", "3",
		"--set", "1:225:5", "--set", "1:225:5", "--set", "2:100:10",
		"--at", "2025-01-31 18:30")
	if err != nil {
		t.Fatalf("workout log failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	ctx := context.Background()
	workouts, err := db.ListWorkouts(ctx, storage.All())
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.Name != "Leg Day" {
		t.Errorf("Name = %q, want Leg Day", w.Name)
	}
	if w.TemplateID == nil || *w.TemplateID != 3 {
		t.Errorf("TemplateID = %v, want 3", w.TemplateID)
	}
	if w.TotalVolume != 3250 {
		t.Errorf("TotalVolume = %v, want 3250", w.TotalVolume)
	}
	if len(w.Exercises) != 5 {
		t.Fatalf("Expected 5 exercises, got %d", len(w.Exercises))
	}
	if len(w.Exercises[0].Sets) != 2 || len(w.Exercises[1].Sets) != 1 {
		t.Errorf("Unexpected set counts: %d, %d", len(w.Exercises[0].Sets), len(w.Exercises[1].Sets))
	}
	if s := w.Exercises[2].Sets; len(s) != 1 || s[0].Completed {
		t.Errorf("Untouched exercise should keep one open set, got %+v", s)
	}
	want := time.Date(2025, 1, 31, 18, 30, 0, 0, time.Local)
	if !w.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", w.Date, want)
	}

	prs, err := db.ListPersonalRecords(ctx, storage.All())
	if err != nil {
		t.Fatalf("ListPersonalRecords failed: %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("Expected 2 derived records, got %d", len(prs))
	}
	tpl, err := db.GetTemplate(ctx, 3)
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	byExercise := map[int64]float64{}
	for _, pr := range prs {
		byExercise[pr.ExerciseID] = pr.Weight
	}
	if byExercise[tpl.ExerciseIDs[0]] != 225 || byExercise[tpl.ExerciseIDs[1]] != 100 {
		t.Errorf("Unexpected records: %v", byExercise)
	}

	if err := runCLI(t, "workout", "show", "1"); err != nil {
		t.Errorf("workout show failed: %v", err)
	}
}

func TestWorkoutLogDeriveRecordsDisabled(t *testing.T) {
	dataDir := setupTestCLI(t)
	writeConfig(t, `{"derive_records": false}`)

	if err := runCLI(t, "workout", "log", "1", "--set", "1:135:10"); err != nil {
		t.Fatalf("workout log failed: %v", err)
	}

	prs, err := openTestDB(t, dataDir).ListPersonalRecords(context.Background(), storage.All())
	if err != nil {
		t.Fatalf("ListPersonalRecords failed: %v", err)
	}
	if len(prs) != 0 {
		t.Errorf("Expected no derived records, got %d", len(prs))
	}
}

func TestWorkoutLogRejectsBadSets(t *testing.T) {
	dataDir := setupTestCLI(t)

	tests := [][]string{
		{"workout", "log", "1", "--set", "9:100:5"},
		{"workout", "log", "1", "--set", "1:-5:5"},
		{"workout", "log", "1", "--set", "1:100:5.5"},
		{"workout", "log", "1", "--set", "1:100"},
		{"workout", "log", "42", "--set", "1:100:5"},
		{"workout", "log", "1", "--at", "yesterday"},
	}
	for _, args := range tests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	workouts, err := openTestDB(t, dataDir).ListWorkouts(context.Background(), storage.All())
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("Rejected logs stored %d workouts", len(workouts))
	}
}

func TestWorkoutList(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "workout", "list"); err != nil {
		t.Errorf("workout list on empty db failed: %v", err)
	}
	if err := runCLI(t, "workout", "log", "2", "--set", "1:95:8"); err != nil {
		t.Fatalf("workout log failed: %v", err)
	}
	for _, period := range []string{"all", "week", "month", "year"} {
		if err := runCLI(t, "workout", "list", "--period", period, "--limit", "1"); err != nil {
			t.Errorf("workout list --period %s failed: %v", period, err)
		}
	}
	if err := runCLI(t, "workout", "list", "--period", "decade"); err == nil {
		t.Error("Expected error for unknown period")
	}
	if err := runCLI(t, "workout", "show", "99"); err == nil {
		t.Error("Expected error for missing workout")
	}
}

func TestPRAdd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := runCLI(t, "pr", "add", "14", "315", "3", "--at", "2025-01-15"); err != nil {
		t.Fatalf("pr add failed: %v", err)
	}

	prs, err := openTestDB(t, dataDir).ListPersonalRecords(context.Background(), storage.All())
	if err != nil {
		t.Fatalf("ListPersonalRecords failed: %v", err)
	}
	if len(prs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(prs))
	}
	if prs[0].ExerciseID != 14 || prs[0].Weight != 315 || prs[0].Reps != 3 {
		t.Errorf("Unexpected record: %+v", prs[0])
	}
	if prs[0].Date.Local().Format("2006-01-02") != "2025-01-15" {
		t.Errorf("Date = %v, want 2025-01-15", prs[0].Date)
	}

	if err := runCLI(t, "pr", "list"); err != nil {
		t.Errorf("pr list failed: %v", err)
	}
}

func TestPRAddErrors(t *testing.T) {
	setupTestCLI(t)

	tests := [][]string{
		{"pr", "add", "999", "100", "5"},
		{"pr", "add", "1", "heavy", "5"},
		{"pr", "add", "1", "100", "-1"},
		{"pr", "add", "1", "NaN", "5"},
		{"pr", "add", "1", "100"},
	}
	for _, args := range tests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestBodyAdd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := runCLI(t, "body", "add", "181", "--body-fat", "17.5"); err != nil {
		t.Fatalf("body add failed: %v", err)
	}
	if err := runCLI(t, "body", "add", "180.2"); err != nil {
		t.Fatalf("body add without body fat failed: %v", err)
	}

	metrics, err := openTestDB(t, dataDir).ListBodyMetrics(context.Background(), storage.All())
	if err != nil {
		t.Fatalf("ListBodyMetrics failed: %v", err)
	}
	if len(metrics) != 2 {
		t.Fatalf("Expected 2 metrics, got %d", len(metrics))
	}
	if metrics[0].BodyFat == nil || *metrics[0].BodyFat != 17.5 {
		t.Errorf("BodyFat = %v, want 17.5", metrics[0].BodyFat)
	}
	if metrics[1].BodyFat != nil {
		t.Errorf("BodyFat = %v, want nil", *metrics[1].BodyFat)
	}

	if err := runCLI(t, "body", "list"); err != nil {
		t.Errorf("body list failed: %v", err)
	}
	if err := runCLI(t, "body", "add", "0"); err == nil {
		t.Error("Expected error for zero weight")
	}
	if err := runCLI(t, "body", "add", "180", "--body-fat", "120"); err == nil {
		t.Error("Expected error for body fat over 100")
	}
}

func TestDashboardCmd(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "dashboard"); err != nil {
		t.Errorf("dashboard on fresh db failed: %v", err)
	}
	if err := runCLI(t, "workout", "log", "1", "--set", "1:135:10"); err != nil {
		t.Fatalf("workout log failed: %v", err)
	}
	if err := runCLI(t, "dash"); err != nil {
		t.Errorf("dashboard failed: %v", err)
	}
}

func TestExportFormats(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{
		{"export", "json"},
		{"export", "yaml"},
		{"export", "markdown"},
		{"export", "markdown", "--since", "2025-01-01"},
	} {
		if err := runCLI(t, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}

	if err := runCLI(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := runCLI(t, "export", "markdown", "--since", "Jan 1"); err == nil {
		t.Error("Expected error for bad --since date")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "workout", "log", "1", "--set", "1:135:10"); err != nil {
		t.Fatalf("workout log failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "backup.json")
	if err := runCLI(t, "export", "json", "-o", out); err != nil {
		t.Fatalf("export json failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(data.Exercises) != 20 || len(data.Workouts) != 1 {
		t.Errorf("Export has %d exercises and %d workouts", len(data.Exercises), len(data.Workouts))
	}

	// Import into a second, empty data directory
	fresh := t.TempDir()
	t.Setenv(config.DataDirEnv, fresh)
	if err := runCLI(t, "import", out); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	db := openTestDB(t, fresh)
	ctx := context.Background()
	n, err := db.CountExercises(ctx)
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	if n != 20 {
		t.Errorf("Expected 20 imported exercises, got %d", n)
	}
	w, err := db.GetWorkout(ctx, data.Workouts[0].ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if w.TotalVolume != 1350 {
		t.Errorf("TotalVolume = %v, want 1350", w.TotalVolume)
	}
}

func TestImportCmdErrors(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "import", "/nonexistent/file.json"); err == nil {
		t.Error("Expected error for non-existent file")
	}

	bad := filepath.Join(t.TempDir(), "invalid.json")
	if err := os.WriteFile(bad, []byte("not valid json"), 0600); err != nil {
		t.Fatalf("Failed to write import file: %v", err)
	}
	if err := runCLI(t, "import", bad); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestBackupCmd(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI(t, "body", "add", "180"); err != nil {
		t.Fatalf("body add failed: %v", err)
	}

	target := filepath.Join(t.TempDir(), "nested", "gym-backup.db")
	if err := runCLI(t, "backup", target); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	backup, err := storage.Open(target)
	if err != nil {
		t.Fatalf("Failed to open backup: %v", err)
	}
	ctx := context.Background()
	n, err := backup.CountExercises(ctx)
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	metrics, err := backup.ListBodyMetrics(ctx, storage.All())
	if err != nil {
		t.Fatalf("ListBodyMetrics failed: %v", err)
	}
	_ = backup.Close()
	if n != 20 || len(metrics) != 1 {
		t.Errorf("Backup has %d exercises and %d body metrics", n, len(metrics))
	}

	if err := runCLI(t, "backup", target); err == nil {
		t.Error("Expected error when backing up over existing data")
	}
}
