// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the five tables and the indexed fields queries may filter or order by.
package storage

// Table names a persisted table.
type Table string

const (
	TableExercises       Table = "exercises"
	TableTemplates       Table = "workout_templates"
	TableWorkouts        Table = "workouts"
	TablePersonalRecords Table = "personal_records"
	TableBodyMetrics     Table = "body_metrics"
)

// AllTables lists every table in creation order.
var AllTables = []Table{TableExercises, TableTemplates, TableWorkouts, TablePersonalRecords, TableBodyMetrics}

// indexedColumns are the fields a Query may use for Where or OrderBy.
// "id" is always allowed.
var indexedColumns = map[Table][]string{
	TableExercises:       {"name", "category"},
	TableTemplates:       {"name", "created_at"},
	TableWorkouts:        {"date", "template_id"},
	TablePersonalRecords: {"exercise_id", "date"},
	TableBodyMetrics:     {"date"},
}

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		muscle_group TEXT NOT NULL,
		equipment TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		exercises TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		duration INTEGER NOT NULL DEFAULT 0,
		exercises TEXT NOT NULL DEFAULT '[]',
		total_volume REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS personal_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER NOT NULL,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS body_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		weight REAL NOT NULL,
		body_fat REAL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name);
	CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category);
	CREATE INDEX IF NOT EXISTS idx_templates_name ON workout_templates(name);
	CREATE INDEX IF NOT EXISTS idx_templates_created ON workout_templates(created_at);
	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);
	CREATE INDEX IF NOT EXISTS idx_workouts_template ON workouts(template_id);
	CREATE INDEX IF NOT EXISTS idx_records_exercise ON personal_records(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_records_date ON personal_records(date);
	CREATE INDEX IF NOT EXISTS idx_body_metrics_date ON body_metrics(date);
	`

	_, err := d.db.Exec(schema)
	return err
}
