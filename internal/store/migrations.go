package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT '',
	archived    INTEGER NOT NULL DEFAULT 0 CHECK(archived IN (0, 1)),
	user_id     TEXT NOT NULL REFERENCES users(id),
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'todo'
		CHECK(status IN ('todo', 'in_progress', 'completed', 'cancelled')),
	priority     TEXT NOT NULL DEFAULT 'medium'
		CHECK(priority IN ('low', 'medium', 'high')),
	project_id   TEXT REFERENCES projects(id) ON DELETE SET NULL,
	due_date     DATETIME,
	user_id      TEXT NOT NULL REFERENCES users(id),
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL,
	completed_at DATETIME,
	deleted_at   DATETIME
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_deleted_at ON tasks(deleted_at);
CREATE INDEX IF NOT EXISTS idx_tasks_completed_at ON tasks(completed_at);

CREATE TABLE IF NOT EXISTS subtasks (
	id         TEXT PRIMARY KEY,
	task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	done       INTEGER NOT NULL DEFAULT 0 CHECK(done IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);

CREATE TABLE IF NOT EXISTS reminders (
	id            TEXT PRIMARY KEY,
	task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	fire_at       DATETIME NOT NULL,
	repeat_rule   TEXT NOT NULL DEFAULT '',
	last_fired_at DATETIME,
	enabled       INTEGER NOT NULL DEFAULT 1 CHECK(enabled IN (0, 1)),
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reminders_task_id ON reminders(task_id);
CREATE INDEX IF NOT EXISTS idx_reminders_fire_at ON reminders(fire_at);

CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	task_id    TEXT REFERENCES tasks(id) ON DELETE CASCADE,
	project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK(task_id IS NULL OR project_id IS NULL)
);

CREATE INDEX IF NOT EXISTS idx_notes_task_id ON notes(task_id);
CREATE INDEX IF NOT EXISTS idx_notes_project_id ON notes(project_id);

CREATE TABLE IF NOT EXISTS attachments (
	id         TEXT PRIMARY KEY,
	task_id    TEXT REFERENCES tasks(id) ON DELETE CASCADE,
	project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
	uri        TEXT NOT NULL,
	type       TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	size_bytes INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK(task_id IS NULL OR project_id IS NULL)
);

CREATE INDEX IF NOT EXISTS idx_attachments_task_id ON attachments(task_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS user_stats (
	user_id             TEXT PRIMARY KEY REFERENCES users(id),
	current_streak      INTEGER NOT NULL DEFAULT 0,
	longest_streak      INTEGER NOT NULL DEFAULT 0,
	last_activity_date  TEXT,
	total_completed     INTEGER NOT NULL DEFAULT 0,
	total_focus_seconds INTEGER NOT NULL DEFAULT 0,
	updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stats_snapshots (
	date            TEXT PRIMARY KEY,
	completed_count INTEGER NOT NULL DEFAULT 0,
	overdue_count   INTEGER NOT NULL DEFAULT 0,
	streak          INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS achievements (
	key         TEXT PRIMARY KEY,
	unlocked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS backups (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	type       TEXT NOT NULL CHECK(type IN ('json', 'csv')),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
