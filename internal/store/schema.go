package store

// schema creates every table and index the store owns. Applied with
// CREATE TABLE/INDEX IF NOT EXISTS so opening an existing database is a
// no-op beyond the pragmas set in Open.
const schema = `
CREATE TABLE IF NOT EXISTS persons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	relation TEXT NOT NULL DEFAULT 'self',
	emails TEXT NOT NULL DEFAULT '[]',
	phones TEXT NOT NULL DEFAULT '[]',
	addresses TEXT NOT NULL DEFAULT '[]',
	usernames TEXT NOT NULL DEFAULT '[]',
	date_of_birth TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS brokers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	opt_out_method TEXT NOT NULL DEFAULT '',
	opt_out_url TEXT NOT NULL DEFAULT '',
	opt_out_email TEXT NOT NULL DEFAULT '',
	opt_out_phone TEXT NOT NULL DEFAULT '',
	opt_out_mail TEXT NOT NULL DEFAULT '',
	opt_out_steps TEXT NOT NULL DEFAULT '[]',
	difficulty TEXT NOT NULL DEFAULT 'medium',
	automatable INTEGER NOT NULL DEFAULT 0,
	recheck_days INTEGER NOT NULL DEFAULT 30,
	ccpa_compliant INTEGER NOT NULL DEFAULT 0,
	gdpr_compliant INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_brokers_slug ON brokers(slug);

CREATE TABLE IF NOT EXISTS findings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	broker_id INTEGER REFERENCES brokers(id) ON DELETE SET NULL,
	source TEXT NOT NULL,
	finding_type TEXT NOT NULL DEFAULT '',
	data_found TEXT NOT NULL DEFAULT '{}',
	risk_level TEXT NOT NULL DEFAULT 'medium',
	url TEXT NOT NULL DEFAULT '',
	screenshot_path TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	discovered_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_findings_person_id ON findings(person_id);
CREATE INDEX IF NOT EXISTS idx_findings_status ON findings(status);

CREATE TABLE IF NOT EXISTS removals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	broker_id INTEGER NOT NULL REFERENCES brokers(id) ON DELETE CASCADE,
	method TEXT NOT NULL,
	finding_id INTEGER REFERENCES findings(id) ON DELETE SET NULL,
	status TEXT NOT NULL,
	reference_id TEXT NOT NULL DEFAULT '',
	submitted_at TEXT,
	confirmed_at TEXT,
	last_checked_at TEXT,
	attempts INTEGER NOT NULL DEFAULT 0,
	next_check_at TEXT,
	notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_removals_person_id ON removals(person_id);
CREATE INDEX IF NOT EXISTS idx_removals_status ON removals(status);

CREATE TABLE IF NOT EXISTS breaches (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	breach_name TEXT NOT NULL,
	source TEXT NOT NULL,
	breach_date TEXT NOT NULL DEFAULT '',
	data_types TEXT NOT NULL DEFAULT '[]',
	severity TEXT NOT NULL DEFAULT 'medium',
	discovered_at TEXT NOT NULL DEFAULT (datetime('now')),
	action_taken TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_breaches_person_id ON breaches(person_id);

CREATE TABLE IF NOT EXISTS pipeline_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	started_at TEXT NOT NULL,
	completed_at TEXT,
	status TEXT NOT NULL DEFAULT 'running',
	breaches_found INTEGER NOT NULL DEFAULT 0,
	dark_web_findings INTEGER NOT NULL DEFAULT 0,
	accounts_found INTEGER NOT NULL DEFAULT 0,
	removals_submitted INTEGER NOT NULL DEFAULT 0,
	risk_score INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_pipeline_runs_person_id ON pipeline_runs(person_id);

CREATE TABLE IF NOT EXISTS scheduled_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_name TEXT NOT NULL,
	started_at TEXT NOT NULL,
	completed_at TEXT,
	status TEXT NOT NULL DEFAULT 'running',
	details TEXT NOT NULL DEFAULT '{}',
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scheduled_runs_job_name ON scheduled_runs(job_name);
`
