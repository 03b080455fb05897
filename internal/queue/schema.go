package queue

// schemaVersion tracks the jobs table layout. Bump when columns change.
const schemaVersion = 1

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id        TEXT NOT NULL,
    source_type       TEXT NOT NULL,
    source            TEXT NOT NULL,
    title             TEXT,
    model             TEXT NOT NULL,
    language          TEXT NOT NULL,
    task              TEXT NOT NULL,
    status            TEXT NOT NULL,
    audio_path        TEXT,
    job_dir           TEXT,
    transcript_path   TEXT,
    export_paths      TEXT,
    detected_language TEXT,
    segment_count     INTEGER NOT NULL DEFAULT 0,
    error_message     TEXT,
    progress_stage    TEXT,
    progress_percent  REAL NOT NULL DEFAULT 0,
    progress_message  TEXT,
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);
`
