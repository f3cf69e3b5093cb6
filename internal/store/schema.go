package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tables (
    name                 TEXT PRIMARY KEY,
    file_path            TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    categories_json      TEXT NOT NULL,
    years_json           TEXT NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
    table_name           TEXT NOT NULL REFERENCES tables(name) ON DELETE CASCADE,
    year                 INTEGER NOT NULL,
    category             TEXT NOT NULL,
    value                REAL NOT NULL,
    PRIMARY KEY (table_name, year, category)
);

CREATE INDEX IF NOT EXISTS idx_tables_path ON tables(file_path);
`
