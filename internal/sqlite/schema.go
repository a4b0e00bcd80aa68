package sqlite

// Schema DDL for the export store.
const (
	createExports = `CREATE TABLE IF NOT EXISTS exports (
    export_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    element_count INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createElements = `CREATE TABLE IF NOT EXISTS elements (
    export_id TEXT NOT NULL,
    express_id INTEGER NOT NULL,
    type_code INTEGER NOT NULL,
    type_name TEXT,
    data TEXT NOT NULL,
    PRIMARY KEY (export_id, express_id),
    FOREIGN KEY (export_id) REFERENCES exports(export_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxElementsTypeName = `CREATE INDEX IF NOT EXISTS idx_elements_type_name ON elements(export_id, type_name);`
	idxElementsTypeCode = `CREATE INDEX IF NOT EXISTS idx_elements_type_code ON elements(export_id, type_code);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createExports,
	createElements,
	idxElementsTypeName,
	idxElementsTypeCode,
}
