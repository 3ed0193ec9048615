package corpus

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/textreuse/iqtibas/internal/reuse"
	_ "modernc.org/sqlite"
)

// Streams feed the detection pipeline directly.
var _ reuse.Document = (*Stream)(nil)

// DB wraps a SQLite corpus database connection.
type DB struct {
	db *sql.DB
}

// Open opens an existing corpus database at the given path.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, reuse.Errorf(reuse.KindInput, "corpus database not found: %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("opening corpus database: %w", err))
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// CreateSchema creates the corpus schema if it doesn't exist. The reader
// path never calls this; it exists for importers and test fixtures.
func (d *DB) CreateSchema() error {
	schema := `
		-- Token vocabulary: surface form plus lemma and root group ids
		CREATE TABLE IF NOT EXISTS token_definitions (
			id INTEGER PRIMARY KEY,
			surface TEXT NOT NULL,
			lemma_id INTEGER NOT NULL,
			root_id INTEGER
		);

		-- Token sequences, one row per page, token ids packed as
		-- little-endian u32
		CREATE TABLE IF NOT EXISTS page_tokens (
			doc_id INTEGER NOT NULL,
			part_index INTEGER NOT NULL,
			page_id INTEGER NOT NULL,
			token_ids BLOB NOT NULL,
			PRIMARY KEY (doc_id, part_index, page_id)
		);

		-- Optional document metadata
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY,
			title TEXT,
			author TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_page_tokens_doc ON page_tokens(doc_id);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Mappings are the corpus-wide token-id lookups, loaded once and shared
// across all streams. Arrays are indexed by token id; root 0 means the
// token has no root grouping.
type Mappings struct {
	Lemma   []uint32
	Root    []uint32
	Surface []string
}

// LoadMappings reads the full token vocabulary in a single pass.
func (d *DB) LoadMappings() (*Mappings, error) {
	var maxID sql.NullInt64
	if err := d.db.QueryRow(`SELECT MAX(id) FROM token_definitions`).Scan(&maxID); err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading token definitions: %w", err))
	}
	n := int64(0)
	if maxID.Valid {
		n = maxID.Int64 + 1
	}
	m := &Mappings{
		Lemma:   make([]uint32, n),
		Root:    make([]uint32, n),
		Surface: make([]string, n),
	}

	rows, err := d.db.Query(`SELECT id, surface, lemma_id, root_id FROM token_definitions`)
	if err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading token definitions: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      int64
			surface string
			lemma   int64
			root    sql.NullInt64
		)
		if err := rows.Scan(&id, &surface, &lemma, &root); err != nil {
			return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("scanning token definition: %w", err))
		}
		if id < 0 || id >= n {
			return nil, reuse.Errorf(reuse.KindInput, "token definition id %d out of range", id)
		}
		m.Surface[id] = surface
		m.Lemma[id] = uint32(lemma)
		if root.Valid {
			m.Root[id] = uint32(root.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading token definitions: %w", err))
	}
	return m, nil
}

// LoadStream loads one document's token stream, resolving lemma and root
// ids through the shared mappings. Pages come back in (part_index,
// page_id) order so global positions are stable across runs.
func (d *DB) LoadStream(docID uint32, m *Mappings) (*Stream, error) {
	rows, err := d.db.Query(`
		SELECT part_index, page_id, token_ids
		FROM page_tokens
		WHERE doc_id = ?
		ORDER BY part_index, page_id`, docID)
	if err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading document %d: %w", docID, err))
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var (
			partIndex int64
			pageID    int64
			blob      []byte
		)
		if err := rows.Scan(&partIndex, &pageID, &blob); err != nil {
			return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("scanning page of document %d: %w", docID, err))
		}
		tokens, err := decodeTokenIDs(blob)
		if err != nil {
			return nil, reuse.Errorf(reuse.KindInput,
				"document %d part %d page %d: %v", docID, partIndex, pageID, err)
		}
		page := Page{
			PartIndex: uint32(partIndex),
			PageID:    uint32(pageID),
			TokenIDs:  tokens,
			LemmaIDs:  make([]uint32, len(tokens)),
			RootIDs:   make([]uint32, len(tokens)),
		}
		for i, tid := range tokens {
			if int(tid) >= len(m.Lemma) {
				return nil, reuse.Errorf(reuse.KindInput,
					"document %d part %d page %d: token id %d has no definition", docID, partIndex, pageID, tid)
			}
			page.LemmaIDs[i] = m.Lemma[tid]
			page.RootIDs[i] = m.Root[tid]
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading document %d: %w", docID, err))
	}
	if len(pages) == 0 {
		return nil, reuse.Errorf(reuse.KindInput, "document %d not found in corpus", docID)
	}
	return NewStream(docID, pages), nil
}

// decodeTokenIDs unpacks a little-endian u32 blob.
func decodeTokenIDs(blob []byte) ([]uint32, error) {
	if len(blob)%4 != 0 {
		return nil, errors.New("token blob length is not a multiple of 4")
	}
	tokens := make([]uint32, len(blob)/4)
	for i := range tokens {
		tokens[i] = binary.LittleEndian.Uint32(blob[i*4:])
	}
	return tokens, nil
}

// Meta is optional document metadata from the documents table.
type Meta struct {
	ID     uint32
	Title  string
	Author string
}

// Document returns metadata for a document, or a zero-valued Meta with
// just the id when the documents table has no row for it.
func (d *DB) Document(docID uint32) (Meta, error) {
	meta := Meta{ID: docID}
	var title, author sql.NullString
	err := d.db.QueryRow(`SELECT title, author FROM documents WHERE id = ?`, docID).
		Scan(&title, &author)
	if errors.Is(err, sql.ErrNoRows) {
		return meta, nil
	}
	if err != nil {
		return meta, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading document %d metadata: %w", docID, err))
	}
	meta.Title = title.String
	meta.Author = author.String
	return meta, nil
}

// Stats summarizes the whole corpus.
type Stats struct {
	Documents    int   `json:"documents"`
	Pages        int   `json:"pages"`
	TokenDefs    int   `json:"token_definitions"`
	TotalTokens  int64 `json:"total_tokens"`
	UniqueLemmas int   `json:"unique_lemmas"`
	UniqueRoots  int   `json:"unique_roots"`
}

// CorpusStats reports document, page, and vocabulary counts. Root counts
// skip NULL roots.
func (d *DB) CorpusStats() (Stats, error) {
	var s Stats
	row := d.db.QueryRow(`
		SELECT
			(SELECT COUNT(DISTINCT doc_id) FROM page_tokens),
			(SELECT COUNT(*) FROM page_tokens),
			(SELECT COUNT(*) FROM token_definitions),
			(SELECT COALESCE(SUM(LENGTH(token_ids)) / 4, 0) FROM page_tokens),
			(SELECT COUNT(DISTINCT lemma_id) FROM token_definitions),
			(SELECT COUNT(DISTINCT root_id) FROM token_definitions WHERE root_id IS NOT NULL)`)
	if err := row.Scan(&s.Documents, &s.Pages, &s.TokenDefs, &s.TotalTokens,
		&s.UniqueLemmas, &s.UniqueRoots); err != nil {
		return s, reuse.WrapError(reuse.KindInput, fmt.Errorf("reading corpus stats: %w", err))
	}
	return s, nil
}

// DocumentIDs lists all document ids present in the corpus, ascending.
func (d *DB) DocumentIDs() ([]uint32, error) {
	rows, err := d.db.Query(`SELECT DISTINCT doc_id FROM page_tokens ORDER BY doc_id`)
	if err != nil {
		return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("listing documents: %w", err))
	}
	defer rows.Close()

	var ids []uint32
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, reuse.WrapError(reuse.KindInput, fmt.Errorf("listing documents: %w", err))
		}
		ids = append(ids, uint32(id))
	}
	return ids, rows.Err()
}
