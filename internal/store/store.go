// Package store persists parsed hands into a local sqlite database so a
// session can be imported once and browsed or aggregated later.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

// Store wraps the sqlite database holding imported hands.
type Store struct {
	db *sql.DB
}

// StoredHand is one imported hand row.
type StoredHand struct {
	ID          int64
	SourceFile  string
	SourceLine  int
	Header      string
	Hero        string
	HoleCards   string
	ButtonSeat  int
	PlayerCount int
	Pot         int
	Board       string
	LastStreet  string
	ImportedAt  time.Time
}

// Open opens (creating if necessary) the database at path and applies any
// pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode reduces write latency by avoiding full fsync on every commit.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveHands upserts a parse result keyed by (source file, header line), so
// re-importing a growing session file refreshes rather than duplicates.
// Returns the number of hands written.
func (s *Store) SaveHands(ctx context.Context, sourceFile string, hands []*handhistory.Hand) (int, error) {
	saved := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339Nano)

		for _, h := range hands {
			final := replay.Reconstruct(h, replay.End(h))

			res, err := tx.ExecContext(ctx, `INSERT INTO hands(
				source_file, source_line, header, hero, hole_cards, button_seat,
				player_count, pot, board, last_street, imported_at
			) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(source_file, source_line) DO UPDATE SET
				header=excluded.header,
				hero=excluded.hero,
				hole_cards=excluded.hole_cards,
				button_seat=excluded.button_seat,
				player_count=excluded.player_count,
				pot=excluded.pot,
				board=excluded.board,
				last_street=excluded.last_street,
				imported_at=excluded.imported_at`,
				sourceFile, h.SourceLine, h.Header, nullIfEmpty(h.Hero), nullIfEmpty(h.HoleCards),
				h.ButtonSeat, len(h.Players), final.Pot, strings.Join(final.Board, " "),
				h.LastStreet().String(), now,
			)
			if err != nil {
				return fmt.Errorf("upsert hand at line %d: %w", h.SourceLine, err)
			}

			handRowID, err := s.handRowID(ctx, tx, res, sourceFile, h.SourceLine)
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, `DELETE FROM hand_players WHERE hand_id = ?`, handRowID); err != nil {
				return fmt.Errorf("clear players for hand %d: %w", handRowID, err)
			}
			for _, p := range h.Players {
				if _, err := tx.ExecContext(ctx, `INSERT INTO hand_players(
					hand_id, seat, name, chips, sitting_out
				) VALUES(?, ?, ?, ?, ?)`,
					handRowID, p.Seat, p.Name, p.Chips, boolToInt(p.SittingOut),
				); err != nil {
					return fmt.Errorf("insert player %s: %w", p.Name, err)
				}
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

// RecentHands returns the most recently imported hands, newest first.
func (s *Store) RecentHands(ctx context.Context, limit int) ([]StoredHand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, source_file, source_line, header, COALESCE(hero, ''), COALESCE(hole_cards, ''),
		button_seat, player_count, pot, COALESCE(board, ''), last_street, imported_at
	FROM hands ORDER BY imported_at DESC, source_line DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent hands: %w", err)
	}
	defer rows.Close()

	var hands []StoredHand
	for rows.Next() {
		var h StoredHand
		var importedAt string
		if err := rows.Scan(&h.ID, &h.SourceFile, &h.SourceLine, &h.Header, &h.Hero, &h.HoleCards,
			&h.ButtonSeat, &h.PlayerCount, &h.Pot, &h.Board, &h.LastStreet, &importedAt); err != nil {
			return nil, fmt.Errorf("scan hand row: %w", err)
		}
		h.ImportedAt, _ = time.Parse(time.RFC3339Nano, importedAt)
		hands = append(hands, h)
	}
	return hands, rows.Err()
}

// HeroHandCounts returns how many imported hands each identified hero has.
func (s *Store) HeroHandCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hero, COUNT(*) FROM hands WHERE hero IS NOT NULL GROUP BY hero`)
	if err != nil {
		return nil, fmt.Errorf("query hero counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var hero string
		var n int
		if err := rows.Scan(&hero, &n); err != nil {
			return nil, fmt.Errorf("scan hero count: %w", err)
		}
		counts[hero] = n
	}
	return counts, rows.Err()
}

// HandCount returns the number of imported hands.
func (s *Store) HandCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hands`).Scan(&n)
	return n, err
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// handRowID resolves the row id after an upsert; LastInsertId is not
// meaningful when the conflict branch ran.
func (s *Store) handRowID(ctx context.Context, tx *sql.Tx, res sql.Result, sourceFile string, sourceLine int) (int64, error) {
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM hands WHERE id = ?`, id).Scan(&exists); err == nil {
			return id, nil
		}
	}
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM hands WHERE source_file = ? AND source_line = ?`,
		sourceFile, sourceLine).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve hand row: %w", err)
	}
	return id, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
