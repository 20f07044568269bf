package registry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for node registry persistence.
type Repository interface {
	Create(ctx context.Context, node *Node) error
	Get(ctx context.Context, address string) (*Node, error)
	List(ctx context.Context) ([]Node, error)
	Delete(ctx context.Context, address string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed node repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new node record.
// Returns ErrNodeExists if the address is already registered.
func (r *SQLiteRepository) Create(ctx context.Context, node *Node) error {
	const query = `INSERT INTO nodes (address, name, nodedef, "primary", hub_id)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		node.Address, node.Name, node.NodeDef, node.Primary, node.HubID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrNodeExists
		}
		return fmt.Errorf("inserting node %s: %w", node.Address, err)
	}
	return nil
}

// Get returns a single node by address.
func (r *SQLiteRepository) Get(ctx context.Context, address string) (*Node, error) {
	const query = `SELECT address, name, nodedef, "primary", hub_id, created_at
		FROM nodes WHERE address = ?`
	row := r.db.QueryRowContext(ctx, query, address)

	var n Node
	var createdAt string
	err := row.Scan(&n.Address, &n.Name, &n.NodeDef, &n.Primary, &n.HubID, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNodeNotFound
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	n.CreatedAt = parseTime(createdAt)
	return &n, nil
}

// List returns all registered nodes ordered by address.
func (r *SQLiteRepository) List(ctx context.Context) ([]Node, error) {
	const query = `SELECT address, name, nodedef, "primary", hub_id, created_at
		FROM nodes ORDER BY address`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		var n Node
		var createdAt string
		if err := rows.Scan(&n.Address, &n.Name, &n.NodeDef, &n.Primary, &n.HubID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}
		n.CreatedAt = parseTime(createdAt)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}
	return nodes, nil
}

// Delete removes a single node by address.
// Returns ErrNodeNotFound if the node does not exist.
func (r *SQLiteRepository) Delete(ctx context.Context, address string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM nodes WHERE address = ?", address)
	if err != nil {
		return fmt.Errorf("deleting node %s: %w", address, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrNodeNotFound
	}
	return nil
}

// DeleteAll removes all nodes from the registry.
// Returns the number of rows deleted.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM nodes")
	if err != nil {
		return 0, fmt.Errorf("deleting all nodes: %w", err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	return n, nil
}

// parseTime parses an ISO 8601 timestamp from SQLite.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
