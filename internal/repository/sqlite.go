package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

// SQLiteRepo is an ExchangeDB backed by a single SQLite file.
// Timestamps are stored as UTC unix nanoseconds, prices as decimal text.
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - 5-second busy timeout for lock contention
//   - foreign key enforcement (bids cascade with their listing)
func OpenSQLite(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}

	// SQLite has a single writer; one connection also keeps the pragmas alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %q: %w", pragma, err)
		}
	}

	repo := &SQLiteRepo{db: db}
	if err := repo.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// Migrate applies the schema. It is idempotent.
func (r *SQLiteRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}

// Close closes the database
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func toNanos(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }

const sqliteListingColumns = "id, owner_id, freight, budget, validity, is_liked, created_at"

func scanSQLiteListing(row rowScanner) (model.Listing, error) {
	var (
		l        model.Listing
		freight  string
		budget   sql.NullString
		validity string
		liked    int
		created  int64
	)
	if err := row.Scan(&l.ListingID, &l.OwnerID, &freight, &budget, &validity, &liked, &created); err != nil {
		return model.Listing{}, err
	}
	if err := json.Unmarshal([]byte(freight), &l.Freight); err != nil {
		return model.Listing{}, fmt.Errorf("decode freight of listing %s: %w", l.ListingID, err)
	}
	if budget.Valid {
		d, err := decimal.NewFromString(budget.String)
		if err != nil {
			return model.Listing{}, fmt.Errorf("decode budget of listing %s: %w", l.ListingID, err)
		}
		l.Budget = &d
	}
	l.Validity = model.Validity(validity)
	l.IsLiked = liked != 0
	l.CreatedAt = fromNanos(created)
	return l, nil
}

// CreateListing stores a new listing
func (r *SQLiteRepo) CreateListing(ctx context.Context, listing model.Listing) error {
	freight, err := json.Marshal(listing.Freight)
	if err != nil {
		return fmt.Errorf("encode freight: %w", err)
	}
	var budget sql.NullString
	if listing.Budget != nil {
		budget = sql.NullString{String: listing.Budget.String(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO listings (id, owner_id, origin, destination, regime, tonnage, freight, budget, validity, is_liked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ListingID, listing.OwnerID, listing.Freight.Origin, listing.Freight.Destination,
		listing.Freight.Truck.Regime, listing.Freight.Size.Tonnage, string(freight), budget,
		string(listing.Validity), listing.IsLiked, toNanos(listing.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// GetListing returns a listing by ID
func (r *SQLiteRepo) GetListing(ctx context.Context, listingID string) (model.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteListingColumns+` FROM listings WHERE id = ?`, listingID)
	l, err := scanSQLiteListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return l, nil
}

// ListListings returns a filtered page of listings, newest first
func (r *SQLiteRepo) ListListings(ctx context.Context, q ListingQuery) ([]model.Listing, int, error) {
	var (
		where []string
		args  []any
	)
	if q.Regime != "" {
		where = append(where, "regime = ?")
		args = append(args, q.Regime)
	}
	if q.MinTonnage > 0 {
		where = append(where, "tonnage >= ?")
		args = append(args, q.MinTonnage)
	}
	if q.MaxTonnage > 0 {
		where = append(where, "tonnage <= ?")
		args = append(args, q.MaxTonnage)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteListingColumns+` FROM listings`+clause+` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		append(args, limit, q.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	listings, err := collectSQLiteListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// SearchListings matches term case-insensitively against origin and destination
func (r *SQLiteRepo) SearchListings(ctx context.Context, term string, limit int) ([]model.Listing, error) {
	if limit <= 0 {
		limit = -1
	}
	pattern := likePattern(term)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteListingColumns+` FROM listings
		 WHERE origin LIKE ? ESCAPE '\' OR destination LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return collectSQLiteListings(rows)
}

func collectSQLiteListings(rows *sql.Rows) ([]model.Listing, error) {
	defer rows.Close()
	listings := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanSQLiteListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// SetListingLiked updates the like flag of a listing
func (r *SQLiteRepo) SetListingLiked(ctx context.Context, listingID string, liked bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE listings SET is_liked = ? WHERE id = ?`, liked, listingID)
	if err != nil {
		return fmt.Errorf("like listing %s: %w", listingID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("like listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	return nil
}

// DeleteListing removes a listing and, through the cascade, its bids
func (r *SQLiteRepo) DeleteListing(ctx context.Context, listingID string) (model.Listing, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM listings WHERE id = ? RETURNING `+sqliteListingColumns, listingID)
	l, err := scanSQLiteListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("delete listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("delete listing %s: %w", listingID, err)
	}
	return l, nil
}

const sqliteBidColumns = "id, listing_id, bidder_id, price, validity, created_at, seq"

func scanSQLiteBid(row rowScanner) (model.Bid, error) {
	var (
		b        model.Bid
		price    string
		validity string
		created  int64
	)
	if err := row.Scan(&b.BidID, &b.ListingID, &b.BidderID, &price, &validity, &created, &b.Seq); err != nil {
		return model.Bid{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return model.Bid{}, fmt.Errorf("decode price of bid %s: %w", b.BidID, err)
	}
	b.Price = d
	b.Validity = model.Validity(validity)
	b.CreatedAt = fromNanos(created)
	return b, nil
}

func collectSQLiteBids(rows *sql.Rows) ([]model.Bid, error) {
	defer rows.Close()
	bids := make([]model.Bid, 0)
	for rows.Next() {
		b, err := scanSQLiteBid(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// UpsertBid records the bidder's bid in one statement; the unique
// (listing_id, bidder_id) constraint decides between insert and update.
func (r *SQLiteRepo) UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO bids (id, listing_id, bidder_id, price, validity, created_at, expires_at, seq)
		 SELECT ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM bids)
		 WHERE EXISTS (SELECT 1 FROM listings WHERE id = ?)
		 ON CONFLICT (listing_id, bidder_id) DO UPDATE SET
		     price      = excluded.price,
		     validity   = excluded.validity,
		     created_at = excluded.created_at,
		     expires_at = excluded.expires_at,
		     seq        = excluded.seq
		 RETURNING `+sqliteBidColumns,
		bid.BidID, bid.ListingID, bid.BidderID, bid.Price.String(), string(bid.Validity),
		toNanos(bid.CreatedAt), toNanos(bid.ExpiresAt()), bid.ListingID,
	)
	stored, err := scanSQLiteBid(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("upsert bid for listing %s: %w", bid.ListingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("upsert bid for listing %s: %w", bid.ListingID, err)
	}
	return stored, nil
}

// GetBid returns a bid by ID
func (r *SQLiteRepo) GetBid(ctx context.Context, bidID string) (model.Bid, error) {
	b, err := scanSQLiteBid(r.db.QueryRowContext(ctx, `SELECT `+sqliteBidColumns+` FROM bids WHERE id = ?`, bidID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return b, nil
}

// GetBidsByListing returns all bids on a listing in write order
func (r *SQLiteRepo) GetBidsByListing(ctx context.Context, listingID string) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteBidColumns+` FROM bids WHERE listing_id = ? ORDER BY seq`, listingID)
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	return collectSQLiteBids(rows)
}

// GetBidByBidder returns the bidder's bid on a listing
func (r *SQLiteRepo) GetBidByBidder(ctx context.Context, listingID, bidderID string) (model.Bid, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteBidColumns+` FROM bids WHERE listing_id = ? AND bidder_id = ?`, listingID, bidderID)
	b, err := scanSQLiteBid(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid of %s on listing %s: %w", bidderID, listingID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid of %s on listing %s: %w", bidderID, listingID, err)
	}
	return b, nil
}

// UpdateBidPrice changes the price of a bid in place
func (r *SQLiteRepo) UpdateBidPrice(ctx context.Context, bidID string, price decimal.Decimal) (model.Bid, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE bids SET price = ? WHERE id = ? RETURNING `+sqliteBidColumns, price.String(), bidID)
	b, err := scanSQLiteBid(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, err)
	}
	return b, nil
}

// DeleteBid removes a bid and returns it
func (r *SQLiteRepo) DeleteBid(ctx context.Context, bidID string) (model.Bid, error) {
	b, err := scanSQLiteBid(r.db.QueryRowContext(ctx, `DELETE FROM bids WHERE id = ? RETURNING `+sqliteBidColumns, bidID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, err)
	}
	return b, nil
}

// DeleteExpiredBids removes bids whose validity window has elapsed
func (r *SQLiteRepo) DeleteExpiredBids(ctx context.Context, now time.Time) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`DELETE FROM bids WHERE expires_at <= ? RETURNING `+sqliteBidColumns, toNanos(now))
	if err != nil {
		return nil, fmt.Errorf("delete expired bids: %w", err)
	}
	bids, err := collectSQLiteBids(rows)
	if err != nil {
		return nil, err
	}
	sortBySeq(bids)
	return bids, nil
}

// ConvertListing deletes the listing and its bids and inserts the contract in
// one transaction. The listing delete is the single-winner gate.
func (r *SQLiteRepo) ConvertListing(ctx context.Context, contract model.Contract, bidID string) (model.Contract, error) {
	freight, err := json.Marshal(contract.Freight)
	if err != nil {
		return model.Contract{}, fmt.Errorf("encode freight: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Contract{}, fmt.Errorf("begin convert listing %s: %w", contract.ListingID, err)
	}
	defer tx.Rollback()

	var bidListing string
	err = tx.QueryRowContext(ctx, `SELECT listing_id FROM bids WHERE id = ?`, bidID).Scan(&bidListing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, contract.ListingID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, exchangeerrors.ErrListingNotFound)
	}
	if bidListing != contract.ListingID {
		return model.Contract{}, fmt.Errorf("convert listing %s with bid %s: %w", contract.ListingID, bidID, exchangeerrors.ErrBidNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bids WHERE listing_id = ?`, contract.ListingID); err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: delete bids: %w", contract.ListingID, err)
	}

	pickup, delivery := sqliteDates(contract.TransportationDate)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO contracts (id, listing_id, freight, shipper_id, consignee_id, price, pickup_at, delivery_at, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		contract.ContractID, contract.ListingID, string(freight), contract.ShipperID, contract.ConsigneeID,
		contract.Price.String(), pickup, delivery, string(contract.Status),
		toNanos(contract.CreatedAt), toNanos(contract.UpdatedAt),
	)
	if err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: insert contract: %w", contract.ListingID, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Contract{}, fmt.Errorf("commit convert listing %s: %w", contract.ListingID, err)
	}
	return contract, nil
}

func sqliteDates(td *model.TransportationDate) (sql.NullInt64, sql.NullInt64) {
	if td == nil {
		return sql.NullInt64{}, sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(td.Pickup), Valid: true},
		sql.NullInt64{Int64: toNanos(td.Delivery), Valid: true}
}

const sqliteContractColumns = "id, listing_id, freight, shipper_id, consignee_id, price, pickup_at, delivery_at, status, created_at, updated_at"

func scanSQLiteContract(row rowScanner) (model.Contract, error) {
	var (
		c                model.Contract
		freight, price   string
		status           string
		pickup, delivery sql.NullInt64
		created, updated int64
	)
	if err := row.Scan(&c.ContractID, &c.ListingID, &freight, &c.ShipperID, &c.ConsigneeID,
		&price, &pickup, &delivery, &status, &created, &updated); err != nil {
		return model.Contract{}, err
	}
	if err := json.Unmarshal([]byte(freight), &c.Freight); err != nil {
		return model.Contract{}, fmt.Errorf("decode freight of contract %s: %w", c.ContractID, err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return model.Contract{}, fmt.Errorf("decode price of contract %s: %w", c.ContractID, err)
	}
	c.Price = d
	if pickup.Valid && delivery.Valid {
		c.TransportationDate = &model.TransportationDate{
			Pickup:   fromNanos(pickup.Int64),
			Delivery: fromNanos(delivery.Int64),
		}
	}
	c.Status = model.ContractStatus(status)
	c.CreatedAt = fromNanos(created)
	c.UpdatedAt = fromNanos(updated)
	return c, nil
}

// GetContract returns a contract by ID
func (r *SQLiteRepo) GetContract(ctx context.Context, contractID string) (model.Contract, error) {
	c, err := scanSQLiteContract(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteContractColumns+` FROM contracts WHERE id = ?`, contractID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("get contract %s: %w", contractID, exchangeerrors.ErrContractNotFound)
	}
	if err != nil {
		return model.Contract{}, fmt.Errorf("get contract %s: %w", contractID, err)
	}
	return c, nil
}

// ListContractsByParty returns the contracts a user is party to, newest first
func (r *SQLiteRepo) ListContractsByParty(ctx context.Context, userID string) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteContractColumns+` FROM contracts
		 WHERE shipper_id = ? OR consignee_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list contracts of %s: %w", userID, err)
	}
	defer rows.Close()

	contracts := make([]model.Contract, 0)
	for rows.Next() {
		c, err := scanSQLiteContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// UpdateContract stores the mutable fields of contract if its status is still expected
func (r *SQLiteRepo) UpdateContract(ctx context.Context, contract model.Contract, expected model.ContractStatus) (model.Contract, error) {
	pickup, delivery := sqliteDates(contract.TransportationDate)
	row := r.db.QueryRowContext(ctx,
		`UPDATE contracts SET price = ?, pickup_at = ?, delivery_at = ?, status = ?, updated_at = ?
		 WHERE id = ? AND status = ?
		 RETURNING `+sqliteContractColumns,
		contract.Price.String(), pickup, delivery, string(contract.Status), toNanos(contract.UpdatedAt),
		contract.ContractID, string(expected),
	)
	c, err := scanSQLiteContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetContract(ctx, contract.ContractID); getErr != nil {
			return model.Contract{}, fmt.Errorf("update contract: %w", getErr)
		}
		return model.Contract{}, fmt.Errorf("update contract %s from %s: %w", contract.ContractID, expected, exchangeerrors.ErrContractConflict)
	}
	if err != nil {
		return model.Contract{}, fmt.Errorf("update contract %s: %w", contract.ContractID, err)
	}
	return c, nil
}
