package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

//go:embed schema/postgres.sql
var postgresSchema string

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// PostgresRepo is an ExchangeDB backed by a pgx connection pool
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo wraps an already verified pool
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// Migrate applies the schema. It is idempotent.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

const pgListingColumns = "id, owner_id, freight, budget::text, validity, is_liked, created_at"

func scanPGListing(row pgx.Row) (model.Listing, error) {
	var (
		l        model.Listing
		freight  []byte
		budget   *string
		validity string
	)
	if err := row.Scan(&l.ListingID, &l.OwnerID, &freight, &budget, &validity, &l.IsLiked, &l.CreatedAt); err != nil {
		return model.Listing{}, err
	}
	if err := json.Unmarshal(freight, &l.Freight); err != nil {
		return model.Listing{}, fmt.Errorf("decode freight of listing %s: %w", l.ListingID, err)
	}
	if budget != nil {
		d, err := decimal.NewFromString(*budget)
		if err != nil {
			return model.Listing{}, fmt.Errorf("decode budget of listing %s: %w", l.ListingID, err)
		}
		l.Budget = &d
	}
	l.Validity = model.Validity(validity)
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func collectPGListings(rows pgx.Rows) ([]model.Listing, error) {
	defer rows.Close()
	listings := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanPGListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// CreateListing stores a new listing
func (r *PostgresRepo) CreateListing(ctx context.Context, listing model.Listing) error {
	freight, err := json.Marshal(listing.Freight)
	if err != nil {
		return fmt.Errorf("encode freight: %w", err)
	}
	var budget *string
	if listing.Budget != nil {
		s := listing.Budget.String()
		budget = &s
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO listings (id, owner_id, origin, destination, regime, tonnage, freight, budget, validity, is_liked, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::numeric, $9, $10, $11)`,
		listing.ListingID, listing.OwnerID, listing.Freight.Origin, listing.Freight.Destination,
		listing.Freight.Truck.Regime, listing.Freight.Size.Tonnage, freight, budget,
		string(listing.Validity), listing.IsLiked, listing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// GetListing returns a listing by ID
func (r *PostgresRepo) GetListing(ctx context.Context, listingID string) (model.Listing, error) {
	l, err := scanPGListing(r.pool.QueryRow(ctx, `SELECT `+pgListingColumns+` FROM listings WHERE id = $1`, listingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return l, nil
}

// ListListings returns a filtered page of listings, newest first
func (r *PostgresRepo) ListListings(ctx context.Context, q ListingQuery) ([]model.Listing, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.Regime != "" {
		where = append(where, "regime = "+arg(q.Regime))
	}
	if q.MinTonnage > 0 {
		where = append(where, "tonnage >= "+arg(q.MinTonnage))
	}
	if q.MaxTonnage > 0 {
		where = append(where, "tonnage <= "+arg(q.MaxTonnage))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	page := ` ORDER BY created_at DESC, seq DESC OFFSET ` + arg(q.Offset)
	if q.Limit > 0 {
		page += ` LIMIT ` + arg(q.Limit)
	}
	rows, err := r.pool.Query(ctx, `SELECT `+pgListingColumns+` FROM listings`+clause+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	listings, err := collectPGListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// SearchListings matches term case-insensitively against origin and destination
func (r *PostgresRepo) SearchListings(ctx context.Context, term string, limit int) ([]model.Listing, error) {
	query := `SELECT ` + pgListingColumns + ` FROM listings
		WHERE origin ILIKE $1 OR destination ILIKE $1
		ORDER BY created_at DESC, seq DESC`
	args := []any{likePattern(term)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return collectPGListings(rows)
}

// SetListingLiked updates the like flag of a listing
func (r *PostgresRepo) SetListingLiked(ctx context.Context, listingID string, liked bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE listings SET is_liked = $1 WHERE id = $2`, liked, listingID)
	if err != nil {
		return fmt.Errorf("like listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("like listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	return nil
}

// DeleteListing removes a listing and, through the cascade, its bids
func (r *PostgresRepo) DeleteListing(ctx context.Context, listingID string) (model.Listing, error) {
	l, err := scanPGListing(r.pool.QueryRow(ctx, `DELETE FROM listings WHERE id = $1 RETURNING `+pgListingColumns, listingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("delete listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("delete listing %s: %w", listingID, err)
	}
	return l, nil
}

const pgBidColumns = "id, listing_id, bidder_id, price::text, validity, created_at, seq"

func scanPGBid(row pgx.Row) (model.Bid, error) {
	var (
		b        model.Bid
		price    string
		validity string
	)
	if err := row.Scan(&b.BidID, &b.ListingID, &b.BidderID, &price, &validity, &b.CreatedAt, &b.Seq); err != nil {
		return model.Bid{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return model.Bid{}, fmt.Errorf("decode price of bid %s: %w", b.BidID, err)
	}
	b.Price = d
	b.Validity = model.Validity(validity)
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

func collectPGBids(rows pgx.Rows) ([]model.Bid, error) {
	defer rows.Close()
	bids := make([]model.Bid, 0)
	for rows.Next() {
		b, err := scanPGBid(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// UpsertBid records the bidder's bid in one statement; the unique
// (listing_id, bidder_id) constraint decides between insert and update.
func (r *PostgresRepo) UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO bids (id, listing_id, bidder_id, price, validity, created_at, expires_at, seq)
		 SELECT $1, $2, $3, $4::text::numeric, $5, $6, $7, nextval('bid_seq')
		 WHERE EXISTS (SELECT 1 FROM listings WHERE id = $2)
		 ON CONFLICT (listing_id, bidder_id) DO UPDATE SET
		     price      = EXCLUDED.price,
		     validity   = EXCLUDED.validity,
		     created_at = EXCLUDED.created_at,
		     expires_at = EXCLUDED.expires_at,
		     seq        = EXCLUDED.seq
		 RETURNING `+pgBidColumns,
		bid.BidID, bid.ListingID, bid.BidderID, bid.Price.String(), string(bid.Validity),
		bid.CreatedAt, bid.ExpiresAt(),
	)
	stored, err := scanPGBid(row)
	// the listing may vanish between the EXISTS check and the insert
	if errors.Is(err, pgx.ErrNoRows) || isForeignKeyViolation(err) {
		return model.Bid{}, fmt.Errorf("upsert bid for listing %s: %w", bid.ListingID, exchangeerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("upsert bid for listing %s: %w", bid.ListingID, err)
	}
	return stored, nil
}

// GetBid returns a bid by ID
func (r *PostgresRepo) GetBid(ctx context.Context, bidID string) (model.Bid, error) {
	b, err := scanPGBid(r.pool.QueryRow(ctx, `SELECT `+pgBidColumns+` FROM bids WHERE id = $1`, bidID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return b, nil
}

// GetBidsByListing returns all bids on a listing in write order
func (r *PostgresRepo) GetBidsByListing(ctx context.Context, listingID string) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pgBidColumns+` FROM bids WHERE listing_id = $1 ORDER BY seq`, listingID)
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	return collectPGBids(rows)
}

// GetBidByBidder returns the bidder's bid on a listing
func (r *PostgresRepo) GetBidByBidder(ctx context.Context, listingID, bidderID string) (model.Bid, error) {
	b, err := scanPGBid(r.pool.QueryRow(ctx,
		`SELECT `+pgBidColumns+` FROM bids WHERE listing_id = $1 AND bidder_id = $2`, listingID, bidderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid of %s on listing %s: %w", bidderID, listingID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid of %s on listing %s: %w", bidderID, listingID, err)
	}
	return b, nil
}

// UpdateBidPrice changes the price of a bid in place
func (r *PostgresRepo) UpdateBidPrice(ctx context.Context, bidID string, price decimal.Decimal) (model.Bid, error) {
	b, err := scanPGBid(r.pool.QueryRow(ctx,
		`UPDATE bids SET price = $1::text::numeric WHERE id = $2 RETURNING `+pgBidColumns, price.String(), bidID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, err)
	}
	return b, nil
}

// DeleteBid removes a bid and returns it
func (r *PostgresRepo) DeleteBid(ctx context.Context, bidID string) (model.Bid, error) {
	b, err := scanPGBid(r.pool.QueryRow(ctx, `DELETE FROM bids WHERE id = $1 RETURNING `+pgBidColumns, bidID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, err)
	}
	return b, nil
}

// DeleteExpiredBids removes bids whose validity window has elapsed
func (r *PostgresRepo) DeleteExpiredBids(ctx context.Context, now time.Time) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM bids WHERE expires_at <= $1 RETURNING `+pgBidColumns, now)
	if err != nil {
		return nil, fmt.Errorf("delete expired bids: %w", err)
	}
	bids, err := collectPGBids(rows)
	if err != nil {
		return nil, err
	}
	sortBySeq(bids)
	return bids, nil
}

// ConvertListing deletes the listing and its bids and inserts the contract in
// one transaction. The listing delete is the single-winner gate: a concurrent
// caller blocks on the row lock and then finds nothing to delete.
func (r *PostgresRepo) ConvertListing(ctx context.Context, contract model.Contract, bidID string) (model.Contract, error) {
	freight, err := json.Marshal(contract.Freight)
	if err != nil {
		return model.Contract{}, fmt.Errorf("encode freight: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Contract{}, fmt.Errorf("begin convert listing %s: %w", contract.ListingID, err)
	}
	defer tx.Rollback(ctx)

	var bidListing string
	err = tx.QueryRow(ctx, `SELECT listing_id FROM bids WHERE id = $1`, bidID).Scan(&bidListing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, contract.ListingID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, exchangeerrors.ErrListingNotFound)
	}
	if bidListing != contract.ListingID {
		return model.Contract{}, fmt.Errorf("convert listing %s with bid %s: %w", contract.ListingID, bidID, exchangeerrors.ErrBidNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bids WHERE listing_id = $1`, contract.ListingID); err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: delete bids: %w", contract.ListingID, err)
	}

	pickup, delivery := pgDates(contract.TransportationDate)
	_, err = tx.Exec(ctx,
		`INSERT INTO contracts (id, listing_id, freight, shipper_id, consignee_id, price, pickup_at, delivery_at, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6::text::numeric, $7, $8, $9, $10, $11)`,
		contract.ContractID, contract.ListingID, freight, contract.ShipperID, contract.ConsigneeID,
		contract.Price.String(), pickup, delivery, string(contract.Status),
		contract.CreatedAt, contract.UpdatedAt,
	)
	if err != nil {
		return model.Contract{}, fmt.Errorf("convert listing %s: insert contract: %w", contract.ListingID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Contract{}, fmt.Errorf("commit convert listing %s: %w", contract.ListingID, err)
	}
	return contract, nil
}

func pgDates(td *model.TransportationDate) (*time.Time, *time.Time) {
	if td == nil {
		return nil, nil
	}
	pickup, delivery := td.Pickup, td.Delivery
	return &pickup, &delivery
}

const pgContractColumns = "id, listing_id, freight, shipper_id, consignee_id, price::text, pickup_at, delivery_at, status, created_at, updated_at"

func scanPGContract(row pgx.Row) (model.Contract, error) {
	var (
		c                model.Contract
		freight          []byte
		price, status    string
		pickup, delivery *time.Time
	)
	if err := row.Scan(&c.ContractID, &c.ListingID, &freight, &c.ShipperID, &c.ConsigneeID,
		&price, &pickup, &delivery, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Contract{}, err
	}
	if err := json.Unmarshal(freight, &c.Freight); err != nil {
		return model.Contract{}, fmt.Errorf("decode freight of contract %s: %w", c.ContractID, err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return model.Contract{}, fmt.Errorf("decode price of contract %s: %w", c.ContractID, err)
	}
	c.Price = d
	if pickup != nil && delivery != nil {
		c.TransportationDate = &model.TransportationDate{Pickup: pickup.UTC(), Delivery: delivery.UTC()}
	}
	c.Status = model.ContractStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

// GetContract returns a contract by ID
func (r *PostgresRepo) GetContract(ctx context.Context, contractID string) (model.Contract, error) {
	c, err := scanPGContract(r.pool.QueryRow(ctx, `SELECT `+pgContractColumns+` FROM contracts WHERE id = $1`, contractID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("get contract %s: %w", contractID, exchangeerrors.ErrContractNotFound)
	}
	if err != nil {
		return model.Contract{}, fmt.Errorf("get contract %s: %w", contractID, err)
	}
	return c, nil
}

// ListContractsByParty returns the contracts a user is party to, newest first
func (r *PostgresRepo) ListContractsByParty(ctx context.Context, userID string) ([]model.Contract, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pgContractColumns+` FROM contracts
		 WHERE shipper_id = $1 OR consignee_id = $1
		 ORDER BY created_at DESC, seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contracts of %s: %w", userID, err)
	}
	defer rows.Close()

	contracts := make([]model.Contract, 0)
	for rows.Next() {
		c, err := scanPGContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// UpdateContract stores the mutable fields of contract if its status is still expected
func (r *PostgresRepo) UpdateContract(ctx context.Context, contract model.Contract, expected model.ContractStatus) (model.Contract, error) {
	pickup, delivery := pgDates(contract.TransportationDate)
	c, err := scanPGContract(r.pool.QueryRow(ctx,
		`UPDATE contracts SET price = $1::text::numeric, pickup_at = $2, delivery_at = $3, status = $4, updated_at = $5
		 WHERE id = $6 AND status = $7
		 RETURNING `+pgContractColumns,
		contract.Price.String(), pickup, delivery, string(contract.Status), contract.UpdatedAt,
		contract.ContractID, string(expected),
	))
	if errors.Is(err, pgx.ErrNoRows) {
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
