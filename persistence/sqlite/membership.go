package sqlite

import (
	"context"
	"database/sql"
	"errors"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/membership"
)

type MembershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

const clearanceColumns = `c.id, c.user_id, c.requirement, c.status, c.payment_status,
	c.receipt_path, c.amount, c.archived, c.payment_method`

func scanClearance(s interface{ Scan(...any) error }) (*nexus.Clearance, error) {
	var (
		c       nexus.Clearance
		receipt sql.NullString
		method  sql.NullString
	)

	err := s.Scan(&c.ID, &c.UserID, &c.Requirement, &c.Status,
		&c.PaymentStatus, &receipt, &c.Amount, &c.Archived, &method)
	if err != nil {
		return nil, err
	}

	c.ReceiptPath = receipt.String
	c.PaymentMethod = nexus.PaymentMethod(method.String)

	return &c, nil
}

func (repo *MembershipRepository) MembershipsByUser(ctx context.Context, userID int64) ([]nexus.Clearance, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT `+clearanceColumns+` FROM clearances c
		 WHERE c.user_id = ? AND c.archived = 0
		 ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Clearance
	for rows.Next() {
		c, err := scanClearance(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *c)
	}

	return out, rows.Err()
}

func (repo *MembershipRepository) ActiveMemberships(ctx context.Context) ([]nexus.Clearance, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT `+clearanceColumns+`, u.full_name, u.block, u.year
		 FROM clearances c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.archived = 0
		 ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Clearance
	for rows.Next() {
		var (
			c       nexus.Clearance
			receipt sql.NullString
			method  sql.NullString
			block   sql.NullString
			year    sql.NullString
			info    nexus.UserInfo
		)

		err := rows.Scan(&c.ID, &c.UserID, &c.Requirement, &c.Status,
			&c.PaymentStatus, &receipt, &c.Amount, &c.Archived, &method,
			&info.FullName, &block, &year)
		if err != nil {
			return nil, err
		}

		c.ReceiptPath = receipt.String
		c.PaymentMethod = nexus.PaymentMethod(method.String)
		info.Block = block.String
		info.Year = nexus.Year(year.String)
		c.User = &info

		out = append(out, c)
	}

	return out, rows.Err()
}

func (repo *MembershipRepository) MembershipByID(ctx context.Context, id int64) (*nexus.Clearance, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+clearanceColumns+` FROM clearances c WHERE c.id = ?`, id)

	c, err := scanClearance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, membership.ErrMembershipNotFound
	}

	return c, err
}

func (repo *MembershipRepository) CreateMembership(ctx context.Context, record *nexus.Clearance) error {
	result, err := repo.db.ExecContext(ctx, `
		INSERT INTO clearances (user_id, requirement, status, payment_status,
			receipt_path, amount, archived, payment_method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.UserID, record.Requirement, record.Status, record.PaymentStatus,
		nullString(record.ReceiptPath), record.Amount, record.Archived,
		nullString(string(record.PaymentMethod)))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	record.ID = id
	return nil
}

func (repo *MembershipRepository) UpdateMembership(ctx context.Context, record *nexus.Clearance) error {
	_, err := repo.db.ExecContext(ctx, `
		UPDATE clearances
		SET status = ?, payment_status = ?, receipt_path = ?, amount = ?,
			archived = ?, payment_method = ?
		WHERE id = ?`,
		record.Status, record.PaymentStatus, nullString(record.ReceiptPath),
		record.Amount, record.Archived, nullString(string(record.PaymentMethod)),
		record.ID)
	return err
}

func (repo *MembershipRepository) DistinctRequirements(ctx context.Context) ([]nexus.Clearance, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT c.requirement, c.amount, COUNT(*)
		FROM clearances c
		WHERE c.archived = 0
		GROUP BY c.requirement, c.amount
		ORDER BY c.requirement`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Clearance
	for rows.Next() {
		var (
			c nexus.Clearance
			n int
		)

		if err := rows.Scan(&c.Requirement, &c.Amount, &n); err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func (repo *MembershipRepository) UpdateRequirementAmount(ctx context.Context, requirement string, amount float64) (int64, error) {
	result, err := repo.db.ExecContext(ctx,
		`UPDATE clearances SET amount = ? WHERE requirement = ? AND archived = 0`,
		amount, requirement)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (repo *MembershipRepository) ArchiveRequirement(ctx context.Context, requirement string) (int64, error) {
	result, err := repo.db.ExecContext(ctx,
		`UPDATE clearances SET archived = 1 WHERE requirement = ? AND archived = 0`,
		requirement)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (repo *MembershipRepository) CreateRequirementForAllUsers(ctx context.Context, requirement string, amount float64) (int64, error) {
	result, err := repo.db.ExecContext(ctx, `
		INSERT INTO clearances (user_id, requirement, status, payment_status, amount)
		SELECT u.id, ?, ?, ?, ?
		FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM clearances c
			WHERE c.user_id = u.id AND c.requirement = ? AND c.archived = 0
		)`,
		requirement, nexus.ClearanceNotYetCleared, nexus.PaymentNotPaid,
		amount, requirement)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (repo *MembershipRepository) QRCode(ctx context.Context) (*nexus.QRCode, error) {
	var (
		code    nexus.QRCode
		gcash   sql.NullString
		paymaya sql.NullString
	)

	err := repo.db.QueryRowContext(ctx,
		`SELECT id, gcash, paymaya FROM qr_codes ORDER BY id DESC LIMIT 1`).
		Scan(&code.ID, &gcash, &paymaya)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, membership.ErrQRCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	code.GCash = gcash.String
	code.PayMaya = paymaya.String

	return &code, nil
}

func (repo *MembershipRepository) SaveQRCode(ctx context.Context, code *nexus.QRCode) error {
	if code.ID == 0 {
		result, err := repo.db.ExecContext(ctx,
			`INSERT INTO qr_codes (gcash, paymaya) VALUES (?, ?)`,
			nullString(code.GCash), nullString(code.PayMaya))
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		code.ID = id
		return nil
	}

	_, err := repo.db.ExecContext(ctx,
		`UPDATE qr_codes SET gcash = ?, paymaya = ? WHERE id = ?`,
		nullString(code.GCash), nullString(code.PayMaya), code.ID)
	return err
}
