package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/pkg/pg"
)

// PgStore is the PostgreSQL Store used in production. Every method is a
// single statement; cross-entity consistency comes from the per-entity lock
// held by the coordinators, not from storage transactions.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Store backed by the given connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_id, name, email, password_hash, status,
		       approved_at, rejected_at, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Status,
			&u.ApprovedAt, &u.RejectedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (s *PgStore) SaveUser(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, company_id, name, email, password_hash, status,
		                   approved_at, rejected_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			status = EXCLUDED.status,
			approved_at = EXCLUDED.approved_at,
			rejected_at = EXCLUDED.rejected_at,
			updated_at = EXCLUDED.updated_at`,
		user.ID, user.CompanyID, user.Name, user.Email, user.PasswordHash, user.Status,
		user.ApprovedAt, user.RejectedAt, user.CreatedAt, user.UpdatedAt)
	return err
}

func (s *PgStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (s *PgStore) ListUsersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]User, error) {
	page = page.withDefaults()
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, name, email, password_hash, status,
		       approved_at, rejected_at, created_at, updated_at
		FROM users WHERE status = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3`, status, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Status,
			&u.ApprovedAt, &u.RejectedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PgStore) FirstUserInCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM users WHERE company_id = $1
		ORDER BY created_at, id LIMIT 1`, companyID)
}

func (s *PgStore) AddFavoriteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_favorite_projects (user_id, project_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, projectID)
	return err
}

func (s *PgStore) RemoveFavoriteProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM user_favorite_projects WHERE project_id = $1`, projectID)
	return err
}

func (s *PgStore) FavoriteProjects(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT project_id FROM user_favorite_projects
		WHERE user_id = $1 ORDER BY project_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PgStore) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, tax_code, status, created_at, updated_at
		FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.TaxCode, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &c, nil
}

func (s *PgStore) SaveCompany(ctx context.Context, company *Company) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO companies (id, name, tax_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			tax_code = EXCLUDED.tax_code,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		company.ID, company.Name, company.TaxCode, company.Status, company.CreatedAt, company.UpdatedAt)
	return err
}

func (s *PgStore) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return err
}

func (s *PgStore) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_company_id, name, credit_amount, status, audited_by, created_at, updated_at
		FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.OwnerCompanyID, &p.Name, &p.CreditAmount, &p.Status, &p.AuditedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (s *PgStore) SaveProject(ctx context.Context, project *Project) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO projects (id, owner_company_id, name, credit_amount, status, audited_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			owner_company_id = EXCLUDED.owner_company_id,
			name = EXCLUDED.name,
			credit_amount = EXCLUDED.credit_amount,
			status = EXCLUDED.status,
			audited_by = EXCLUDED.audited_by,
			updated_at = EXCLUDED.updated_at`,
		project.ID, project.OwnerCompanyID, project.Name, project.CreditAmount,
		project.Status, project.AuditedBy, project.CreatedAt, project.UpdatedAt)
	return err
}

func (s *PgStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (s *PgStore) FirstProjectAuditedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM projects WHERE audited_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) FirstProjectOwnedBy(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM projects WHERE owner_company_id = $1
		ORDER BY created_at, id LIMIT 1`, companyID)
}

func (s *PgStore) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := s.pool.QueryRow(ctx, `
		SELECT id, project_id, created_by, processed_by, credit_amount, unit, price, total, status,
		       contract_file_id, payment_bill_file_id, cert_image_ids,
		       contract_signed_at, paid_at, delivered_at, created_at, updated_at
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.ProjectID, &o.CreatedBy, &o.ProcessedBy, &o.CreditAmount, &o.Unit, &o.Price, &o.Total, &o.Status,
			&o.ContractFileID, &o.PaymentBillFileID, &o.CertImageIDs,
			&o.ContractSignedAt, &o.PaidAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &o, nil
}

func (s *PgStore) SaveOrder(ctx context.Context, order *Order) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO orders (id, project_id, created_by, processed_by, credit_amount, unit, price, total, status,
		                    contract_file_id, payment_bill_file_id, cert_image_ids,
		                    contract_signed_at, paid_at, delivered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			created_by = EXCLUDED.created_by,
			processed_by = EXCLUDED.processed_by,
			credit_amount = EXCLUDED.credit_amount,
			unit = EXCLUDED.unit,
			price = EXCLUDED.price,
			total = EXCLUDED.total,
			status = EXCLUDED.status,
			contract_file_id = EXCLUDED.contract_file_id,
			payment_bill_file_id = EXCLUDED.payment_bill_file_id,
			cert_image_ids = EXCLUDED.cert_image_ids,
			contract_signed_at = EXCLUDED.contract_signed_at,
			paid_at = EXCLUDED.paid_at,
			delivered_at = EXCLUDED.delivered_at,
			updated_at = EXCLUDED.updated_at`,
		order.ID, order.ProjectID, order.CreatedBy, order.ProcessedBy, order.CreditAmount,
		order.Unit, order.Price, order.Total, order.Status,
		order.ContractFileID, order.PaymentBillFileID, order.CertImageIDs,
		order.ContractSignedAt, order.PaidAt, order.DeliveredAt, order.CreatedAt, order.UpdatedAt)
	return err
}

func (s *PgStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return err
}

func (s *PgStore) ListOrdersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]Order, error) {
	page = page.withDefaults()
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, created_by, processed_by, credit_amount, unit, price, total, status,
		       contract_file_id, payment_bill_file_id, cert_image_ids,
		       contract_signed_at, paid_at, delivered_at, created_at, updated_at
		FROM orders WHERE status = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3`, status, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProjectID, &o.CreatedBy, &o.ProcessedBy, &o.CreditAmount,
			&o.Unit, &o.Price, &o.Total, &o.Status,
			&o.ContractFileID, &o.PaymentBillFileID, &o.CertImageIDs,
			&o.ContractSignedAt, &o.PaidAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PgStore) FirstOrderProcessedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM orders WHERE processed_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) FirstOrderCreatedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM orders WHERE created_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) FirstOrderForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM orders WHERE project_id = $1
		ORDER BY created_at, id LIMIT 1`, projectID)
}

func (s *PgStore) AddCompanyReview(ctx context.Context, review *CompanyReview) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO company_reviews (id, company_id, reviewed_by, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.CompanyID, review.ReviewedBy, review.Rating, review.Comment, review.CreatedAt)
	return err
}

func (s *PgStore) AddProjectReview(ctx context.Context, review *ProjectReview) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO project_reviews (id, project_id, reviewed_by, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.ProjectID, review.ReviewedBy, review.Rating, review.Comment, review.CreatedAt)
	return err
}

func (s *PgStore) FirstCompanyReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM company_reviews WHERE reviewed_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) FirstProjectReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM project_reviews WHERE reviewed_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) FirstCompanyReviewForCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM company_reviews WHERE company_id = $1
		ORDER BY created_at, id LIMIT 1`, companyID)
}

func (s *PgStore) FirstProjectReviewForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM project_reviews WHERE project_id = $1
		ORDER BY created_at, id LIMIT 1`, projectID)
}

func (s *PgStore) AddQuestion(ctx context.Context, question *Question) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO questions (id, project_id, asked_by, content, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		question.ID, question.ProjectID, question.AskedBy, question.Content, question.Answer, question.CreatedAt)
	return err
}

func (s *PgStore) FirstQuestionAskedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.firstID(ctx, `
		SELECT id FROM questions WHERE asked_by = $1
		ORDER BY created_at, id LIMIT 1`, userID)
}

func (s *PgStore) firstID(ctx context.Context, query string, arg any) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query, arg).Scan(&id)
	if pg.IsNotFoundError(err) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

func wrapNotFound(err error) error {
	if pg.IsNotFoundError(err) {
		return ErrNotFound
	}
	return err
}
