package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yourusername/todo-api/internal/model"
)

const accountColumns = `id, username, email, password, created_at`

func scanAccount(row rowScanner) (model.Account, error) {
	var (
		account   model.Account
		createdAt int64
	)
	if err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, err
	}
	account.CreatedAt = fromMillis(createdAt)
	return account, nil
}

// accountWriteError は一意制約違反を重複エラーに変換します。ユーザー名を先に判定します。
func accountWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err, "users.username"):
		return model.ErrUsernameTaken
	case isUniqueViolation(err, "users.email"):
		return model.ErrEmailTaken
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// GetAccountByID は ID でアカウントを取得します。
func (s *Store) GetAccountByID(ctx context.Context, id int64) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM users WHERE id = ?`, id)
	return scanAccount(row)
}

// GetAccountByEmail はメールアドレスでアカウントを取得します。
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM users WHERE email = ?`, email)
	return scanAccount(row)
}

// FindAccountByUsernameOrEmail はユーザー名またはメールアドレスが一致するアカウントを返します。
// 両方に一致するアカウントが別々に存在する場合はユーザー名の一致を優先します。
func (s *Store) FindAccountByUsernameOrEmail(ctx context.Context, username, email string) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+accountColumns+`
FROM users
WHERE username = ? OR email = ?
ORDER BY (username = ?) DESC, id ASC
LIMIT 1`, username, email, username)
	return scanAccount(row)
}

// ListAccounts は ID 順にアカウントを返します。
func (s *Store) ListAccounts(ctx context.Context, offset, limit int) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM users ORDER BY id ASC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// InsertAccount はアカウントを作成し、採番された ID と作成日時を設定して返します。
func (s *Store) InsertAccount(ctx context.Context, account model.Account) (model.Account, error) {
	account.CreatedAt = fromMillis(toMillis(s.now()))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)`,
		account.Username, account.Email, account.PasswordHash, toMillis(account.CreatedAt),
	)
	if err != nil {
		return model.Account{}, accountWriteError("insert account", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("insert account id: %w", err)
	}
	account.ID = id
	return account, nil
}

// UpdateAccount はユーザー名・メールアドレス・パスワードハッシュを更新します。
func (s *Store) UpdateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password = ? WHERE id = ?`,
		account.Username, account.Email, account.PasswordHash, account.ID,
	)
	if err != nil {
		return model.Account{}, accountWriteError("update account", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Account{}, err
	}
	return s.GetAccountByID(ctx, account.ID)
}

// DeleteAccount はアカウントと、そのアカウントが所有するタスクを削除します。
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete account todos: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
