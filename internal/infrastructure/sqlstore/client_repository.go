package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/martijn/clientreg/internal/core/apperror"
	"github.com/martijn/clientreg/internal/core/domain"
	"github.com/martijn/clientreg/internal/core/repository"
)

const clientColumns = "id_client, c_name, c_lastname, email, register, c_state"

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) ListWithPhones(ctx context.Context) ([]*domain.ClientWithPhones, error) {
	query := `
		SELECT c.id_client, c.c_name, c.c_lastname, c.email, c.register, c.c_state, p.phone_number
		FROM clients c
		LEFT JOIN phones p ON p.id_client = c.id_client
		ORDER BY c.id_client, p.id_phone
	`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients with phones: %w", err)
	}
	defer rows.Close()

	clients := []*domain.ClientWithPhones{}
	byID := make(map[int64]*domain.ClientWithPhones)
	for rows.Next() {
		var client domain.Client
		var phone sql.NullString
		err := rows.Scan(
			&client.ID,
			&client.FirstName,
			&client.LastName,
			&client.Email,
			&client.RegisterDate,
			&client.State,
			&phone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}

		entry, ok := byID[client.ID]
		if !ok {
			entry = &domain.ClientWithPhones{Client: client, Phones: []string{}}
			byID[client.ID] = entry
			clients = append(clients, entry)
		}
		if phone.Valid {
			entry.Phones = append(entry.Phones, phone.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, int, error) {
	where, args := buildClientFilter(filter)

	countQuery := "SELECT COUNT(*) FROM clients WHERE 1=1" + where
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := "SELECT " + clientColumns + " FROM clients WHERE 1=1" + where
	if filter.Cursor != nil {
		var err error
		query, err = applyOrdering(query, filter.Cursor)
		if err != nil {
			return nil, 0, err
		}
		query, args = applyPagination(query, args, filter.Cursor)
	}

	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, total, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*domain.ClientWithPhones, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, r.db.Rebind("SELECT "+clientColumns+" FROM clients WHERE id_client = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Client not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	phones, err := listPhones(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return &domain.ClientWithPhones{Client: client, Phones: phones}, nil
}

func (r *clientRepository) Create(ctx context.Context, input *domain.ClientInput) (int64, error) {
	var id int64
	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		first, last := domain.SplitName(input.Name)

		query := `
			INSERT INTO clients (c_name, c_lastname, email, register, c_state)
			VALUES (?, ?, ?, CURRENT_DATE, ?)
			RETURNING id_client
		`
		err := tx.QueryRowxContext(ctx, tx.Rebind(query), first, last, input.Email, input.State).Scan(&id)
		if err != nil {
			if IsUniqueViolation(err) {
				return apperror.Wrap(apperror.KindConflict, "Duplicated email", err)
			}
			return fmt.Errorf("failed to create client: %w", err)
		}

		seen := make(map[string]bool, len(input.Phones))
		for _, phone := range input.Phones {
			if seen[phone] {
				continue
			}
			seen[phone] = true
			if err := insertPhone(ctx, tx, id, phone); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *clientRepository) Update(ctx context.Context, id int64, patch *domain.ClientPatch) (bool, error) {
	updated := false
	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing domain.Client
		err := tx.GetContext(ctx, &existing, tx.Rebind("SELECT "+clientColumns+" FROM clients WHERE id_client = ?"), id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound("Client not found")
		}
		if err != nil {
			return fmt.Errorf("failed to find client: %w", err)
		}

		fields, args := diffClient(&existing, patch)
		if len(fields) == 0 {
			return nil
		}
		args = append(args, id)

		query := "UPDATE clients SET " + strings.Join(fields, ", ") + " WHERE id_client = ?"
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			if IsUniqueViolation(err) {
				return apperror.Wrap(apperror.KindConflict, "Duplicated email", err)
			}
			return fmt.Errorf("failed to update client: %w", err)
		}

		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return updated, nil
}

// diffClient returns SET fragments only for values that differ from the
// stored row.
func diffClient(existing *domain.Client, patch *domain.ClientPatch) ([]string, []interface{}) {
	var fields []string
	var args []interface{}

	if patch.Name != nil {
		first, last := domain.SplitName(*patch.Name)
		if first != existing.FirstName {
			fields = append(fields, "c_name = ?")
			args = append(args, first)
		}
		if last != existing.LastName {
			fields = append(fields, "c_lastname = ?")
			args = append(args, last)
		}
	}

	if patch.Email != nil && *patch.Email != existing.Email {
		fields = append(fields, "email = ?")
		args = append(args, *patch.Email)
	}

	if patch.State != nil && *patch.State != existing.State {
		fields = append(fields, "c_state = ?")
		args = append(args, *patch.State)
	}

	return fields, args
}

func (r *clientRepository) AddPhones(ctx context.Context, id int64, phones []string) (int, error) {
	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := requireClient(ctx, tx, id); err != nil {
			return err
		}

		existing, err := listPhones(ctx, tx, id)
		if err != nil {
			return err
		}

		taken := make(map[string]bool, len(existing)+len(phones))
		for _, phone := range existing {
			taken[phone] = true
		}
		for _, phone := range phones {
			if taken[phone] {
				return apperror.Conflict("Phone already exists")
			}
			taken[phone] = true
		}

		for _, phone := range phones {
			if err := insertPhone(ctx, tx, id, phone); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(phones), nil
}

func (r *clientRepository) DeletePhone(ctx context.Context, id int64, number string) (string, error) {
	if err := requireClient(ctx, r.db, id); err != nil {
		return "", err
	}

	var deleted string
	query := "DELETE FROM phones WHERE id_client = ? AND phone_number = ? RETURNING phone_number"
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), id, number).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound("Number not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete phone: %w", err)
	}

	return deleted, nil
}

func (r *clientRepository) DeleteAllPhones(ctx context.Context, id int64) (*domain.PhoneDeletion, error) {
	if err := requireClient(ctx, r.db, id); err != nil {
		return nil, err
	}

	numbers, err := deletePhones(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return &domain.PhoneDeletion{Deleted: len(numbers), Numbers: numbers}, nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) (*domain.DeletedClient, error) {
	var deleted *domain.DeletedClient
	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := requireClient(ctx, tx, id); err != nil {
			return err
		}

		numbers, err := deletePhones(ctx, tx, id)
		if err != nil {
			return err
		}

		var client domain.Client
		query := "DELETE FROM clients WHERE id_client = ? RETURNING " + clientColumns
		if err := tx.GetContext(ctx, &client, tx.Rebind(query), id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		deleted = &domain.DeletedClient{Client: client, Phones: numbers}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func requireClient(ctx context.Context, q sqlx.QueryerContext, id int64) error {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM clients WHERE id_client = ?)"
	if err := sqlx.GetContext(ctx, q, &exists, rebind(q, query), id); err != nil {
		return fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return apperror.NotFound("Client not found")
	}
	return nil
}

func listPhones(ctx context.Context, q sqlx.QueryerContext, id int64) ([]string, error) {
	phones := []string{}
	query := "SELECT phone_number FROM phones WHERE id_client = ? ORDER BY id_phone"
	if err := sqlx.SelectContext(ctx, q, &phones, rebind(q, query), id); err != nil {
		return nil, fmt.Errorf("failed to list phones: %w", err)
	}
	return phones, nil
}

func insertPhone(ctx context.Context, tx *sqlx.Tx, id int64, phone string) error {
	query := "INSERT INTO phones (id_client, phone_number) VALUES (?, ?)"
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), id, phone); err != nil {
		return fmt.Errorf("failed to add phone: %w", err)
	}
	return nil
}

func deletePhones(ctx context.Context, q sqlx.QueryerContext, id int64) ([]string, error) {
	numbers := []string{}
	query := "DELETE FROM phones WHERE id_client = ? RETURNING phone_number"
	if err := sqlx.SelectContext(ctx, q, &numbers, rebind(q, query), id); err != nil {
		return nil, fmt.Errorf("failed to delete phones: %w", err)
	}
	return numbers, nil
}

// rebind converts ? placeholders for whichever pool or transaction runs q.
func rebind(q sqlx.QueryerContext, query string) string {
	if b, ok := q.(interface{ Rebind(string) string }); ok {
		return b.Rebind(query)
	}
	return query
}
