package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petpatrol/internal/domain/listings"
)

type ListingsRepo struct {
	db *sql.DB
}

var _ listings.Store = (*ListingsRepo)(nil)

func NewListingsRepo(db *sql.DB) *ListingsRepo {
	return &ListingsRepo{db: db}
}

func (r *ListingsRepo) BeginTx(ctx context.Context) (listings.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &listingsTx{tx: tx}, nil
}

type listingsTx struct {
	tx *sql.Tx
}

func (t *listingsTx) InsertPet(ctx context.Context, p listings.Pet) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO mascota (
			name_mascota, contenido_mascota,
			id_distrito, id_edad, id_sexo, id_size, id_tipo,
			user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id_mascota
	`,
		p.Name,
		p.Description,
		p.DistrictID,
		p.AgeID,
		p.SexID,
		p.SizeID,
		p.TypeID,
		p.UserID,
		p.CreatedAt,
	).Scan(&id)
	return id, err
}

func (t *listingsTx) InsertPost(ctx context.Context, p listings.Post) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO post (user_id, mascota_id, tipo_post, has_image, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id_post
	`,
		p.UserID,
		p.PetID,
		int64(p.Category),
		p.HasImage,
		p.CreatedAt,
	).Scan(&id)
	return id, err
}

func (t *listingsTx) LinkPet(ctx context.Context, petID, postID int64) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE mascota SET post_id = $1 WHERE id_mascota = $2`, postID, petID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("link mascota %d: %d rows affected", petID, n)
	}
	return nil
}

func (t *listingsTx) Commit() error {
	return t.tx.Commit()
}

func (t *listingsTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

const listingColumns = `
	p.id_post, p.user_id, p.mascota_id, p.tipo_post, p.has_image, p.created_at,
	m.id_mascota, m.name_mascota, m.contenido_mascota,
	m.id_distrito, m.id_edad, m.id_sexo, m.id_size, m.id_tipo,
	m.user_id, m.post_id, m.created_at
`

func (r *ListingsRepo) List(ctx context.Context, f listings.ListFilter) ([]listings.Listing, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v int64) {
		if v == 0 {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("m.id_distrito", f.DistrictID)
	add("m.id_edad", f.AgeID)
	add("m.id_sexo", f.SexID)
	add("m.id_size", f.SizeID)
	add("m.id_tipo", f.TypeID)
	add("p.tipo_post", int64(f.Category))
	add("p.user_id", f.UserID)

	q := `SELECT ` + listingColumns + ` FROM post p JOIN mascota m ON m.id_mascota = p.mascota_id`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	q += fmt.Sprintf(` ORDER BY p.created_at DESC, p.id_post DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]listings.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ListingsRepo) GetByPostID(ctx context.Context, postID int64) (listings.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM post p JOIN mascota m ON m.id_mascota = p.mascota_id WHERE p.id_post = $1`,
		postID,
	)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listings.Listing{}, listings.ErrNotFound
		}
		return listings.Listing{}, err
	}
	return l, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (listings.Listing, error) {
	var (
		l        listings.Listing
		category int64
		postID   sql.NullInt64
	)
	err := s.Scan(
		&l.Post.ID,
		&l.Post.UserID,
		&l.Post.PetID,
		&category,
		&l.Post.HasImage,
		&l.Post.CreatedAt,
		&l.Pet.ID,
		&l.Pet.Name,
		&l.Pet.Description,
		&l.Pet.DistrictID,
		&l.Pet.AgeID,
		&l.Pet.SexID,
		&l.Pet.SizeID,
		&l.Pet.TypeID,
		&l.Pet.UserID,
		&postID,
		&l.Pet.CreatedAt,
	)
	if err != nil {
		return listings.Listing{}, err
	}
	l.Post.Category = listings.Category(category)
	if postID.Valid {
		v := postID.Int64
		l.Pet.PostID = &v
	}
	return l, nil
}
