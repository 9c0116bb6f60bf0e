package repository

import (
	"database/sql"
	"errors"

	"github.com/beanmap/beanmap/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrCafeNotFound  = errors.New("cafe not found")
	ErrDuplicateName = errors.New("cafe name already exists")
)

type CafeRepository interface {
	Create(cafe *model.Cafe) error
	ByID(id int64) (*model.Cafe, error)
	All() ([]*model.Cafe, error)
	Count() (int, error)
}

type cafeRepository struct {
	db *sqlx.DB
}

func NewCafeRepository(db *sqlx.DB) CafeRepository {
	return &cafeRepository{db: db}
}

func (r *cafeRepository) Create(cafe *model.Cafe) error {
	query := `INSERT INTO cafes (name, map_url, img_url, location, seats, has_toilet, has_wifi, has_sockets, can_take_calls, coffee_price, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`

	err := r.db.Get(&cafe.ID, query,
		cafe.Name,
		cafe.MapURL,
		cafe.ImgURL,
		cafe.Location,
		cafe.Seats,
		cafe.HasToilet,
		cafe.HasWifi,
		cafe.HasSockets,
		cafe.CanTakeCalls,
		cafe.CoffeePrice,
		cafe.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return err
	}

	return nil
}

func (r *cafeRepository) ByID(id int64) (*model.Cafe, error) {
	cafe := &model.Cafe{}
	query := `SELECT * FROM cafes WHERE id = $1`

	err := r.db.Get(cafe, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCafeNotFound
	}

	return cafe, err
}

func (r *cafeRepository) All() ([]*model.Cafe, error) {
	var cafes []*model.Cafe
	query := `SELECT * FROM cafes ORDER BY name ASC`

	err := r.db.Select(&cafes, query)
	if err != nil {
		return nil, err
	}

	if cafes == nil {
		cafes = []*model.Cafe{}
	}
	return cafes, nil
}

func (r *cafeRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM cafes`)
	return count, err
}
