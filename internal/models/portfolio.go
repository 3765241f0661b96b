package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioItem описывает работу в витрине портфолио агентства.
// ImageURL всегда готов к отдаче клиенту: либо URL файла из /media,
// либо inline data URI — обе формы допустимы.
type PortfolioItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AdminID     uuid.UUID `db:"admin_id" json:"admin_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ImagePath   *string   `db:"image_path" json:"-"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	ImageHint   string    `db:"image_hint" json:"image_hint"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
