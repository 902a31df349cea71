package listings

import "time"

// Category es el tipo de post (tabla tipo_post).
type Category int64

const (
	CategoryAdopt      Category = 1
	CategoryHelp       Category = 2
	CategoryCrossBreed Category = 3
)

// Pet es la fila mascota. PostID queda nil hasta que existe el post.
type Pet struct {
	ID          int64
	Name        string
	Description string

	DistrictID int64
	AgeID      int64
	SexID      int64
	SizeID     int64
	TypeID     int64

	UserID int64
	PostID *int64

	CreatedAt time.Time
}

// Post es la publicación que envuelve a una mascota.
type Post struct {
	ID       int64
	UserID   int64
	PetID    int64
	Category Category
	HasImage bool

	CreatedAt time.Time
}

// Image es el archivo opcional que acompaña a la publicación.
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

// CreateInput son los datos de una publicación nueva. Los tags json
// nombran los campos tal como llegan por HTTP (se usan en los errores).
type CreateInput struct {
	Name        string   `json:"name_mascota" validate:"required,max=100"`
	Description string   `json:"contenido_mascota" validate:"max=2000"`
	DistrictID  int64    `json:"id_distrito" validate:"gt=0"`
	AgeID       int64    `json:"id_edad" validate:"gt=0"`
	SexID       int64    `json:"id_sexo" validate:"gt=0"`
	SizeID      int64    `json:"id_size" validate:"gt=0"`
	TypeID      int64    `json:"id_tipo" validate:"gt=0"`
	UserID      int64    `json:"user_id" validate:"gt=0"`
	Category    Category `json:"tipo_post" validate:"oneof=1 2 3"`

	Image *Image `json:"-" validate:"-"`
}

// Result es lo que devuelve el flujo de creación.
type Result struct {
	PetID    int64
	PostID   int64
	ImageURL *string
}

// Listing es el modelo de lectura: post + mascota.
type Listing struct {
	Post     Post
	Pet      Pet
	ImageURL *string
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListFilter filtra publicaciones. Cero = sin filtro.
type ListFilter struct {
	DistrictID int64
	AgeID      int64
	SexID      int64
	SizeID     int64
	TypeID     int64
	Category   Category
	UserID     int64

	Limit  int
	Offset int
}

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
