package catalog

// Kind identifica una tabla de referencia.
type Kind string

const (
	KindDistrict Kind = "distrito"
	KindAge      Kind = "edad_mascota"
	KindSex      Kind = "sexo"
	KindSize     Kind = "size"
	KindPetType  Kind = "tipo_mascota"
	KindPostType Kind = "tipo_post"
)

// Kinds en el orden en que se siembran.
var Kinds = []Kind{KindDistrict, KindAge, KindSex, KindSize, KindPetType, KindPostType}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Entry es una fila id -> etiqueta de una tabla de referencia.
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Defaults son las filas con que se siembran las tablas (memoria y postgres).
// Los ids de tipo_post coinciden con listings.Category.
func Defaults() map[Kind][]Entry {
	return map[Kind][]Entry{
		KindDistrict: {
			{ID: 1, Name: "Miraflores"},
			{ID: 2, Name: "San Isidro"},
			{ID: 3, Name: "Barranco"},
			{ID: 4, Name: "Santiago de Surco"},
			{ID: 5, Name: "San Borja"},
			{ID: 6, Name: "Jesús María"},
			{ID: 7, Name: "Lince"},
			{ID: 8, Name: "Pueblo Libre"},
		},
		KindAge: {
			{ID: 1, Name: "Cachorro"},
			{ID: 2, Name: "Joven"},
			{ID: 3, Name: "Adulto"},
			{ID: 4, Name: "Senior"},
		},
		KindSex: {
			{ID: 1, Name: "Macho"},
			{ID: 2, Name: "Hembra"},
		},
		KindSize: {
			{ID: 1, Name: "Pequeño"},
			{ID: 2, Name: "Mediano"},
			{ID: 3, Name: "Grande"},
		},
		KindPetType: {
			{ID: 1, Name: "Perro"},
			{ID: 2, Name: "Gato"},
			{ID: 3, Name: "Otro"},
		},
		KindPostType: {
			{ID: 1, Name: "Adopción"},
			{ID: 2, Name: "Ayuda"},
			{ID: 3, Name: "Cruce"},
		},
	}
}
