package listings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petpatrol/internal/middleware"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	// CreateTimeout acota el flujo de creación, que no se cancela si el cliente se desconecta.
	CreateTimeout time.Duration
	MaxImageBytes int64
	// AuthRequired exige claims para crear publicaciones.
	AuthRequired bool
	Logger       logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.CreateTimeout <= 0 {
		opts.CreateTimeout = 15 * time.Second
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r.Post("/crearMascotaYPost", createListingHandler(svc, opts))

	r.Route("/post", func(pr chi.Router) {
		pr.Get("/", listListingsHandler(svc, opts))
		pr.Get("/{postID}", getListingHandler(svc, opts))
	})
}

type createListingRequest struct {
	Name        string `json:"name_mascota"`
	Description string `json:"contenido_mascota"`
	DistrictID  int64  `json:"id_distrito"`
	AgeID       int64  `json:"id_edad"`
	SexID       int64  `json:"id_sexo"`
	SizeID      int64  `json:"id_size"`
	TypeID      int64  `json:"id_tipo"`
	UserID      int64  `json:"user_id"`
	Category    int64  `json:"tipo_post"`
}

type createListingResponse struct {
	Message  string  `json:"message"`
	PetID    int64   `json:"mascotaId"`
	PostID   int64   `json:"postId"`
	ImageURL *string `json:"imageUrl"`
}

type petResponse struct {
	ID          int64     `json:"id_mascota"`
	Name        string    `json:"name_mascota"`
	Description string    `json:"contenido_mascota"`
	DistrictID  int64     `json:"id_distrito"`
	AgeID       int64     `json:"id_edad"`
	SexID       int64     `json:"id_sexo"`
	SizeID      int64     `json:"id_size"`
	TypeID      int64     `json:"id_tipo"`
	UserID      int64     `json:"user_id"`
	PostID      *int64    `json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type listingResponse struct {
	PostID    int64       `json:"id_post"`
	UserID    int64       `json:"user_id"`
	PetID     int64       `json:"mascota_id"`
	Category  int64       `json:"tipo_post"`
	CreatedAt time.Time   `json:"created_at"`
	ImageURL  *string     `json:"imageUrl"`
	Pet       petResponse `json:"mascota"`
}

type errorResponse struct {
	Message string                  `json:"message"`
	Error   string                  `json:"error,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// createListingHandler godoc
// @Summary Crear mascota y post
// @Description Crea la mascota, su post y (opcional) sube la imagen a object storage como una sola unidad. Acepta multipart/form-data (campo de archivo `image`) o JSON sin imagen. Si falla cualquier paso no queda nada persistido; `error` trae el código del paso.
// @Tags listings
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param name_mascota formData string true "Nombre de la mascota"
// @Param contenido_mascota formData string false "Descripción"
// @Param id_distrito formData int true "Distrito"
// @Param id_edad formData int true "Edad"
// @Param id_sexo formData int true "Sexo"
// @Param id_size formData int true "Tamaño"
// @Param id_tipo formData int true "Tipo de mascota"
// @Param user_id formData int false "Usuario dueño (por defecto el autenticado)"
// @Param tipo_post formData int true "1 adopción, 2 ayuda, 3 cruce"
// @Param image formData file false "Imagen jpeg/png/gif/webp"
// @Success 201 {object} createListingResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse "error: begin_failed, insert_pet_failed, insert_post_failed, link_pet_failed, image_upload_failed, commit_failed"
// @Router /crearMascotaYPost [post]
func createListingHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context(), opts.Logger)

		claims, authed := middleware.GetClaims(r.Context())
		authed = authed && strings.TrimSpace(claims.UserID) != ""
		if opts.AuthRequired && !authed {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "No autenticado."})
			return
		}

		in, fieldErrs, err := decodeCreateRequest(w, r, opts.MaxImageBytes)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Solicitud inválida.", Error: err.Error()})
			return
		}
		if len(fieldErrs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Datos inválidos.", Errors: fieldErrs})
			return
		}

		if authed {
			callerID, err := strconv.ParseInt(claims.UserID, 10, 64)
			if err != nil {
				writeJSON(w, http.StatusForbidden, errorResponse{Message: "Usuario no permitido."})
				return
			}
			if in.UserID == 0 {
				in.UserID = callerID
			}
			if in.UserID != callerID {
				writeJSON(w, http.StatusForbidden, errorResponse{Message: "No puedes publicar a nombre de otro usuario."})
				return
			}
		}

		// La desconexión del cliente no aborta la transacción; solo el timeout.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), opts.CreateTimeout)
		defer cancel()

		res, err := svc.Create(ctx, in)
		if err != nil {
			var se *StepError
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Datos inválidos.", Errors: validation.Fields(err)})
			case errors.As(err, &se):
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Message: "Error al crear la mascota y el post.",
					Error:   se.Code(),
				})
			default:
				log.Error("listing create failed", map[string]any{"error": err})
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Message: "Error al crear la mascota y el post.",
					Error:   "internal_error",
				})
			}
			return
		}

		writeJSON(w, http.StatusCreated, createListingResponse{
			Message:  "Mascota y post creados con éxito.",
			PetID:    res.PetID,
			PostID:   res.PostID,
			ImageURL: res.ImageURL,
		})
	}
}

// decodeCreateRequest lee multipart (con imagen opcional) o JSON.
// Devuelve errores por campo para números mal formados; err solo para cuerpos ilegibles.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request, maxImageBytes int64) (CreateInput, []validation.FieldError, error) {
	// margen para los campos de texto del formulario
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return decodeMultipart(r, maxImageBytes)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return CreateInput{}, nil, errors.New("invalid form")
		}
		in, fieldErrs := inputFromForm(r.PostFormValue)
		return in, fieldErrs, nil
	default:
		var req createListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return CreateInput{}, nil, errors.New("invalid json")
		}
		return CreateInput{
			Name:        req.Name,
			Description: req.Description,
			DistrictID:  req.DistrictID,
			AgeID:       req.AgeID,
			SexID:       req.SexID,
			SizeID:      req.SizeID,
			TypeID:      req.TypeID,
			UserID:      req.UserID,
			Category:    Category(req.Category),
		}, nil, nil
	}
}

func decodeMultipart(r *http.Request, maxImageBytes int64) (CreateInput, []validation.FieldError, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return CreateInput{}, []validation.FieldError{{
				Field:   "image",
				Rule:    "max",
				Message: "image debe pesar como máximo " + strconv.FormatInt(maxImageBytes, 10) + " bytes",
			}}, nil
		}
		return CreateInput{}, nil, errors.New("invalid multipart form")
	}

	in, fieldErrs := inputFromForm(r.FormValue)

	f, hdr, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, fieldErrs, nil
	case err != nil:
		return CreateInput{}, nil, errors.New("invalid image part")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return CreateInput{}, nil, errors.New("invalid image part")
	}
	in.Image = &Image{
		Data:        data,
		ContentType: hdr.Header.Get("Content-Type"),
		Filename:    hdr.Filename,
	}
	return in, fieldErrs, nil
}

func inputFromForm(get func(string) string) (CreateInput, []validation.FieldError) {
	var fieldErrs []validation.FieldError
	num := func(field string) int64 {
		raw := strings.TrimSpace(get(field))
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, validation.FieldError{
				Field:   field,
				Rule:    "int",
				Message: field + " debe ser un número entero",
			})
		}
		return v
	}

	in := CreateInput{
		Name:        get("name_mascota"),
		Description: get("contenido_mascota"),
		DistrictID:  num("id_distrito"),
		AgeID:       num("id_edad"),
		SexID:       num("id_sexo"),
		SizeID:      num("id_size"),
		TypeID:      num("id_tipo"),
		UserID:      num("user_id"),
		Category:    Category(num("tipo_post")),
	}
	return in, fieldErrs
}

// listListingsHandler godoc
// @Summary Listar publicaciones
// @Description Lista posts con su mascota, del más reciente al más antiguo. Todos los filtros son opcionales.
// @Tags listings
// @Produce json
// @Param id_distrito query int false "Distrito"
// @Param id_edad query int false "Edad"
// @Param id_sexo query int false "Sexo"
// @Param id_size query int false "Tamaño"
// @Param id_tipo query int false "Tipo de mascota"
// @Param tipo_post query int false "Tipo de post"
// @Param user_id query int false "Usuario dueño"
// @Param limit query int false "Máximo de resultados (default 50, máx 200)"
// @Param offset query int false "Desplazamiento"
// @Success 200 {array} listingResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /post [get]
func listListingsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var fieldErrs []validation.FieldError
		num := func(field string) int64 {
			raw := strings.TrimSpace(q.Get(field))
			if raw == "" {
				return 0
			}
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				fieldErrs = append(fieldErrs, validation.FieldError{
					Field:   field,
					Rule:    "int",
					Message: field + " debe ser un entero no negativo",
				})
				return 0
			}
			return v
		}

		f := ListFilter{
			DistrictID: num("id_distrito"),
			AgeID:      num("id_edad"),
			SexID:      num("id_sexo"),
			SizeID:     num("id_size"),
			TypeID:     num("id_tipo"),
			Category:   Category(num("tipo_post")),
			UserID:     num("user_id"),
			Limit:      int(num("limit")),
			Offset:     int(num("offset")),
		}
		if len(fieldErrs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Filtros inválidos.", Errors: fieldErrs})
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			logger.FromContext(r.Context(), opts.Logger).Error("listing list failed", map[string]any{"error": err})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error al consultar la base de datos."})
			return
		}

		out := make([]listingResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toListingResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getListingHandler godoc
// @Summary Obtener publicación
// @Tags listings
// @Produce json
// @Param postID path int true "ID del post"
// @Success 200 {object} listingResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /post/{postID} [get]
func getListingHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Post no encontrado."})
			return
		}

		l, err := svc.Get(r.Context(), postID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Message: "Post no encontrado."})
				return
			}
			logger.FromContext(r.Context(), opts.Logger).Error("listing get failed", map[string]any{
				"post_id": postID,
				"error":   err,
			})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error al consultar la base de datos."})
			return
		}

		writeJSON(w, http.StatusOK, toListingResponse(l))
	}
}

func toListingResponse(l Listing) listingResponse {
	return listingResponse{
		PostID:    l.Post.ID,
		UserID:    l.Post.UserID,
		PetID:     l.Post.PetID,
		Category:  int64(l.Post.Category),
		CreatedAt: l.Post.CreatedAt,
		ImageURL:  l.ImageURL,
		Pet: petResponse{
			ID:          l.Pet.ID,
			Name:        l.Pet.Name,
			Description: l.Pet.Description,
			DistrictID:  l.Pet.DistrictID,
			AgeID:       l.Pet.AgeID,
			SexID:       l.Pet.SexID,
			SizeID:      l.Pet.SizeID,
			TypeID:      l.Pet.TypeID,
			UserID:      l.Pet.UserID,
			PostID:      l.Pet.PostID,
			CreatedAt:   l.Pet.CreatedAt,
		},
	}
}

// writeJSON está duplicado en cada módulo (igual que en catalog/users).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
