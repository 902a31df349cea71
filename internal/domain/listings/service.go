package listings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petpatrol/internal/domain/catalog"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/platform/metrics"
	"petpatrol/internal/platform/validation"
	"petpatrol/internal/ports/objectstore"
)

// DefaultMaxImageBytes aplica cuando Options.MaxImageBytes no viene.
const DefaultMaxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Options struct {
	Objects       objectstore.Store
	Refs          ReferenceChecker // nil = no se validan ids de referencia
	Logger        logger.Logger
	MaxImageBytes int64
}

type Service struct {
	store   Store
	objects objectstore.Store
	refs    ReferenceChecker
	log     logger.Logger

	maxImageBytes int64
	now           func() time.Time
}

func NewService(store Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	return &Service{
		store:         store,
		objects:       opts.Objects,
		refs:          opts.Refs,
		log:           opts.Logger,
		maxImageBytes: opts.MaxImageBytes,
		now:           time.Now,
	}
}

// ObjectKey es la clave de la imagen de un post: el id en decimal.
func ObjectKey(postID int64) string {
	return strconv.FormatInt(postID, 10)
}

// Create crea mascota + post (+ imagen) como una sola unidad.
// Si algo falla no queda ninguna fila ni objeto de esta llamada.
func (s *Service) Create(ctx context.Context, in CreateInput) (Result, error) {
	start := time.Now()
	res, err := s.create(ctx, in)
	metrics.ObserveListingCreate(outcome(err), start)
	return res, err
}

func (s *Service) create(ctx context.Context, in CreateInput) (Result, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validate(ctx, &in); err != nil {
		return Result{}, err
	}

	log := logger.FromContext(ctx, s.log)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		log.Error("listing create failed", map[string]any{"step": string(StepBegin), "error": err})
		return Result{}, stepErr(StepBegin, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn("listing rollback failed", map[string]any{"error": rbErr})
		}
	}()

	fail := func(step Step, err error, fields map[string]any) (Result, error) {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["step"] = string(step)
		fields["error"] = err
		log.Error("listing create failed", fields)
		return Result{}, stepErr(step, err)
	}

	now := s.now().UTC()

	petID, err := tx.InsertPet(ctx, Pet{
		Name:        in.Name,
		Description: in.Description,
		DistrictID:  in.DistrictID,
		AgeID:       in.AgeID,
		SexID:       in.SexID,
		SizeID:      in.SizeID,
		TypeID:      in.TypeID,
		UserID:      in.UserID,
		CreatedAt:   now,
	})
	if err != nil {
		return fail(StepInsertPet, err, nil)
	}

	postID, err := tx.InsertPost(ctx, Post{
		UserID:    in.UserID,
		PetID:     petID,
		Category:  in.Category,
		HasImage:  in.Image != nil,
		CreatedAt: now,
	})
	if err != nil {
		return fail(StepInsertPost, err, map[string]any{"mascota_id": petID})
	}

	if err := tx.LinkPet(ctx, petID, postID); err != nil {
		return fail(StepLinkPet, err, map[string]any{"mascota_id": petID, "post_id": postID})
	}

	key := ObjectKey(postID)
	if in.Image != nil {
		if err := s.upload(ctx, key, petID, in); err != nil {
			return fail(StepUpload, err, map[string]any{"post_id": postID})
		}
	}

	if err := tx.Commit(); err != nil {
		if in.Image != nil {
			s.discard(ctx, postID, key)
		}
		return fail(StepCommit, err, map[string]any{"post_id": postID})
	}
	committed = true

	res := Result{PetID: petID, PostID: postID}
	if in.Image != nil {
		u := s.objects.URL(key)
		res.ImageURL = &u
	}

	log.Info("listing created", map[string]any{
		"mascota_id": petID,
		"post_id":    postID,
		"has_image":  in.Image != nil,
	})
	return res, nil
}

func (s *Service) validate(ctx context.Context, in *CreateInput) error {
	var fields []validation.FieldError
	if err := validation.Struct(in); err != nil {
		fields = append(fields, validation.Fields(err)...)
	}

	if in.Image != nil {
		switch {
		case len(in.Image.Data) == 0:
			fields = append(fields, validation.FieldError{Field: "image", Rule: "required", Message: "image está vacío"})
		case int64(len(in.Image.Data)) > s.maxImageBytes:
			fields = append(fields, validation.FieldError{
				Field:   "image",
				Rule:    "max",
				Message: fmt.Sprintf("image debe pesar como máximo %d bytes", s.maxImageBytes),
			})
		default:
			ct := sniffImageType(in.Image.Data)
			if !allowedImageTypes[ct] {
				fields = append(fields, validation.FieldError{
					Field:   "image",
					Rule:    "mime",
					Message: "image debe ser jpeg, png, gif o webp",
				})
			}
			in.Image.ContentType = ct
		}
	}

	if len(fields) == 0 && s.refs != nil {
		refs := []struct {
			field string
			kind  catalog.Kind
			id    int64
		}{
			{"id_distrito", catalog.KindDistrict, in.DistrictID},
			{"id_edad", catalog.KindAge, in.AgeID},
			{"id_sexo", catalog.KindSex, in.SexID},
			{"id_size", catalog.KindSize, in.SizeID},
			{"id_tipo", catalog.KindPetType, in.TypeID},
			{"tipo_post", catalog.KindPostType, int64(in.Category)},
		}
		for _, ref := range refs {
			ok, err := s.refs.Has(ctx, ref.kind, ref.id)
			if err != nil {
				logger.FromContext(ctx, s.log).Error("listing create failed", map[string]any{
					"step":  string(StepCheckReferences),
					"kind":  string(ref.kind),
					"error": err,
				})
				return stepErr(StepCheckReferences, err)
			}
			if !ok {
				fields = append(fields, validation.FieldError{
					Field:   ref.field,
					Rule:    "exists",
					Message: fmt.Sprintf("%s no existe", ref.field),
				})
			}
		}
	}

	if len(fields) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, &validation.Error{Fields: fields})
	}
	return nil
}

// sniffImageType ignora el Content-Type declarado por el cliente.
func sniffImageType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func (s *Service) upload(ctx context.Context, key string, petID int64, in CreateInput) error {
	if s.objects == nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return objectstore.ErrNotConfigured
	}
	err := s.objects.Put(ctx, objectstore.Object{
		Key:         key,
		Body:        in.Image.Data,
		ContentType: in.Image.ContentType,
		Metadata: map[string]string{
			"mascota-id": strconv.FormatInt(petID, 10),
			"user-id":    strconv.FormatInt(in.UserID, 10),
		},
	})
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return err
	}
	metrics.ImageUploads.WithLabelValues("ok").Inc()
	return nil
}

// discard borra una imagen ya subida cuyo commit falló. Best-effort.
// Un error de commit puede ser ambiguo (se cae la conexión tras enviar COMMIT):
// solo se borra si el post confirmadamente no existe.
func (s *Service) discard(ctx context.Context, postID int64, key string) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	log := logger.FromContext(ctx, s.log)

	if _, err := s.store.GetByPostID(dctx, postID); !errors.Is(err, ErrNotFound) {
		log.Warn("image kept after failed commit", map[string]any{
			"key":   key,
			"error": err,
		})
		return
	}

	if err := s.objects.Delete(dctx, key); err != nil {
		log.Warn("orphan image delete failed", map[string]any{
			"key":   key,
			"error": err,
		})
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Listing, error) {
	items, err := s.store.List(ctx, f.normalized())
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStorage, err)
	}
	for i := range items {
		s.attachImageURL(&items[i])
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, postID int64) (Listing, error) {
	if postID <= 0 {
		return Listing{}, ErrNotFound
	}
	l, err := s.store.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("%w: get: %w", ErrStorage, err)
	}
	s.attachImageURL(&l)
	return l, nil
}

func (s *Service) attachImageURL(l *Listing) {
	if !l.Post.HasImage || s.objects == nil {
		return
	}
	u := s.objects.URL(ObjectKey(l.Post.ID))
	l.ImageURL = &u
}

func outcome(err error) string {
	var se *StepError
	switch {
	case err == nil:
		return "committed"
	case errors.As(err, &se):
		return se.Code()
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
