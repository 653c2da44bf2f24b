package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

// UploadsPath prefijo público bajo el que se sirven las imágenes.
const UploadsPath = "/uploads/"

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ImageUpload archivo recibido en el multipart.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUseCase reemplaza la imagen de un producto.
type ImageUseCase struct {
	repo          repository.ItemRepository
	store         ImageStore
	notifier      StockNotifier
	log           *logger.Logger
	publicBaseURL string
	maxBytes      int64
	now           func() time.Time
}

// NewImageUseCase construye el caso de uso. publicBaseURL vacío usa la URL del request.
func NewImageUseCase(repo repository.ItemRepository, store ImageStore, notifier StockNotifier, log *logger.Logger, publicBaseURL string, maxBytes int64) *ImageUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImageUseCase{
		repo:          repo,
		store:         store,
		notifier:      notifier,
		log:           log.Named("images"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ImageUseCase) WithClock(now func() time.Time) *ImageUseCase {
	uc.now = now
	return uc
}

// Upload guarda la imagen como inv_<id>_<unixms>.<ext>, actualiza imagen_url y borra la anterior si era local.
// requestBaseURL se usa solo si no hay PUBLIC_BASE_URL configurado.
func (uc *ImageUseCase) Upload(ctx context.Context, itemID int64, file ImageUpload, requestBaseURL string) (*dto.ItemResponse, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%w: id inválido", domain.ErrInvalidInput)
	}
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(file.ContentType))]
	if !ok {
		return nil, fmt.Errorf("%w: formato no permitido (jpeg, png, webp, gif)", domain.ErrInvalidInput)
	}
	if uc.maxBytes > 0 && file.Size > uc.maxBytes {
		return nil, fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrInvalidInput, uc.maxBytes)
	}

	item, err := uc.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	name := fmt.Sprintf("inv_%d_%d.%s", itemID, uc.now().UnixMilli(), ext)
	if err := uc.store.Save(ctx, name, file.Body); err != nil {
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}

	base := uc.publicBaseURL
	if base == "" {
		base = strings.TrimRight(requestBaseURL, "/")
	}
	publicURL := base + UploadsPath + url.PathEscape(name)

	updated, err := uc.repo.UpdateImageURL(ctx, itemID, publicURL)
	if err != nil || !updated {
		uc.discard(ctx, name)
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}

	if prev := localImageName(itemID, item.ImageURL); prev != "" && prev != name {
		uc.discard(ctx, prev)
	}
	uc.notifier.StockChanged(ctx, itemID)
	uc.log.Info().Int64("item_id", itemID).Str("file", name).Str("url", publicURL).Msg("imagen actualizada")

	item.ImageURL = &publicURL
	return ToItemResponse(item), nil
}

func (uc *ImageUseCase) discard(ctx context.Context, name string) {
	if err := uc.store.Remove(ctx, name); err != nil {
		uc.log.Warn().Err(err).Str("file", name).Msg("no se pudo borrar la imagen")
	}
}

// localImageName extrae el nombre de archivo de una URL servida desde /uploads/.
// Devuelve "" si la URL es externa, intenta salir del directorio o el archivo no
// es de este producto (inv_<itemID>_...).
func localImageName(itemID int64, imageURL *string) string {
	if imageURL == nil {
		return ""
	}
	_, rest, found := strings.Cut(*imageURL, UploadsPath)
	if !found || rest == "" {
		return ""
	}
	name, err := url.PathUnescape(rest)
	if err != nil || path.Base(name) != name || name == "." || name == ".." {
		return ""
	}
	if !strings.HasPrefix(name, fmt.Sprintf("inv_%d_", itemID)) {
		return ""
	}
	return name
}
