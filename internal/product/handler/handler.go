package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/httpserver"
	"github.com/fekuna/omnipos-catalog-service/internal/image"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc            product.UseCase
	images        image.Server
	publicBaseURL string
	logger        logger.ZapLogger
}

// NewProductHandler wires the catalog endpoints. When publicBaseURL is empty
// image URLs are built from the incoming request's scheme and host.
func NewProductHandler(uc product.UseCase, images image.Server, publicBaseURL string, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:            uc,
		images:        images,
		publicBaseURL: publicBaseURL,
		logger:        log,
	}
}

func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("GET /products", h.SearchProducts)
	mux.HandleFunc("GET /products/normal-ring", h.NormalRing)
	mux.HandleFunc("GET /products/best-sellers", h.BestSellers)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("GET /products/{id}/image", h.ProductImage)
	mux.HandleFunc("GET "+image.RoutePrefix+"{filename...}", h.ServeImage)
}

func (h *ProductHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	page, err := h.uc.SearchProducts(r.Context(), q, h.baseURL(r))
	if err != nil {
		h.fail(w, r, "failed to search products", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := h.uc.GetProduct(r.Context(), id, h.baseURL(r))
	if err != nil {
		h.fail(w, r, "failed to get product", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ProductHandler) NormalRing(w http.ResponseWriter, r *http.Request) {
	page, err := h.uc.NormalRing(r.Context(), h.baseURL(r))
	if err != nil {
		h.fail(w, r, "failed to list normal rings", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	page, err := h.uc.BestSellers(r.Context(), h.baseURL(r))
	if err != nil {
		h.fail(w, r, "failed to list best sellers", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ProductImage redirects to the <id>.png file of a product when one exists.
func (h *ProductHandler) ProductImage(w http.ResponseWriter, r *http.Request) {
	url, ok := h.images.ImageURL(h.baseURL(r), r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *ProductHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	err := h.images.ServeImageFile(w, r, r.PathValue("filename"))
	if errors.Is(err, image.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, "failed to serve image", err)
	}
}

func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.Error(err),
		zap.String("request_id", httpserver.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
	)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *ProductHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
