package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

const maxProductFormBytes = 10 << 20

// Admin serves the seller's product management pages.
type Admin struct {
	*Views
	catalog CatalogService
}

func NewAdmin(views *Views, catalog CatalogService) *Admin {
	return &Admin{Views: views, catalog: catalog}
}

func (h *Admin) Products(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	products, err := h.catalog.OwnerProducts(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/products", h.page(r, "Admin Products", products))
}

func (h *Admin) AddProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin/edit-product", h.page(r, "Add Product", web.ProductForm{}))
}

func (h *Admin) AddProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	input, cleanup, err := productForm(w, r)
	defer cleanup()
	if err == nil {
		_, err = h.catalog.CreateProduct(r.Context(), user, input)
	}
	if err != nil {
		h.productFormError(w, r, "Add Product", web.ProductForm{Input: input}, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *Admin) EditProductForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("edit") != "true" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	id, ok := urlID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	user, _ := h.user(r)
	product, err := h.catalog.GetOwnedProduct(r.Context(), user, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/edit-product", h.page(r, "Edit Product", web.ProductForm{
		Editing: true,
		Product: product,
		Input: model.ProductInput{
			Title:       product.Title,
			Price:       product.Price.StringFixed(2),
			Description: product.Description,
		},
	}))
}

func (h *Admin) EditProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	input, cleanup, err := productForm(w, r)
	defer cleanup()

	id, parseErr := uuid.Parse(r.FormValue("productId"))
	if parseErr != nil {
		h.NotFound(w, r)
		return
	}
	if err == nil {
		_, err = h.catalog.UpdateProduct(r.Context(), user, id, input)
	}
	if err != nil {
		form := web.ProductForm{Editing: true, Product: model.Product{ID: id}, Input: input}
		h.productFormError(w, r, "Edit Product", form, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProduct is called from the admin page script and answers with JSON.
func (h *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found."})
		return
	}

	user, _ := h.user(r)
	if err := h.catalog.DeleteProduct(r.Context(), user, id); err != nil {
		status := http.StatusInternalServerError
		if apiErr, ok := apperror.As(err); ok {
			status = apiErr.HTTPStatus()
		}
		h.logger.Warn("Admin handler: failed to delete product",
			"product_id", id,
			"user_id", user.ID,
			"error", err.Error())
		writeJSON(w, status, map[string]string{"message": "Deleting product failed."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Success!"})
}

func (h *Admin) productFormError(w http.ResponseWriter, r *http.Request, title string, form web.ProductForm, err error) {
	if !apperror.IsKind(err, apperror.KindValidation) {
		h.handleError(w, r, err)
		return
	}
	apiErr, _ := apperror.As(err)
	form.Input.Image = nil
	p := h.page(r, title, form)
	p.Error = apiErr.Message
	h.render(w, r, http.StatusUnprocessableEntity, "admin/edit-product", p)
}

// productForm reads the multipart product form. The returned cleanup closes
// the uploaded file and must always be called.
func productForm(w http.ResponseWriter, r *http.Request) (model.ProductInput, func(), error) {
	cleanup := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, maxProductFormBytes)
	if err := r.ParseMultipartForm(maxProductFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return model.ProductInput{}, cleanup, apperror.NewErrValidation("the submitted form is too large or malformed")
	}

	input := model.ProductInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		cleanup = func() { _ = file.Close() }
		input.Image = &model.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return input, cleanup, apperror.NewErrValidation("failed to read the attached image")
	}

	return input, cleanup, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
