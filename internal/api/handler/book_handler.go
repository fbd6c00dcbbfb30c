package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/api/metrics"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.CatalogService
}

func NewBookHandler(service ports.CatalogService) *BookHandler {
	return &BookHandler{service: service}
}

var errInvalidBookID = domain.NewError(domain.KindValidation, "ID de libro inválido")

// List returns the catalog, newest first.
//
// @Summary      List books
// @Tags         libros
// @Produce      json
// @Param        q          query     string  false  "Search in title, author or category"
// @Param        categoria  query     string  false  "Exact category"
// @Success      200        {array}   domain.Book
// @Failure      500        {object}  errorBody
// @Router       /api/libros [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.ListBooks(c.Request().Context(), domain.BookFilter{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("categoria"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Categories returns the distinct categories in ascending order.
//
// @Summary      List categories
// @Tags         libros
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  errorBody
// @Router       /api/categorias [get]
func (h *BookHandler) Categories(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// Create adds a book from a multipart form with a cover image and a PDF.
//
// @Summary      Add a book
// @Tags         libros
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        titulo     formData  string  true  "Title"
// @Param        autor      formData  string  true  "Author"
// @Param        categoria  formData  string  true  "Category"
// @Param        imagen     formData  file    true  "Cover image"
// @Param        pdf        formData  file    true  "Book PDF"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  errorBody
// @Failure      401        {object}  errorBody
// @Failure      403        {object}  errorBody
// @Failure      500        {object}  errorBody
// @Router       /api/libros [post]
func (h *BookHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	cover, closeCover, err := formUpload(c, "imagen")
	if err != nil {
		return err
	}
	defer closeCover()

	document, closeDocument, err := formUpload(c, "pdf")
	if err != nil {
		return err
	}
	defer closeDocument()

	_, err = h.service.AddBook(c.Request().Context(), caller, ports.AddBookInput{
		Title:    c.FormValue("titulo"),
		Author:   c.FormValue("autor"),
		Category: c.FormValue("categoria"),
		Cover:    cover,
		Document: document,
	})
	if err != nil {
		return err
	}

	metrics.BooksAddedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Libro agregado"})
}

// Delete removes one book. Loans of the book are kept.
//
// @Summary      Delete a book
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  deleteBookResponse
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/libros/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return errInvalidBookID
	}

	if err := h.service.RemoveBook(c.Request().Context(), caller, id); err != nil {
		return err
	}

	metrics.BooksRemovedTotal.Inc()
	return c.JSON(http.StatusOK, deleteBookResponse{Message: "Libro borrado correctamente", BookID: id})
}

// formUpload opens the named multipart file. A missing file yields a nil
// upload so the service can report the missing field.
func formUpload(c echo.Context, field string) (*domain.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, domain.Internal("Error al agregar libro", err)
	}

	return &domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
