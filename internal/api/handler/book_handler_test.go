package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/api/middleware"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

type stubCatalogService struct {
	listFn   func(ctx context.Context, f domain.BookFilter) ([]domain.Book, error)
	catsFn   func(ctx context.Context) ([]string, error)
	addFn    func(ctx context.Context, caller domain.Principal, in ports.AddBookInput) (*domain.Book, error)
	removeFn func(ctx context.Context, caller domain.Principal, id int64) error
}

func (s *stubCatalogService) ListBooks(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	return s.listFn(ctx, f)
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.catsFn(ctx)
}

func (s *stubCatalogService) AddBook(ctx context.Context, caller domain.Principal, in ports.AddBookInput) (*domain.Book, error) {
	return s.addFn(ctx, caller, in)
}

func (s *stubCatalogService) RemoveBook(ctx context.Context, caller domain.Principal, id int64) error {
	return s.removeFn(ctx, caller, id)
}

// authenticated runs h behind Auth with a verifier that always yields p.
func authenticated(c echo.Context, p domain.Principal, h echo.HandlerFunc) error {
	return middleware.Auth(fixedVerifier{p})(h)(c)
}

type fixedVerifier struct{ p domain.Principal }

func (v fixedVerifier) VerifyToken(string) (*domain.Principal, error) {
	p := v.p
	return &p, nil
}

func TestBookHandler_List_PassesFilter(t *testing.T) {
	stub := &stubCatalogService{
		listFn: func(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
			if f.Search != "borges" || f.Category != "Ficción" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []domain.Book{{ID: 2, Title: "El Aleph", Author: "Borges", Category: "Ficción"}}, nil
		},
	}
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/libros?q=borges&categoria=Ficci%C3%B3n", nil)
	rec := httptest.NewRecorder()

	if err := NewBookHandler(stub).List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var books []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &books); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(books) != 1 || books[0]["titulo"] != "El Aleph" || books[0]["autor"] != "Borges" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestBookHandler_Categories(t *testing.T) {
	stub := &stubCatalogService{
		catsFn: func(context.Context) ([]string, error) { return []string{"Ficción", "Historia"}, nil },
	}
	e := newEcho()
	rec := httptest.NewRecorder()

	if err := NewBookHandler(stub).Categories(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/categorias", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[\"Ficción\",\"Historia\"]\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func multipartBook(t *testing.T, withPDF bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("titulo", "Rayuela")
	_ = w.WriteField("autor", "Cortázar")
	_ = w.WriteField("categoria", "Ficción")

	img, _ := w.CreateFormFile("imagen", "portada.jpg")
	_, _ = img.Write([]byte("jpeg"))
	if withPDF {
		pdf, _ := w.CreateFormFile("pdf", "rayuela.pdf")
		_, _ = pdf.Write([]byte("%PDF"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestBookHandler_Create_Success(t *testing.T) {
	admin := domain.Principal{UserID: 1, IsAdmin: true}
	stub := &stubCatalogService{
		addFn: func(ctx context.Context, caller domain.Principal, in ports.AddBookInput) (*domain.Book, error) {
			if caller != admin {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if in.Title != "Rayuela" || in.Cover == nil || in.Document == nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Document.Filename != "rayuela.pdf" {
				t.Fatalf("unexpected document name %q", in.Document.Filename)
			}
			data, _ := io.ReadAll(in.Document.Content)
			if string(data) != "%PDF" {
				t.Fatalf("unexpected document content %q", data)
			}
			return &domain.Book{ID: 3}, nil
		},
	}

	body, ct := multipartBook(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/libros", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.Header.Set(echo.HeaderAuthorization, "Bearer x")
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := authenticated(c, admin, NewBookHandler(stub).Create); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"message\":\"Libro agregado\"}\n" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestBookHandler_Create_MissingFileIsNil(t *testing.T) {
	stub := &stubCatalogService{
		addFn: func(ctx context.Context, caller domain.Principal, in ports.AddBookInput) (*domain.Book, error) {
			if in.Document != nil {
				t.Fatalf("expected nil document")
			}
			return nil, domain.ErrMissingBookFields
		},
	}

	body, ct := multipartBook(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/libros", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.Header.Set(echo.HeaderAuthorization, "Bearer x")
	c := newEcho().NewContext(req, httptest.NewRecorder())

	err := authenticated(c, domain.Principal{UserID: 1, IsAdmin: true}, NewBookHandler(stub).Create)
	if !errors.Is(err, domain.ErrMissingBookFields) {
		t.Fatalf("expected ErrMissingBookFields, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	stub := &stubCatalogService{
		removeFn: func(ctx context.Context, caller domain.Principal, id int64) error {
			if id == 404 {
				return domain.ErrBookNotFound
			}
			return nil
		},
	}
	h := NewBookHandler(stub)
	admin := domain.Principal{UserID: 1, IsAdmin: true}

	run := func(id string) (*httptest.ResponseRecorder, error) {
		e := newEcho()
		req := httptest.NewRequest(http.MethodDelete, "/api/libros/"+id, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer x")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return rec, authenticated(c, admin, h.Delete)
	}

	rec, err := run("7")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Libro borrado correctamente" || resp["libroId"] != float64(7) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	if _, err := run("abc"); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("bad id: expected validation error, got %v", err)
	}
	if _, err := run("404"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
