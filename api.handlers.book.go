package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// UpdateBookResult is sent back after a successful update.
type UpdateBookResult struct {
	Title   string `json:"title"`
	Updated bool   `json:"updated"`
}

// DeleteBooksResult is sent back after a delete request.
type DeleteBooksResult struct {
	Title   string `json:"title"`
	Removed int    `json:"removed"`
}

// GenresResult lists the genres present in the collection and the suggested ones.
type GenresResult struct {
	Genres    []string `json:"genres"`
	Suggested []string `json:"suggested"`
}

// CreateBook adds a new book to the collection.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateBookRequest
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeCreateBookRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to create the book", req))
		return
	}

	book, err := api.bookService.Add(r.Context(), req.Title, req.Author, req.Year, req.Genre, req.Read)
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to create the book", err.Error()))
		return
	}
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusInternalServerError, "failed to save the book", book))
		return
	}
	api.logger.Info("success to create book", zap.String("book.title", book.Title), zap.String("request.id", requestID))
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusCreated, "Book created successfully.", nil, book))
}

// GetAllBooks lists the books matching the optional `q`, `scope` and `genre` query parameters.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	q := r.URL.Query()
	genre := q.Get("genre")
	if genre == "" {
		genre = AllGenres
	}
	books := api.bookService.Query(r.Context()).Filter(q.Get("q"), ParseSearchScope(q.Get("scope")), genre)
	api.logger.Info("success to get books", zap.String("request.id", requestID), zap.Int("books.count", len(books)))
	total := len(books)
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Books fetched successfully.", &total, books))
}

// UpdateBook merges the request fields into the first book with the `title` query value.
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var fields BookUpdate
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	title := r.URL.Query().Get("title")
	if title == "" {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(missingFieldError("title")))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to update the book", "title is required"))
		return
	}

	err := DecodeUpdateBookRequestBody(r, &fields)
	if err == nil && fields.IsEmpty() {
		err = errors.New("no field to update")
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to update the book", err.Error()))
		return
	}

	found, err := api.bookService.Update(r.Context(), title, fields)
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		api.logger.Error("failed to update book", zap.String("book.title", title), zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to update the book", err.Error()))
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.String("book.title", title), zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusInternalServerError, "failed to save the book", EmptyData))
		return
	}
	if !found {
		api.logger.Info("book does not exist", zap.String("book.title", title), zap.String("request.id", requestID))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusNotFound, "book does not exist", UpdateBookResult{Title: title}))
		return
	}
	api.logger.Info("success to update book", zap.String("book.title", title), zap.String("request.id", requestID))
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Book updated successfully.", nil, UpdateBookResult{Title: title, Updated: true}))
}

// DeleteBooks removes every book with the `title` query value. Removing
// nothing is not a failure, the response reports the removed count.
func (api *APIHandler) DeleteBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	title := r.URL.Query().Get("title")
	if title == "" {
		api.logger.Error("failed to delete books", zap.String("request.id", requestID), zap.Error(missingFieldError("title")))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusBadRequest, "failed to delete the books", "title is required"))
		return
	}

	removed, err := api.bookService.Delete(r.Context(), title)
	if err != nil {
		api.logger.Error("failed to delete books", zap.String("book.title", title), zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusInternalServerError, "failed to save the books", DeleteBooksResult{Title: title, Removed: removed}))
		return
	}
	api.logger.Info("success to delete books", zap.String("book.title", title), zap.Int("books.removed", removed), zap.String("request.id", requestID))
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Books deleted successfully.", nil, DeleteBooksResult{Title: title, Removed: removed}))
}

// GetGenres lists the genres currently present in the collection.
func (api *APIHandler) GetGenres(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	result := GenresResult{
		Genres:    api.bookService.Query(r.Context()).DistinctGenres(),
		Suggested: DefaultGenres,
	}
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Genres fetched successfully.", nil, result))
}

// GetStats provides the reading statistics of the collection.
func (api *APIHandler) GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	stats := api.bookService.Query(r.Context()).Stats()
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Stats fetched successfully.", nil, stats))
}

// GetGenreDistribution provides the number of books per genre.
func (api *APIHandler) GetGenreDistribution(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	dist := api.bookService.Query(r.Context()).GenreDistribution()
	if dist == nil {
		api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "No books in the collection yet.", nil, nil))
		return
	}
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Genre distribution fetched successfully.", nil, dist))
}

// ExportBooks sends the collection as a spreadsheet file.
func (api *APIHandler) ExportBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	f, err := BuildBooksWorkbook(api.bookService.Query(r.Context()))
	if err != nil {
		api.logger.Error("failed to export books", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusInternalServerError, "failed to export the books", EmptyData))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="books.xlsx"`)
	if err = f.Write(w); err != nil {
		api.logger.Error("failed to send export response", zap.String("request.id", requestID), zap.Error(err))
		return
	}
	api.logger.Info("success to export books", zap.String("request.id", requestID))
}
