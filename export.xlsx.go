package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	BooksSheet  = "Books"
	StatsSheet  = "Stats"
	GenresSheet = "Genres"
)

// XLSXContentType is the media type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildBooksWorkbook creates a workbook listing the books, the reading
// stats and the genre distribution. The caller must close the file.
func BuildBooksWorkbook(q *BookQuery) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", BooksSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeBooksSheet(f, q); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: books sheet: %w", err)
	}
	if err := writeStatsSheet(f, q.Stats()); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: stats sheet: %w", err)
	}
	if err := writeGenresSheet(f, q); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: genres sheet: %w", err)
	}
	return f, nil
}

func writeBooksSheet(f *excelize.File, q *BookQuery) error {
	header := []interface{}{"Title", "Author", "Year", "Genre", "Read", "Date Added"}
	if err := f.SetSheetRow(BooksSheet, "A1", &header); err != nil {
		return err
	}
	row := 2
	for b := range q.All() {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{b.Title, b.Author, b.Year, b.Genre, readStatus(b.Read), b.DateAdded}
		if err = f.SetSheetRow(BooksSheet, cell, &values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeStatsSheet(f *excelize.File, stats ReadingStats) error {
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Total Books", stats.Total},
		{"Books Read", stats.Completed},
		{"Completion Rate", fmt.Sprintf("%.1f%%", stats.CompletionRate)},
	}
	for i, values := range rows {
		if err := f.SetSheetRow(StatsSheet, fmt.Sprintf("A%d", i+1), &values); err != nil {
			return err
		}
	}
	return nil
}

func writeGenresSheet(f *excelize.File, q *BookQuery) error {
	if _, err := f.NewSheet(GenresSheet); err != nil {
		return err
	}
	header := []interface{}{"Genre", "Books"}
	if err := f.SetSheetRow(GenresSheet, "A1", &header); err != nil {
		return err
	}
	dist := q.GenreDistribution()
	for i, genre := range q.DistinctGenres() {
		values := []interface{}{genre, dist[genre]}
		if err := f.SetSheetRow(GenresSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

func readStatus(read bool) string {
	if read {
		return "Read"
	}
	return "Unread"
}
