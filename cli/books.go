package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-console/api"
	"library-console/report"
)

func newBooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
	}
	cmd.AddCommand(
		newBooksListCmd(app),
		newBooksSearchCmd(app),
		newBooksAddCmd(app),
		newBooksUpdateCmd(app),
		newBooksDeleteCmd(app),
		newBooksReportCmd(app),
	)
	return cmd
}

func newBooksListCmd(app *App) *cobra.Command {
	var title, author string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered server-side by title or author",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if title != "" && author != "" {
				return fmt.Errorf("use either --title or --author, not both")
			}

			var filter *api.BookFilter
			if title != "" {
				filter = &api.BookFilter{Field: "title", Value: title}
			} else if author != "" {
				filter = &api.BookFilter{Field: "author", Value: author}
			}

			books, err := app.API.Books().List(cmd.Context(), filter)
			if err != nil {
				return app.surface(err)
			}
			app.renderBooks(books)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "filter by title")
	cmd.Flags().StringVar(&author, "author", "", "filter by author")
	return cmd
}

func newBooksSearchCmd(app *App) *cobra.Command {
	var byAuthor bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title (or author with --author)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			filter := &api.BookFilter{Field: "title", Value: args[0]}
			if byAuthor {
				filter.Field = "author"
			}

			books, err := app.API.Books().List(cmd.Context(), filter)
			if err != nil {
				return app.surface(err)
			}
			app.renderBooks(books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byAuthor, "author", false, "match against the author instead of the title")
	return cmd
}

func newBooksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			sc := bufio.NewScanner(app.In)
			book, err := promptBook(sc, app, api.Book{Quantity: 1})
			if err != nil {
				return err
			}

			created, err := app.API.Books().Create(cmd.Context(), book)
			if err != nil {
				return app.surface(err)
			}
			app.printf("Added book '%s' with ID %d\n", created.Title, created.ID)
			app.record("create", "book", created.ID, created.Title)
			return app.reloadBooks(cmd.Context())
		},
	}
}

func newBooksUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <book-id>",
		Short: "Update a book's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid book ID: %s", args[0])
			}

			current, err := app.findBook(cmd.Context(), id)
			if err != nil {
				return err
			}

			sc := bufio.NewScanner(app.In)
			book, err := promptBook(sc, app, *current)
			if err != nil {
				return err
			}

			updated, err := app.API.Books().Update(cmd.Context(), id, book)
			if err != nil {
				return app.surface(err)
			}
			app.printf("Updated book '%s'\n", updated.Title)
			app.record("update", "book", id, updated.Title)
			return app.reloadBooks(cmd.Context())
		},
	}
}

func newBooksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid book ID: %s", args[0])
			}

			if err := app.API.Books().Delete(cmd.Context(), id); err != nil {
				return app.surface(err)
			}
			app.printf("Deleted book %d\n", id)
			app.record("delete", "book", id, "")
			return app.reloadBooks(cmd.Context())
		},
	}
}

func newBooksReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the book inventory report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			books, err := app.API.Books().List(cmd.Context(), nil)
			if err != nil {
				return app.surface(err)
			}
			if len(books) == 0 {
				return fmt.Errorf("no books to report on")
			}

			path := app.reportPath(out, "Book_Report.pdf")
			if err := app.writeReport(path, func(w io.Writer) error {
				return report.BookInventory(w, books, time.Now())
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			app.printf("Report written to %s\n", path)
			app.record("export", "book-report", 0, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default Book_Report.pdf in the report directory)")
	return cmd
}

// promptBook collects book fields, defaulting to the passed values so the
// same flow serves add and update.
func promptBook(sc *bufio.Scanner, app *App, def api.Book) (api.Book, error) {
	title, ok := promptDefault(sc, app.Out, "Title", def.Title)
	if !ok {
		return api.Book{}, fmt.Errorf("aborted")
	}
	author, ok := promptDefault(sc, app.Out, "Author", def.Author)
	if !ok {
		return api.Book{}, fmt.Errorf("aborted")
	}
	isbn, ok := promptDefault(sc, app.Out, "ISBN", def.ISBN)
	if !ok {
		return api.Book{}, fmt.Errorf("aborted")
	}
	category, ok := promptDefault(sc, app.Out, "Category", def.Category)
	if !ok {
		return api.Book{}, fmt.Errorf("aborted")
	}
	quantityStr, ok := promptDefault(sc, app.Out, "Quantity", strconv.Itoa(def.Quantity))
	if !ok {
		return api.Book{}, fmt.Errorf("aborted")
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 0 {
		return api.Book{}, fmt.Errorf("invalid quantity: %s", quantityStr)
	}

	if title == "" || author == "" || isbn == "" {
		return api.Book{}, fmt.Errorf("title, author and ISBN are required")
	}

	return api.Book{Title: title, Author: author, ISBN: isbn, Category: category, Quantity: quantity}, nil
}

// findBook locates one book via the list endpoint; the backend exposes no
// single-book read.
func (a *App) findBook(ctx context.Context, id int64) (*api.Book, error) {
	books, err := a.API.Books().List(ctx, nil)
	if err != nil {
		return nil, a.surface(err)
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, fmt.Errorf("book %d not found", id)
}

// reloadBooks re-fetches the authoritative list after a mutation and
// renders it.
func (a *App) reloadBooks(ctx context.Context) error {
	books, err := a.API.Books().List(ctx, nil)
	if err != nil {
		return a.surface(err)
	}
	a.renderBooks(books)
	return nil
}

func (a *App) renderBooks(books []api.Book) {
	if len(books) == 0 {
		a.println("No books found.")
		return
	}
	a.printf("%-5s %-35s %-25s %-15s %-15s %s\n", "ID", "Title", "Author", "ISBN", "Category", "Quantity")
	a.println(strings.Repeat("-", 105))
	for _, b := range books {
		a.printf("%-5d %-35s %-25s %-15s %-15s %d\n",
			b.ID,
			truncateString(b.Title, 35),
			truncateString(b.Author, 25),
			truncateString(b.ISBN, 15),
			truncateString(b.Category, 15),
			b.Quantity)
	}
}
