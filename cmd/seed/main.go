// Package main seeds a Book Borrower database with a small, realistic data
// set: a handful of members, their books, reviews in both directions and a
// borrow history. It talks to Postgres directly through the service layer,
// so the server does not need to be running.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/utafrali/bookborrower/internal/config"
	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/repository/postgres"
	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/migrations"
	"github.com/utafrali/bookborrower/pkg/database"
	"github.com/utafrali/bookborrower/pkg/logger"
)

// --------------------------------------------------------------------------
// Seed data
// --------------------------------------------------------------------------

var members = []service.CreateUserInput{
	{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
	{Email: "alan@example.com", FirstName: "Alan", LastName: "Turing"},
	{Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper"},
	{Email: "edsger@example.com", FirstName: "Edsger", LastName: "Dijkstra"},
	{Email: "barbara@example.com", FirstName: "Barbara", LastName: "Liskov"},
}

var catalogue = []service.CreateBookInput{
	{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Genre: "science fiction", Pages: 412},
	{Title: "Emma", Author: "Jane Austen", ISBN: "9780141439587", Genre: "classic", Pages: 474},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", Genre: "fantasy", Pages: 300},
	{Title: "Neuromancer", Author: "William Gibson", ISBN: "9780441569595", Genre: "science fiction", Pages: 271},
	{Title: "Beloved", Author: "Toni Morrison", ISBN: "9781400033416", Genre: "literary fiction", Pages: 324},
	{Title: "Middlemarch", Author: "George Eliot", ISBN: "9780141439549", Genre: "classic", Pages: 880},
	{Title: "Kindred", Author: "Octavia E. Butler", ISBN: "9780807083697", Genre: "science fiction", Pages: 264},
	{Title: "The Name of the Rose", Author: "Umberto Eco", ISBN: "9780156001311", Genre: "mystery", Pages: 536},
}

var reviewBodies = []string{
	"Could not put it down.",
	"Slow start, great ending.",
	"Returned it in perfect condition.",
	"A little dense but worth it.",
	"Lovely to swap books with.",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("bookborrower-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	users := service.NewUserService(userRepo, nil, log)
	books := service.NewBookService(bookRepo, userRepo, nil, log)
	reviews := service.NewReviewService(
		postgres.NewBookReviewRepository(pool),
		postgres.NewUserReviewRepository(pool),
		userRepo, bookRepo, nil, log,
	)
	borrows := service.NewBorrowService(postgres.NewBorrowRepository(pool), userRepo, bookRepo, nil, log)

	// --------------------------------------------------------------------------
	// Members and their shelves
	// --------------------------------------------------------------------------

	created := make([]*domain.User, 0, len(members))
	for i := range members {
		u, err := users.CreateUser(ctx, &members[i])
		if err != nil {
			return fmt.Errorf("create user %s: %w", members[i].Email, err)
		}
		created = append(created, u)
	}

	shelf := make([]*domain.Book, 0, len(catalogue))
	for i := range catalogue {
		in := catalogue[i]
		in.OwnerID = created[i%len(created)].ID
		b, err := books.CreateBook(ctx, &in)
		if err != nil {
			return fmt.Errorf("create book %q: %w", in.Title, err)
		}
		shelf = append(shelf, b)
	}

	// --------------------------------------------------------------------------
	// Borrow history and reviews
	// --------------------------------------------------------------------------

	var nBorrows, nBookReviews, nUserReviews int
	start := time.Now().AddDate(0, -6, 0)
	for _, b := range shelf {
		for _, u := range created {
			if u.ID == b.OwnerID || rand.Intn(3) != 0 {
				continue
			}

			when := start.Add(time.Duration(rand.Intn(180*24)) * time.Hour)
			if _, err := borrows.CreateBorrow(ctx, &service.CreateBorrowInput{
				BookID:       b.ID,
				BorrowerID:   u.ID,
				DateBorrowed: &when,
			}); err != nil {
				return fmt.Errorf("create borrow: %w", err)
			}
			nBorrows++

			if _, err := reviews.CreateBookReview(ctx, &service.CreateBookReviewInput{
				Rating:     1 + rand.Intn(5),
				Body:       reviewBodies[rand.Intn(len(reviewBodies))],
				BookID:     b.ID,
				ReviewerID: u.ID,
			}); err != nil {
				return fmt.Errorf("create book review: %w", err)
			}
			nBookReviews++

			if _, err := reviews.CreateUserReview(ctx, &service.CreateUserReviewInput{
				Rating:     1 + rand.Intn(5),
				Body:       reviewBodies[rand.Intn(len(reviewBodies))],
				ReviewerID: b.OwnerID,
				RevieweeID: u.ID,
			}); err != nil {
				return fmt.Errorf("create user review: %w", err)
			}
			nUserReviews++
		}
	}

	log.Info("seed complete",
		slog.Int("users", len(created)),
		slog.Int("books", len(shelf)),
		slog.Int("borrows", nBorrows),
		slog.Int("book_reviews", nBookReviews),
		slog.Int("user_reviews", nUserReviews),
	)
	return nil
}
