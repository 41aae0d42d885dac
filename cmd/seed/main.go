package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/postgres"
	"bookreview/internal/rating"
	"bookreview/internal/review"
	"bookreview/internal/user"

	"github.com/sirupsen/logrus"
)

const demoPassword = "password123"

func main() {
	var (
		users = flag.Int("users", 3, "Number of demo users")
		books = flag.Int("books", 20, "Number of demo books")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New("bookreview-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	userRepo := user.NewPostgresRepo(pool, cfg.DBTimeout)
	bookRepo := book.NewPostgresRepo(pool, cfg.DBTimeout)
	reviewRepo := review.NewPostgresRepo(pool, cfg.DBTimeout)

	userSvc := user.NewService(userRepo)
	reviewSvc := review.NewService(reviewRepo, bookRepo, rating.NewAggregator(reviewRepo, bookRepo, log), log)
	bookSvc := book.NewService(bookRepo, reviewSvc, cfg.BooksPageSize)

	s := &seeder{users: userSvc, books: bookSvc, reviews: reviewSvc, log: log, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
	if err := s.run(ctx, *users, *books); err != nil {
		log.WithError(err).Fatal("seed failed")
	}
}

type seeder struct {
	users   *user.Service
	books   *book.Service
	reviews *review.Service
	log     logrus.FieldLogger
	rnd     *rand.Rand
}

func (s *seeder) run(ctx context.Context, userCount, bookCount int) error {
	ids := make([]string, 0, userCount)
	for i := 1; i <= userCount; i++ {
		u, err := s.ensureUser(ctx, fmt.Sprintf("Reader %d", i), fmt.Sprintf("reader%d@example.com", i))
		if err != nil {
			return err
		}
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return errors.New("at least one user is required")
	}

	genres := []string{"Fiction", "Science Fiction", "Fantasy", "History", "Mystery", "Biography", "Philosophy"}
	reviewCount := 0
	for i := 0; i < bookCount; i++ {
		owner := ids[i%len(ids)]
		year := 1950 + s.rnd.Intn(75)
		b, err := s.books.Create(ctx, owner, book.CreateInput{
			Title:       fmt.Sprintf("%s %s", randomWord(s.rnd), randomWord(s.rnd)),
			Author:      fmt.Sprintf("Author %d", s.rnd.Intn(50)+1),
			Description: fmt.Sprintf("A book about %s.", randomWord(s.rnd)),
			Genre:       genres[s.rnd.Intn(len(genres))],
			Year:        &year,
		})
		if err != nil {
			return fmt.Errorf("create book: %w", err)
		}

		for _, reviewer := range ids {
			if reviewer == owner || s.rnd.Intn(2) == 0 {
				continue
			}
			stars := 1 + s.rnd.Intn(5)
			_, err := s.reviews.Create(ctx, reviewer, review.CreateInput{
				BookID: b.ID,
				Rating: &stars,
				Text:   fmt.Sprintf("%d out of 5.", stars),
			})
			if err != nil {
				return fmt.Errorf("create review: %w", err)
			}
			reviewCount++
		}
	}

	s.log.WithFields(logrus.Fields{
		"users":    len(ids),
		"books":    bookCount,
		"reviews":  reviewCount,
		"password": demoPassword,
	}).Info("seed complete")
	return nil
}

// ensureUser makes seeding repeatable by reusing existing demo accounts.
func (s *seeder) ensureUser(ctx context.Context, name, email string) (user.User, error) {
	u, err := s.users.Create(ctx, user.CreateInput{Name: name, Email: email, Password: demoPassword})
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, apperr.ErrConflict) {
		return user.User{}, fmt.Errorf("create user %s: %w", email, err)
	}
	return s.users.FindByEmail(ctx, email)
}

func randomWord(rnd *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rnd.Intn(len(words))]
}
