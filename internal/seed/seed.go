// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"yatube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// groupTopics seeds a stable catalog of communities to post into.
var groupTopics = []string{
	"Поэзия", "Проза", "Technology", "Travel", "Music", "Cinema",
	"Books", "Science", "Food", "Photography",
}

// Run populates the database with users, groups, posts, comments and
// subscriptions. All generated users share the password "password123".
func (s *Seeder) Run(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	groups, err := s.createGroups()
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("created %d groups", len(groups))

	posts, err := s.createPosts(users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := s.createComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", comments)

	follows, err := s.createFollows(users)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions: %w", err)
	}
	log.Printf("created %d subscriptions", follows)

	return nil
}

// ClearAll removes all seeded rows in dependency order.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{}, &models.Follow{}, &models.Post{},
		&models.Group{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		users = append(users, models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hash),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createGroups() ([]models.Group, error) {
	groups := make([]models.Group, 0, len(groupTopics))
	for i, title := range groupTopics {
		groups = append(groups, models.Group{
			Title:       title,
			Slug:        fmt.Sprintf("group-%d", i+1),
			Description: gofakeit.Sentence(10),
		})
	}
	if err := s.db.Create(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Seeder) createPosts(users []models.User, groups []models.Group, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rand.Intn(len(users))]
		post := models.Post{
			Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
			// realistic publication spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
		}
		if s.rand.Intn(3) > 0 {
			post.GroupID = &groups[s.rand.Intn(len(groups))].ID
		}
		if s.rand.Intn(4) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		posts = append(posts, post)
	}
	if err := s.db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) createComments(users []models.User, posts []models.Post) (int, error) {
	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < s.rand.Intn(4); i++ {
			comments = append(comments, models.Comment{
				Text:     gofakeit.Sentence(12),
				AuthorID: users[s.rand.Intn(len(users))].ID,
				PostID:   post.ID,
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := s.db.CreateInBatches(&comments, 100).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

func (s *Seeder) createFollows(users []models.User) (int, error) {
	seen := make(map[[2]uint]bool)
	var follows []models.Follow
	for _, user := range users {
		for i := 0; i < s.rand.Intn(5); i++ {
			author := users[s.rand.Intn(len(users))]
			pair := [2]uint{user.ID, author.ID}
			if author.ID == user.ID || seen[pair] {
				continue
			}
			seen[pair] = true
			follows = append(follows, models.Follow{UserID: user.ID, AuthorID: author.ID})
		}
	}
	if len(follows) == 0 {
		return 0, nil
	}
	if err := s.db.CreateInBatches(&follows, 100).Error; err != nil {
		return 0, err
	}
	return len(follows), nil
}
