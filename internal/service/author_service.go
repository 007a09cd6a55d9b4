package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrAuthorFields    = errors.New("name and email are required")
	ErrEmailRegistered = errors.New("an author with this email already exists")
)

// AuthorService wraps author related operations.
type AuthorService struct {
	db *gorm.DB
}

// AuthorInput represents fields accepted when creating an author. Avatar is
// stored verbatim; encoding is the API boundary's responsibility.
type AuthorInput struct {
	Name     string
	Email    string
	Title    string
	Bio      string
	Avatar   string
	Twitter  string
	LinkedIn string
	GitHub   string
	Website  string
}

// NewAuthorService creates an AuthorService instance.
func NewAuthorService(gdb *gorm.DB) *AuthorService {
	return &AuthorService{db: gdb}
}

// List returns all authors ordered by display name.
func (s *AuthorService) List() ([]db.Author, error) {
	var authors []db.Author
	if err := s.db.Order("name asc").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// GetBySlug fetches a single author by URL key.
func (s *AuthorService) GetBySlug(slug string) (*db.Author, error) {
	var author db.Author
	if err := s.db.Where("slug = ?", slug).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return &author, nil
}

// Create inserts a new author. Email must be unique; a slug collision with
// an existing author is resolved by suffixing a random token instead of
// rejecting the request.
func (s *AuthorService) Create(input AuthorInput) (*db.Author, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, ErrAuthorFields
	}

	var existing db.Author
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	slug := Slugify(name)
	var taken int64
	if err := s.db.Model(&db.Author{}).Where("slug = ?", slug).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		slug = slug + "-" + slugToken()
	}

	author := db.Author{
		ID:       db.NewID(),
		Slug:     slug,
		Name:     name,
		Email:    email,
		Title:    input.Title,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
		Twitter:  input.Twitter,
		LinkedIn: input.LinkedIn,
		GitHub:   input.GitHub,
		Website:  input.Website,
	}

	if err := s.db.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}
