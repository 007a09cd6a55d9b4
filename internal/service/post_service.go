package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/inkpress/internal/db"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrMissingFields  = errors.New("title, excerpt, and content are required")
	ErrAuthorRequired = errors.New("at least one author is required")
)

// PostService wraps post related database operations. Every public-facing
// read applies the published-only visibility filter.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title            string
	Excerpt          string
	Content          string
	AuthorIDs        []string
	FeaturedImage    string
	FeaturedImageAlt string
	Tags             []string
	CategoryID       string
	Status           string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ListPublished returns all published posts ordered by publish date
// descending.
func (s *PostService) ListPublished() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.StatusPublished).
		Order("published_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetBySlug fetches a single published post by its URL key.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.
		Where("slug = ? AND status = ?", slug, db.StatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListSlugs returns the slugs of all published posts. Used to enumerate
// known pages for cache warmup.
func (s *PostService) ListSlugs() ([]string, error) {
	var slugs []string
	if err := s.db.Model(&db.Post{}).
		Where("status = ?", db.StatusPublished).
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// Search matches the term as a substring anywhere in the title or body of
// published posts. No ranking: results follow publish date descending.
func (s *PostService) Search(term string) ([]db.Post, error) {
	pattern := "%" + term + "%"
	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.StatusPublished).
		Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Order("published_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCategory returns published posts in the given category.
func (s *PostService) ListByCategory(categoryID string) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("category_id = ? AND status = ?", categoryID, db.StatusPublished).
		Order("published_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByTag filters published posts by decoding each post's tag array and
// keeping exact id matches. O(n) in published posts; there is no index on
// the serialized column.
func (s *PostService) ListByTag(tagID string) ([]db.Post, error) {
	posts, err := s.ListPublished()
	if err != nil {
		return nil, err
	}
	return lo.Filter(posts, func(post db.Post, _ int) bool {
		return post.HasTag(tagID)
	}), nil
}

// ListByAuthor returns an author's published posts via the association
// table, ordered by publish date descending.
func (s *PostService) ListByAuthor(authorID string) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Joins("JOIN post_authors ON post_authors.post_id = posts.id").
		Where("post_authors.author_id = ? AND posts.status = ?", authorID, db.StatusPublished).
		Order("posts.published_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListFeatured returns published posts carrying the featured flag.
func (s *PostService) ListFeatured(limit int) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("featured = ? AND status = ?", true, db.StatusPublished).
		Order("published_at desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPopular returns published posts ordered by view count.
func (s *PostService) ListPopular(limit int) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.StatusPublished).
		Order("views desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListRecent returns the newest published posts.
func (s *PostService) ListRecent(limit int) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.StatusPublished).
		Order("published_at desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListRelated returns other published posts from the same category.
func (s *PostService) ListRelated(postID string, limit int) ([]db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []db.Post{}, nil
		}
		return nil, err
	}

	var related []db.Post
	if err := s.db.
		Where("category_id = ? AND status = ? AND id <> ?", post.CategoryID, db.StatusPublished, postID).
		Order("published_at desc").
		Limit(limit).
		Find(&related).Error; err != nil {
		return nil, err
	}
	return related, nil
}

// AuthorsFor resolves a post's authors ordered by their association order;
// order 0 is the primary author.
func (s *PostService) AuthorsFor(postID string) ([]db.Author, error) {
	var authors []db.Author
	if err := s.db.
		Joins("JOIN post_authors ON post_authors.author_id = authors.id").
		Where("post_authors.post_id = ?", postID).
		Order("post_authors.sort_order asc").
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// IncrementViews bumps a post's view counter. Callers fire it without
// waiting; lost updates under concurrency are acceptable.
func (s *PostService) IncrementViews(postID string) error {
	return s.db.Model(&db.Post{}).
		Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ListAll returns every post regardless of status for the admin dashboard.
func (s *PostService) ListAll() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id with its ordered author ids, any status.
func (s *PostService) Get(id string) (*db.Post, []string, error) {
	var post db.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	var joins []db.PostAuthor
	if err := s.db.
		Where("post_id = ?", id).
		Order("sort_order asc").
		Find(&joins).Error; err != nil {
		return nil, nil, err
	}

	authorIDs := lo.Map(joins, func(join db.PostAuthor, _ int) string {
		return join.AuthorID
	})
	return &post, authorIDs, nil
}

// Create validates and persists a new post together with its ordered author
// associations and the affected denormalized counters, in one transaction.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = db.StatusPublished
	}

	categoryID := strings.TrimSpace(input.CategoryID)
	if categoryID == "" {
		categoryID = db.DefaultCategoryID
	}

	tagsJSON, err := json.Marshal(emptyIfNil(input.Tags))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := db.Post{
		ID:               db.NewID(),
		Title:            input.Title,
		Excerpt:          input.Excerpt,
		Content:          input.Content,
		MetaTitle:        input.Title,
		MetaDescription:  input.Excerpt,
		MetaKeywords:     string(tagsJSON),
		FeaturedImage:    input.FeaturedImage,
		FeaturedImageAlt: input.Title,
		CategoryID:       categoryID,
		Tags:             tagsJSON,
		Status:           status,
		ReadingTime:      EstimateReadingTime(input.Content),
		AllowComments:    true,
	}
	if status == db.StatusPublished {
		post.PublishedAt = &now
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		post.Slug = uniquePostSlug(tx, Slugify(input.Title), "")

		// Legacy single-author display name comes from the primary author.
		var primary db.Author
		if err := tx.First(&primary, "id = ?", input.AuthorIDs[0]).Error; err == nil {
			post.Author = primary.Name
		} else {
			post.Author = "Admin"
		}

		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if err := replaceAuthorJoins(tx, post.ID, input.AuthorIDs); err != nil {
			return err
		}

		return s.recomputeCounters(tx, input.AuthorIDs, []string{categoryID})
	}); err != nil {
		return nil, err
	}

	return &post, nil
}

// Update applies updates to an existing post. The slug is regenerated only
// when the title changed, publishedAt is set only on the first transition
// into published, and the author set is replaced wholesale.
func (s *PostService) Update(id string, input PostInput) (*db.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	var existing db.Post
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = db.StatusPublished
	}

	categoryID := strings.TrimSpace(input.CategoryID)
	if categoryID == "" {
		categoryID = db.DefaultCategoryID
	}

	tagsJSON, err := json.Marshal(emptyIfNil(input.Tags))
	if err != nil {
		return nil, err
	}

	previousAuthors, err := s.authorIDsFor(id)
	if err != nil {
		return nil, err
	}
	previousCategory := existing.CategoryID

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.Title != existing.Title {
			existing.Slug = uniquePostSlug(tx, Slugify(input.Title), id)
		}

		var primary db.Author
		if err := tx.First(&primary, "id = ?", input.AuthorIDs[0]).Error; err == nil {
			existing.Author = primary.Name
		} else {
			existing.Author = "Unknown"
		}
		existing.AuthorID = input.AuthorIDs[0]

		existing.Title = input.Title
		existing.Excerpt = input.Excerpt
		existing.Content = input.Content
		existing.FeaturedImage = input.FeaturedImage
		existing.FeaturedImageAlt = input.FeaturedImageAlt
		existing.CategoryID = categoryID
		existing.Tags = tagsJSON
		existing.ReadingTime = EstimateReadingTime(input.Content)

		// publishedAt is write-once: set on the first transition into
		// published, untouched on later edits.
		if status == db.StatusPublished && existing.Status != db.StatusPublished && existing.PublishedAt == nil {
			now := time.Now()
			existing.PublishedAt = &now
		}
		existing.Status = status

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if err := replaceAuthorJoins(tx, id, input.AuthorIDs); err != nil {
			return err
		}

		affected := lo.Uniq(append(previousAuthors, input.AuthorIDs...))
		return s.recomputeCounters(tx, affected, lo.Uniq([]string{previousCategory, categoryID}))
	}); err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes the association rows and then the post itself. Authors are
// never cascade-deleted.
func (s *PostService) Delete(id string) error {
	var existing db.Post
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	authorIDs, err := s.authorIDsFor(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.PostAuthor{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&db.Post{}, "id = ?", id).Error; err != nil {
			return err
		}
		return s.recomputeCounters(tx, authorIDs, []string{existing.CategoryID})
	})
}

func (s *PostService) authorIDsFor(postID string) ([]string, error) {
	var joins []db.PostAuthor
	if err := s.db.Where("post_id = ?", postID).Order("sort_order asc").Find(&joins).Error; err != nil {
		return nil, err
	}
	return lo.Map(joins, func(join db.PostAuthor, _ int) string {
		return join.AuthorID
	}), nil
}

// recomputeCounters refreshes the denormalized postCount caches by
// re-counting and overwriting, which avoids drift at O(n) cost per write.
func (s *PostService) recomputeCounters(tx *gorm.DB, authorIDs, categoryIDs []string) error {
	for _, authorID := range authorIDs {
		var count int64
		if err := tx.Model(&db.PostAuthor{}).
			Where("author_id = ?", authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Author{}).
			Where("id = ?", authorID).
			Update("post_count", count).Error; err != nil {
			return err
		}
	}

	for _, categoryID := range categoryIDs {
		if categoryID == "" {
			continue
		}
		var count int64
		if err := tx.Model(&db.Post{}).
			Where("category_id = ?", categoryID).
			Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Category{}).
			Where("id = ?", categoryID).
			Update("post_count", count).Error; err != nil {
			return err
		}
	}

	return recomputeTagCounters(tx)
}

// recomputeTagCounters rebuilds every tag's postCount from the posts' own
// tag arrays, the authoritative membership source.
func recomputeTagCounters(tx *gorm.DB) error {
	var posts []db.Post
	if err := tx.Select("id", "tags").Find(&posts).Error; err != nil {
		return err
	}

	counts := make(map[string]int64)
	for i := range posts {
		for _, tagID := range posts[i].TagIDs() {
			counts[tagID]++
		}
	}

	var tags []db.Tag
	if err := tx.Select("id").Find(&tags).Error; err != nil {
		return err
	}

	for _, tag := range tags {
		if err := tx.Model(&db.Tag{}).
			Where("id = ?", tag.ID).
			Update("post_count", counts[tag.ID]).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceAuthorJoins rebuilds the ordered association set with
// delete-then-reinsert semantics.
func replaceAuthorJoins(tx *gorm.DB, postID string, authorIDs []string) error {
	if err := tx.Where("post_id = ?", postID).Delete(&db.PostAuthor{}).Error; err != nil {
		return err
	}
	for i, authorID := range authorIDs {
		join := db.PostAuthor{PostID: postID, AuthorID: authorID, SortOrder: i}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

// uniquePostSlug suffixes a random token when the generated slug is already
// taken by another post. Slug is the public lookup key, so collisions are
// resolved rather than left to last-writer-wins.
func uniquePostSlug(tx *gorm.DB, slug, excludeID string) string {
	var count int64
	query := tx.Model(&db.Post{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil || count == 0 {
		return slug
	}
	return slug + "-" + slugToken()
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Excerpt) == "" ||
		strings.TrimSpace(input.Content) == "" {
		return ErrMissingFields
	}
	if len(input.AuthorIDs) == 0 {
		return ErrAuthorRequired
	}
	return nil
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
