package service

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	listAllFn        func(context.Context) ([]models.Post, error)
	listByGroupFn    func(context.Context, uint) ([]models.Post, error)
	listByAuthorFn   func(context.Context, uint) ([]models.Post, error)
	listByFollowedFn func(context.Context, uint) ([]models.Post, error)
	countByAuthorFn  func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.listAllFn(ctx)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error) {
	return s.listByGroupFn(ctx, groupID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListByFollowed(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listByFollowedFn(ctx, userID)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		listAllFn:        func(_ context.Context) ([]models.Post, error) { return nil, nil },
		listByGroupFn:    func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		listByAuthorFn:   func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		listByFollowedFn: func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		countByAuthorFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	getBySlugFn func(context.Context, string) (*models.Group, error)
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	listFn      func(context.Context) ([]models.Group, error)
	createFn    func(context.Context, *models.Group) error
}

func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) List(ctx context.Context) ([]models.Group, error) {
	return s.listFn(ctx)
}
func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) {
			return &models.Group{ID: 1, Slug: slug}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		listFn:    func(_ context.Context) ([]models.Group, error) { return nil, nil },
		createFn:  func(_ context.Context, _ *models.Group) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, userID, authorID uint) error {
	return s.followFn(ctx, userID, authorID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, userID, authorID uint) error {
	return s.unfollowFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	return s.countFollowersFn(ctx, authorID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:       func(_ context.Context, _, _ uint) error { return nil },
		existsFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
