package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"page_scraper/internal/domain"
	"page_scraper/internal/service/mocks"
	"page_scraper/testdata/utils"
)

const pageTestID = "5f6e4c1a-9f0b-4d3c-8a2e-1b7d9c0e5a43"

type HistoryServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	pages   *mocks.MockPageStore
	posts   *mocks.MockPostStore
	configs *mocks.MockConfigStore
	stats   *mocks.MockStatsStore

	service *HistoryService
}

func (s *HistoryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.pages = mocks.NewMockPageStore(s.ctrl)
	s.posts = mocks.NewMockPostStore(s.ctrl)
	s.configs = mocks.NewMockConfigStore(s.ctrl)
	s.stats = mocks.NewMockStatsStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewHistoryService(s.pages, s.posts, s.configs, s.stats, logger)
}

func (s *HistoryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}

func (s *HistoryServiceTestSuite) TestList_FiltersByUser() {
	ctx := context.Background()
	userID := utils.Ptr("user-1")
	stored := []domain.Page{{ID: "a"}, {ID: "b"}}

	s.pages.EXPECT().List(ctx, userID).Return(stored, nil)

	pages, err := s.service.List(ctx, userID)

	s.NoError(err)
	s.Equal(stored, pages)
}

func (s *HistoryServiceTestSuite) TestDetail_ReturnsStoredPageAndPosts() {
	ctx := context.Background()
	now := time.Now()
	page := &domain.Page{ID: pageTestID, Name: "Tech Innovations", Followers: 4321, Likes: 999}
	posts := []domain.Post{
		{ID: "p-1", PostDate: now},
		{ID: "p-2", PostDate: now.AddDate(0, 0, -3)},
	}

	s.pages.EXPECT().GetByID(ctx, pageTestID).Return(page, nil)
	s.posts.EXPECT().GetByPageID(ctx, pageTestID).Return(posts, nil)

	got, err := s.service.Detail(ctx, pageTestID)

	s.NoError(err)
	s.Equal(*page, got.Page)
	s.Equal(posts, got.Posts)
}

func (s *HistoryServiceTestSuite) TestDetail_IsIdempotent() {
	ctx := context.Background()
	page := &domain.Page{ID: pageTestID, Followers: 4321, Likes: 999}
	posts := []domain.Post{{ID: "p-1", PostDate: time.Now()}}

	s.pages.EXPECT().GetByID(ctx, pageTestID).Return(page, nil).Times(2)
	s.posts.EXPECT().GetByPageID(ctx, pageTestID).Return(posts, nil).Times(2)

	first, err := s.service.Detail(ctx, pageTestID)
	s.NoError(err)
	second, err := s.service.Detail(ctx, pageTestID)
	s.NoError(err)

	s.Equal(first, second)
}

func (s *HistoryServiceTestSuite) TestDetail_NotFound() {
	ctx := context.Background()

	s.pages.EXPECT().GetByID(ctx, pageTestID).Return(nil, nil)

	_, err := s.service.Detail(ctx, pageTestID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *HistoryServiceTestSuite) TestConfig_AbsentIsNil() {
	ctx := context.Background()

	s.configs.EXPECT().GetByPageID(ctx, pageTestID).Return(nil, nil)

	cfg, err := s.service.Config(ctx, pageTestID)
	s.NoError(err)
	s.Nil(cfg)
}

func (s *HistoryServiceTestSuite) TestStats_Passthrough() {
	ctx := context.Background()
	stored := &domain.ScrapingStats{UserID: "user-1", TotalPages: 3, TotalPosts: 11}

	s.stats.EXPECT().GetByUserID(ctx, "user-1").Return(stored, nil)

	stats, err := s.service.Stats(ctx, "user-1")
	s.NoError(err)
	s.Equal(stored, stats)
}
